package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"vehicle-access-control/internal/storage"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage API users",
	Long:  `Create and list the users allowed to authenticate against the API.`,
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with their roles",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		listUsers(ctx)
	},
}

var (
	createUserUsername string
	createUserPassword string
	createUserEmail    string
	createUserRole     string
)

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		createUser(ctx)
	},
}

func listUsers(ctx context.Context) {
	store := openStorage()

	users, err := store.ListUsers(ctx, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
		os.Exit(1)
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		created := ""
		if u.CreatedAt != nil {
			created = u.CreatedAt.Time.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.UserID, u.Username, u.Email, u.Role, created)
	}
	w.Flush()
}

func createUser(ctx context.Context) {
	store := openStorage()

	user := storage.User{
		Username: createUserUsername,
		Password: &createUserPassword,
		Email:    createUserEmail,
		Role:     createUserRole,
	}
	if err := store.CreateUser(ctx, &user); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created user %q with id %d (role %s)\n", user.Username, user.UserID, user.Role)
}

func init() {
	createUserCmd.Flags().StringVar(&createUserUsername, "username", "", "username (required)")
	createUserCmd.Flags().StringVar(&createUserPassword, "password", "", "password (required)")
	createUserCmd.Flags().StringVar(&createUserEmail, "email", "", "email address (required)")
	createUserCmd.Flags().StringVar(&createUserRole, "role", "staff", "role name")
	createUserCmd.MarkFlagRequired("username")
	createUserCmd.MarkFlagRequired("password")
	createUserCmd.MarkFlagRequired("email")

	usersCmd.AddCommand(listUsersCmd)
	usersCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(usersCmd)
}
