package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"vehicle-access-control/internal/access"
	"vehicle-access-control/internal/app"
	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/email"
	"vehicle-access-control/internal/notify"
	"vehicle-access-control/internal/routes"
	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the vehicle access control server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		fmt.Println("Starting vehicle access control server...")
		initLogger(cfg)
		ServerMain(ctx, openStorage())
	},
}

// Initialize logger
func initLogger(cfg *config.Config) *slog.Logger {
	// Determine level from config and set it on the handler options.
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		println("Invalid log level in config, defaulting to INFO")
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	slog.Debug("Logger initialized", "level", level.String())
	return logger
}

// LoadAccessRBAC loads the policy file when auth is enabled.
func LoadAccessRBAC(cfg *config.Config) *access.RBAC {
	if !cfg.Auth.Enabled {
		return nil
	}

	rbac := access.GetRBAC()
	if err := rbac.LoadPolicy(cfg.Auth.PolicyFile); err != nil {
		slog.Error("Failed to load RBAC policy", "error", err, "file", cfg.Auth.PolicyFile)
		os.Exit(1)
	}
	return rbac
}

// NewNotifierFromConfig wires the incident mailer when SMTP and
// recipients are both configured.
func NewNotifierFromConfig(cfg *config.Config) *notify.Notifier {
	if cfg.Email.Host == "" || len(cfg.Notify.IncidentRecipients) == 0 {
		slog.Debug("Incident notifications disabled")
		return nil
	}

	client := email.NewClient(
		cfg.Email.Host,
		cfg.Email.Port,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	slog.Info("Incident notifications enabled", "recipients", len(cfg.Notify.IncidentRecipients))
	return notify.NewNotifier(client, cfg.Notify.IncidentRecipients)
}

func ServerMain(ctx context.Context, storageProvider storage.Provider) {

	if config.Cfg == nil {
		panic("Config not initialized.")
	}

	// Use the provider passed from cobra command (already initialized)
	if storageProvider == nil {
		slog.Error("Storage provider is nil")
		os.Exit(1)
	}

	// Initialize HTTP server
	server := app.HTTPServer()

	rbac := LoadAccessRBAC(config.Cfg)
	notifier := NewNotifierFromConfig(config.Cfg)

	// Middleware to inject request dependencies into context
	server.Use(func(c *gin.Context) {
		c.Set("storage", storageProvider)
		if rbac != nil {
			c.Set("rbac", rbac)
		}
		if notifier != nil {
			c.Set("notifier", notifier)
		}
		c.Next()
	})

	routes.RegisterRoutes(server)

	server.Run(config.Cfg.ListenAddr)
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
