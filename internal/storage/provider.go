package storage

import (
	"context"
	"fmt"

	"vehicle-access-control/internal/config"
)

// Provider is the per-request database scope. Every method acquires one pooled
// connection, executes parameterized SQL, and releases the connection on every
// exit path. No connection outlives a single call.
type Provider interface {
	Close() error
	Ping(ctx context.Context) error
	GetSchemaVersion(ctx context.Context) (int, error)

	// Vehicle methods
	ListVehicles(ctx context.Context, limit int) ([]Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*Vehicle, error)
	CreateVehicle(ctx context.Context, v *Vehicle) error
	UpdateVehicle(ctx context.Context, id int64, v *Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error

	// Visitor methods
	ListVisitors(ctx context.Context, limit int) ([]Visitor, error)
	GetVisitor(ctx context.Context, id int64) (*Visitor, error)
	CreateVisitor(ctx context.Context, v *Visitor) error
	UpdateVisitor(ctx context.Context, id int64, v *Visitor) error
	DeleteVisitor(ctx context.Context, id int64) error

	// Resident methods
	ListResidents(ctx context.Context, limit int) ([]Resident, error)
	GetResident(ctx context.Context, id int64) (*Resident, error)
	CreateResident(ctx context.Context, r *Resident) error
	UpdateResident(ctx context.Context, id int64, r *Resident) error
	DeleteResident(ctx context.Context, id int64) error

	// User methods
	ListUsers(ctx context.Context, limit int) ([]User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
	UpdateUser(ctx context.Context, id int64, u *User) error
	DeleteUser(ctx context.Context, id int64) error

	// AccessPermission methods
	ListAccessPermissions(ctx context.Context, limit int) ([]AccessPermission, error)
	GetAccessPermission(ctx context.Context, id int64) (*AccessPermission, error)
	CreateAccessPermission(ctx context.Context, p *AccessPermission) error
	UpdateAccessPermission(ctx context.Context, id int64, p *AccessPermission) error
	DeleteAccessPermission(ctx context.Context, id int64) error

	// IncidentReport methods
	ListIncidentReports(ctx context.Context, limit int) ([]IncidentReport, error)
	GetIncidentReport(ctx context.Context, id int64) (*IncidentReport, error)
	CreateIncidentReport(ctx context.Context, r *IncidentReport) error
	UpdateIncidentReport(ctx context.Context, id int64, r *IncidentReport) error
	DeleteIncidentReport(ctx context.Context, id int64) error

	// SecurityStaff methods
	ListSecurityStaff(ctx context.Context, limit int) ([]SecurityStaff, error)
	GetSecurityStaff(ctx context.Context, id int64) (*SecurityStaff, error)
	CreateSecurityStaff(ctx context.Context, s *SecurityStaff) error
	UpdateSecurityStaff(ctx context.Context, id int64, s *SecurityStaff) error
	DeleteSecurityStaff(ctx context.Context, id int64) error

	// Gate methods
	ListGates(ctx context.Context, limit int) ([]Gate, error)
	GetGate(ctx context.Context, id int64) (*Gate, error)
	CreateGate(ctx context.Context, g *Gate) error
	UpdateGate(ctx context.Context, id int64, g *Gate) error
	DeleteGate(ctx context.Context, id int64) error

	// EntryExitLog methods
	ListEntryExitLogs(ctx context.Context, limit int) ([]EntryExitLog, error)
	GetEntryExitLog(ctx context.Context, id int64) (*EntryExitLog, error)
	CreateEntryExitLog(ctx context.Context, l *EntryExitLog) error
	UpdateEntryExitLog(ctx context.Context, id int64, l *EntryExitLog) error
	DeleteEntryExitLog(ctx context.Context, id int64) error
}

// NewProvider selects a backend from the storage configuration and brings its
// schema up to the latest migration. MySQL takes precedence when both
// backends are configured.
func NewProvider(cfg *config.Storage) (Provider, error) {
	switch {
	case cfg.MySQL != nil:
		provider, err := NewMySQLProvider(cfg)
		if err != nil {
			return nil, err
		}
		if err := provider.runMigrations("mysql"); err != nil {
			provider.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return provider, nil

	case cfg.SQLite != nil:
		provider, err := NewSQLiteProvider(cfg)
		if err != nil {
			return nil, err
		}
		if err := provider.runMigrations("sqlite3"); err != nil {
			provider.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return provider, nil
	}

	return nil, fmt.Errorf("unsupported storage configuration")
}
