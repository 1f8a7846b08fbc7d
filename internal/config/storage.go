package config

import "fmt"

type Storage struct {
	SQLite *SQLiteStorage `mapstructure:"local,omitempty"`
	MySQL  *MySQLStorage  `mapstructure:"mysql,omitempty"`
}

type SQLiteStorage struct {
	Path string `mapstructure:"path,omitempty"`
}

type MySQLStorage struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// DSN builds a go-sql-driver connection string. parseTime is required so
// DATE/DATETIME columns scan into time.Time instead of []byte.
func (m *MySQLStorage) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local",
		m.Username, m.Password, m.Host, m.Port, m.Database)
}
