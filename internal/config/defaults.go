package config

var defaults = map[string]any{
	"secret":      "",
	"log_level":   "info",
	"listen_addr": ":8080",

	"allowed_networks": "",

	"auth.enabled":     false,
	"auth.token_ttl":   8 * 60 * 60, // 8 hours
	"auth.policy_file": "",

	"pass.token_ttl": 15 * 60, // 15 minutes

	"email.host":     "host.docker.internal",
	"email.port":     25,
	"email.username": "",
	"email.password": "",
	"email.from":     "noreply@example.com",

	"notify.incident_recipients": []string{},
}

// Fallback sqlite database file, relative to the instance folder. Not a
// viper default: a default under the storage.local key would make the
// SQLite sub-struct non-nil on every load and shadow a mysql-only
// configuration during backend selection.
const defaultSQLitePath = "./data/storage.db"

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
