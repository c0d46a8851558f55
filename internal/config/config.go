package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Bookmark persistence drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	Env       string          `yaml:"env"`       // Env is the current environment: local, development, production.
	HTTP      HTTPConfig      `yaml:"http"`      // HTTP holds the listener configuration.
	Source    SourceConfig    `yaml:"source"`    // Source holds the upstream user API configuration.
	Bookmarks BookmarksConfig `yaml:"bookmarks"` // Bookmarks selects where bookmarks are persisted.
	Postgres  PostgresConfig  `yaml:"postgres"`  // Postgres holds the database configuration.
}

// HTTPConfig struct holds the addresses the dashboard and the monitoring endpoints listen on.
type HTTPConfig struct {
	Address        string `yaml:"address"`         // Address is the dashboard listen address, e.g. `:8080`.
	MonitoringPort int    `yaml:"monitoring_port"` // MonitoringPort serves /metrics and /healthz.
}

// SourceConfig struct holds the configuration details for the upstream user API.
type SourceConfig struct {
	BaseURL  string        `yaml:"url"`      // BaseURL is the API root in format `https://dummyjson.com`.
	Limit    int           `yaml:"limit"`    // Limit caps the page of users requested.
	Interval time.Duration `yaml:"interval"` // Interval is the time between roster refreshes.
	Timeout  time.Duration `yaml:"timeout"`  // Timeout bounds every upstream request.
}

// BookmarksConfig struct holds the bookmark store settings.
type BookmarksConfig struct {
	Driver    string `yaml:"driver"`     // Driver is either `file` or `postgres`.
	Path      string `yaml:"path"`       // Path is the JSON file used by the file driver.
	StoreName string `yaml:"store_name"` // StoreName is the key the bookmark list is stored under.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

// MustLoad builds the configuration from defaults, the YAML file pointed to by CONFIG_PATH
// and ATHENA_* environment variables, in that order of precedence. It panics when
// CONFIG_PATH is unset or names a missing file; keys absent from the file keep their defaults.
// A .env file in the working directory is loaded into the environment first.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("athena")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("config path is empty")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		panic("config error: " + err.Error())
	}

	cfg := &Config{
		Env: v.GetString("env"),
		HTTP: HTTPConfig{
			Address:        v.GetString("http.address"),
			MonitoringPort: v.GetInt("http.monitoring_port"),
		},
		Source: SourceConfig{
			BaseURL:  strings.TrimRight(v.GetString("source.url"), "/"),
			Limit:    v.GetInt("source.limit"),
			Interval: v.GetDuration("source.interval"),
			Timeout:  v.GetDuration("source.timeout"),
		},
		Bookmarks: BookmarksConfig{
			Driver:    strings.ToLower(v.GetString("bookmarks.driver")),
			Path:      v.GetString("bookmarks.path"),
			StoreName: v.GetString("bookmarks.store_name"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Dbname:   v.GetString("postgres.db_name"),
		},
	}

	if cfg.Source.Interval <= 0 {
		panic("failed to parse interval from configuration")
	}
	if cfg.Source.Timeout <= 0 {
		panic("failed to parse timeout from configuration")
	}
	if cfg.Source.Limit <= 0 {
		panic("source limit must be positive")
	}
	if cfg.Bookmarks.Driver != DriverFile && cfg.Bookmarks.Driver != DriverPostgres {
		panic("unknown bookmarks driver: " + cfg.Bookmarks.Driver)
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	const (
		defMonitoringPort = 9090
		defLimit          = 30
		defInterval       = time.Hour
		defTimeout        = 10 * time.Second
	)

	v.SetDefault("env", "local")
	v.SetDefault("http.address", ":8080")
	v.SetDefault("http.monitoring_port", defMonitoringPort)
	v.SetDefault("source.url", "https://dummyjson.com")
	v.SetDefault("source.limit", defLimit)
	v.SetDefault("source.interval", defInterval)
	v.SetDefault("source.timeout", defTimeout)
	v.SetDefault("bookmarks.driver", DriverFile)
	v.SetDefault("bookmarks.path", "data/bookmarks.json")
	v.SetDefault("bookmarks.store_name", "hr-dashboard-bookmarks")
	v.SetDefault("postgres.port", "5432")
}
