package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// App holds runtime configuration derived from env vars or an optional YAML file.
type App struct {
	DatabaseURL    string
	KafkaBrokers   string
	KafkaTopic     string
	RedisAddr      string
	APIPort        string
	Environment    string
	LogLevel       string
	LogEncoding    string
	CORSOrigins    []string
	LogCategory    string
	SettingsPrefix string
	Prune          Prune
}

// Prune configures the retention job.
type Prune struct {
	Schedule   string
	BatchSize  int
	DefaultAge string
	LockTTL    time.Duration
}

var defaults = map[string]interface{}{
	"kafka_brokers":     "localhost:9092",
	"kafka_topic":       "synclog.prune",
	"api_port":          "8080",
	"environment":       "production",
	"log_level":         "info",
	"log_encoding":      "json",
	"log_category":      "salesforce",
	"settings_prefix":   "object_sync_",
	"prune_schedule":    "@hourly",
	"prune_batch_size":  100,
	"prune_default_age": "2 weeks ago",
	"prune_lock_ttl":    "10m",
}

// FromEnv loads the application configuration from environment variables only.
func FromEnv() App {
	return fromViper(newViper())
}

// Load reads CONFIG_FILE (when set) and overlays environment variables on top of it.
func Load() (App, error) {
	v := newViper()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return App{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	return fromViper(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// database_url and redis_addr have no default but must still be resolvable from env.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("cors_origins", "CORS_ORIGINS")
	return v
}

func fromViper(v *viper.Viper) App {
	batch := v.GetInt("prune_batch_size")
	if batch <= 0 {
		batch = defaults["prune_batch_size"].(int)
	}
	lockTTL := v.GetDuration("prune_lock_ttl")
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}

	return App{
		DatabaseURL:    v.GetString("database_url"),
		KafkaBrokers:   v.GetString("kafka_brokers"),
		KafkaTopic:     v.GetString("kafka_topic"),
		RedisAddr:      v.GetString("redis_addr"),
		APIPort:        v.GetString("api_port"),
		Environment:    v.GetString("environment"),
		LogLevel:       v.GetString("log_level"),
		LogEncoding:    v.GetString("log_encoding"),
		CORSOrigins:    corsOrigins(v.GetString("cors_origins")),
		LogCategory:    v.GetString("log_category"),
		SettingsPrefix: v.GetString("settings_prefix"),
		Prune: Prune{
			Schedule:   v.GetString("prune_schedule"),
			BatchSize:  batch,
			DefaultAge: v.GetString("prune_default_age"),
			LockTTL:    lockTTL,
		},
	}
}

// Brokers splits KafkaBrokers into individual addresses.
func (a App) Brokers() []string {
	return splitList(a.KafkaBrokers)
}

// corsOrigins returns ["*"] when unset, otherwise the trimmed, non-empty entries.
func corsOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	return splitList(raw)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
