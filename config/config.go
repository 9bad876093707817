package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	Secret    string   `yaml:"secret"`
	MasterKey string   `yaml:"master_key"`
	SubKeys   []string `yaml:"sub_keys"`
	// CookieSecure marks the session cookie HTTPS-only. Defaults to true;
	// turn off only for plain-HTTP development setups.
	CookieSecure bool `yaml:"cookie_secure"`
	TokenHours   int  `yaml:"token_hours"`
}

type ClockConfig struct {
	Timezone string `yaml:"timezone"`
	// RemoteURL, when set, makes the service ask a world-time endpoint for the
	// current instant and fall back to the local clock on failure.
	RemoteURL string `yaml:"remote_url"`
}

type ShiftConfig struct {
	AMExpected string                `yaml:"am_expected"`
	PMExpected string                `yaml:"pm_expected"`
	Groups     map[string]GroupTimes `yaml:"groups"`
}

type GroupTimes struct {
	AM string `yaml:"am"`
	PM string `yaml:"pm"`
}

type PendingConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Clock    ClockConfig    `yaml:"clock"`
	Shifts   ShiftConfig    `yaml:"shifts"`
	Limits   map[string]int `yaml:"limits"`
	Pending  PendingConfig  `yaml:"pending"`
}

// Default returns the configuration the service runs with when no file is
// supplied: local MySQL, the standard shift schedule, and the stock
// interruption limits.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{DSN: "root:@tcp(127.0.0.1:3306)/attendlog?charset=utf8mb4&parseTime=True&loc=Local"},
		Auth: AuthConfig{
			CookieSecure: true,
			TokenHours:   12,
		},
		Clock: ClockConfig{Timezone: "Asia/Karachi"},
		Shifts: ShiftConfig{
			AMExpected: "08:00",
			PMExpected: "20:00",
			Groups: map[string]GroupTimes{
				"mqm":          {AM: "08:45", PM: "20:45"},
				"mkm":          {AM: "08:45", PM: "20:45"},
				"trainer":      {AM: "08:45", PM: "20:45"},
				"office boy":   {AM: "09:00", PM: "21:00"},
				"mdm":          {AM: "08:15", PM: "20:15"},
				"mbm":          {AM: "08:15", PM: "20:15"},
				"group leader": {AM: "08:15", PM: "20:15"},
				"team leader":  {AM: "08:15", PM: "20:15"},
				"admin":        {AM: "11:00", PM: "23:00"},
			},
		},
		Limits: map[string]int{
			"Recite Sutra": 30,
			"Toilet":       20,
			"Smoke":        20,
			"BREAK1":       45,
			"BREAK2":       45,
		},
		Pending: PendingConfig{TTLMinutes: 0},
	}
}

// Load reads the YAML file at path over the defaults, then applies environment
// overrides. An empty path skips the file and uses defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Auth.Secret == "" {
		return cfg, fmt.Errorf("auth secret is required; set auth.secret or ATTENDLOG_AUTH_SECRET")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ATTENDLOG_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ATTENDLOG_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ATTENDLOG_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("ATTENDLOG_MASTER_KEY"); v != "" {
		cfg.Auth.MasterKey = v
	}
	if v := os.Getenv("ATTENDLOG_CLOCK_URL"); v != "" {
		cfg.Clock.RemoteURL = v
	}
	if v := os.Getenv("ATTENDLOG_TOKEN_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.Auth.TokenHours = hours
		}
	}
}
