package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. TOURPREF_ENDPOINT.
const EnvPrefix = "TOURPREF"

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "http://127.0.0.1:8080/add_preferences"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env                 string        `mapstructure:"env"`                   // "development" or "production"
	Endpoint            string        `mapstructure:"endpoint"`              // preferences service URL
	HTTPTimeout         time.Duration `mapstructure:"http_timeout"`          // per-submission timeout
	QuestionsPerSession int           `mapstructure:"questions_per_session"` // N
	OptionsPerQuestion  int           `mapstructure:"options_per_question"`  // K
	QuestionsFile       string        `mapstructure:"questions_file"`        // optional corpus override
	DB                  string        `mapstructure:"db"`                    // sqlite path; empty uses the data dir
	User                string        `mapstructure:"user"`                  // signed-in tourist ID
	Log                 Log           `mapstructure:"log"`
}

// Log configures the file logger.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty uses the data dir; "stderr" logs to the terminal
}

// LoadOptions locate the optional config and dotenv files.
type LoadOptions struct {
	// ConfigFile is an explicit config path. When set it must exist.
	ConfigFile string

	// EnvFile is the dotenv file to load before reading the environment.
	// Defaults to ".env"; a missing file is ignored.
	EnvFile string
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Env:                 "development",
		Endpoint:            DefaultEndpoint,
		HTTPTimeout:         15 * time.Second,
		QuestionsPerSession: 12,
		OptionsPerQuestion:  4,
		Log:                 Log{Level: "info"},
	}
}

// Load reads configuration from defaults, an optional YAML file, a dotenv
// file and TOURPREF_* environment variables, in increasing precedence.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadDotenv(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Default())

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("tourpref")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.User = strings.TrimSpace(cfg.User)

	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.QuestionsPerSession < 1 {
		return fmt.Errorf("questions_per_session must be at least 1, got %d", c.QuestionsPerSession)
	}
	if c.OptionsPerQuestion < 1 {
		return fmt.Errorf("options_per_question must be at least 1, got %d", c.OptionsPerQuestion)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http(s) URL, got %q", c.Endpoint)
	}
	return nil
}

// Production reports whether the production environment is selected.
func (c Config) Production() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("env", d.Env)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("questions_per_session", d.QuestionsPerSession)
	v.SetDefault("options_per_question", d.OptionsPerQuestion)
	v.SetDefault("questions_file", d.QuestionsFile)
	v.SetDefault("db", d.DB)
	v.SetDefault("user", d.User)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

func loadDotenv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/tourpref or ~/.config/tourpref.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tourpref"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tourpref"), nil
}
