package sinklog

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/lixenwraith/config"
)

// ConsoleConfig configures a console sink.
type ConsoleConfig struct {
	Name     string `toml:"name"`
	Level    string `toml:"level"`
	TimeZone string `toml:"time_zone"`
	Target   string `toml:"target"` // "stdout" or "stderr"
	Colors   LevelColors
}

// FileConfig configures a rotating-compressing file sink.
type FileConfig struct {
	Enabled     bool   `toml:"enabled"`
	Name        string `toml:"name"`
	Level       string `toml:"level"`
	TimeZone    string `toml:"time_zone"`
	Path        string `toml:"path"`
	MaxBytes    int64  `toml:"max_bytes"`
	BackupCount int64  `toml:"backup_count"`
	Encoding    string `toml:"encoding"`
	Delay       bool   `toml:"delay"` // Defer opening the file to the first write
}

// MailConfig configures a buffered SMTP sink.
type MailConfig struct {
	Enabled  bool     `toml:"enabled"`
	Name     string   `toml:"name"`
	Level    string   `toml:"level"`
	TimeZone string   `toml:"time_zone"`
	Host     string   `toml:"host"`
	Port     int64    `toml:"port"`
	Username string   `toml:"username"`
	Password string   `toml:"password"`
	From     string   `toml:"from"`
	To       []string `toml:"to"`
	Subject  string   `toml:"subject"`
	Capacity int64    `toml:"capacity"`
}

// SyslogConfig configures an RFC 5424 syslog sink.
type SyslogConfig struct {
	Enabled  bool   `toml:"enabled"`
	Name     string `toml:"name"`
	Level    string `toml:"level"`
	TimeZone string `toml:"time_zone"`
	Address  string `toml:"address"`
	Port     int64  `toml:"port"`
	AppName  string `toml:"app_name"`
	MsgID    string `toml:"msg_id"` // Accepted but rendered as '-' per RFC field usage
}

// Config aggregates all sink configurations.
type Config struct {
	RateLimit int64 `toml:"rate_limit"` // Max records per second per logger, 0 = unlimited

	Console ConsoleConfig
	File    FileConfig
	Mail    MailConfig
	Syslog  SyslogConfig
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	RateLimit: 0,
	Console: ConsoleConfig{
		Name:     "root",
		Level:    "INFO",
		TimeZone: string(TimeZoneLocal),
		Target:   "stderr",
		Colors:   DefaultColors(),
	},
	File: FileConfig{
		Name:        "File",
		Level:       "INFO",
		TimeZone:    string(TimeZoneLocal),
		MaxBytes:    DefaultMaxBytes,
		BackupCount: DefaultBackupCount,
		Encoding:    DefaultEncoding,
	},
	Mail: MailConfig{
		Name:     "SMTP",
		Level:    "INFO",
		TimeZone: string(TimeZoneLocal),
		Port:     DefaultSMTPPort,
		Capacity: DefaultMailCapacity,
	},
	Syslog: SyslogConfig{
		Name:     "SysLog",
		Level:    "INFO",
		TimeZone: string(TimeZoneLocal),
		Port:     DefaultSyslogPort,
	},
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	copiedConfig.Mail.To = append([]string(nil), c.Mail.To...)
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a
// normalized Config. Missing files yield the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Top-level keys live in their own section struct so every section can
	// go through the same register/extract path.
	root := struct {
		RateLimit int64 `toml:"rate_limit"`
	}{RateLimit: cfg.RateLimit}

	sections := []struct {
		prefix string
		target any
	}{
		{"sinklog.", &root},
		{"sinklog.console.", &cfg.Console},
		{"sinklog.file.", &cfg.File},
		{"sinklog.mail.", &cfg.Mail},
		{"sinklog.syslog.", &cfg.Syslog},
	}

	for _, s := range sections {
		if err := loader.RegisterStruct(s.prefix, reflect.ValueOf(s.target).Elem().Interface()); err != nil {
			return nil, fmt.Errorf("failed to register config struct: %w", err)
		}
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	for _, s := range sections {
		if err := extractConfig(loader, s.prefix, s.target); err != nil {
			return nil, fmt.Errorf("failed to extract config values: %w", err)
		}
	}
	cfg.RateLimit = root.RateLimit

	cfg.normalize()
	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into a sink config struct
func extractConfig(loader *config.Config, prefix string, target any) error {
	v := reflect.ValueOf(target).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		v, ok := toInt64(value)
		if !ok {
			return fmt.Errorf("expected int64, got %T", value)
		}
		field.SetInt(v)

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %v", field.Type())
		}
		switch v := value.(type) {
		case []string:
			field.Set(reflect.ValueOf(v))
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("expected string element, got %T", item)
				}
				out = append(out, s)
			}
			field.Set(reflect.ValueOf(out))
		case string:
			field.Set(reflect.ValueOf([]string{v}))
		default:
			return fmt.Errorf("expected string list, got %T", value)
		}

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// normalize substitutes documented defaults for invalid values, printing a
// diagnostic for each substitution. Configuration errors never fail hard.
func (c *Config) normalize() {
	if c.RateLimit < 0 {
		diagf("rate limit cannot be negative, disabling rate limiting")
		c.RateLimit = 0
	}
	c.File.normalize()
	c.Mail.normalize()
	c.Syslog.normalize()
}

func (c *FileConfig) normalize() {
	if c.MaxBytes <= 0 {
		diagf("file max_bytes must be positive, using default %d", DefaultMaxBytes)
		c.MaxBytes = DefaultMaxBytes
	}
	if c.BackupCount < 0 {
		diagf("file backup_count cannot be negative, using default %d", DefaultBackupCount)
		c.BackupCount = DefaultBackupCount
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
}

func (c *MailConfig) normalize() {
	if c.Name == "" || c.Name == "root" {
		diagf("mail logger name cannot be empty or root, using name SMTP")
		c.Name = "SMTP"
	}
	if c.Port <= 0 || c.Port > 65535 {
		diagf("mail port %d out of range, using default %d", c.Port, DefaultSMTPPort)
		c.Port = DefaultSMTPPort
	}
	if c.Capacity <= 0 {
		diagf("mail capacity must be positive, using default %d", DefaultMailCapacity)
		c.Capacity = DefaultMailCapacity
	}
}

func (c *SyslogConfig) normalize() {
	if c.Port <= 0 || c.Port > 65535 {
		diagf("syslog port %d out of range, using default %d", c.Port, DefaultSyslogPort)
		c.Port = DefaultSyslogPort
	}
}
