package sinklog

// Builder provides a fluent API for assembling a registry from a Config.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// ConfigFile loads a TOML configuration file over the defaults.
func (b *Builder) ConfigFile(path string) *Builder {
	if b.err != nil {
		return b
	}
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg = cfg
	return b
}

// Level sets the minimum level for every configured sink.
func (b *Builder) Level(level string) *Builder {
	b.cfg.Console.Level = level
	b.cfg.File.Level = level
	b.cfg.Mail.Level = level
	b.cfg.Syslog.Level = level
	return b
}

// TimeZone sets the timestamp zone style ("local" or "utc") for every sink.
func (b *Builder) TimeZone(style string) *Builder {
	b.cfg.Console.TimeZone = style
	b.cfg.File.TimeZone = style
	b.cfg.Mail.TimeZone = style
	b.cfg.Syslog.TimeZone = style
	return b
}

// ConsoleTarget selects "stdout" or "stderr" for the console sink.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.Console.Target = target
	return b
}

// Colors replaces the console color table.
func (b *Builder) Colors(colors LevelColors) *Builder {
	b.cfg.Console.Colors = colors
	return b
}

// FilePath enables the file sink at the given path.
func (b *Builder) FilePath(path string) *Builder {
	b.cfg.File.Enabled = true
	b.cfg.File.Path = path
	return b
}

// MaxBytes sets the rotation threshold for the file sink.
func (b *Builder) MaxBytes(n int64) *Builder {
	b.cfg.File.MaxBytes = n
	return b
}

// BackupCount sets the maximum number of compressed archives kept on disk.
func (b *Builder) BackupCount(n int64) *Builder {
	b.cfg.File.BackupCount = n
	return b
}

// Encoding sets the file sink's text encoding by IANA charset name.
func (b *Builder) Encoding(name string) *Builder {
	b.cfg.File.Encoding = name
	return b
}

// Mail enables the mail sink with the given transport settings.
func (b *Builder) Mail(host string, port int64, from string, to ...string) *Builder {
	b.cfg.Mail.Enabled = true
	b.cfg.Mail.Host = host
	b.cfg.Mail.Port = port
	b.cfg.Mail.From = from
	b.cfg.Mail.To = to
	return b
}

// MailAuth sets the SMTP credentials.
func (b *Builder) MailAuth(username, password string) *Builder {
	b.cfg.Mail.Username = username
	b.cfg.Mail.Password = password
	return b
}

// MailSubject sets the digest subject line.
func (b *Builder) MailSubject(subject string) *Builder {
	b.cfg.Mail.Subject = subject
	return b
}

// MailCapacity sets the buffered record count per outbound message.
func (b *Builder) MailCapacity(n int64) *Builder {
	b.cfg.Mail.Capacity = n
	return b
}

// Syslog enables the syslog sink targeting the given endpoint.
func (b *Builder) Syslog(address string, port int64) *Builder {
	b.cfg.Syslog.Enabled = true
	b.cfg.Syslog.Address = address
	b.cfg.Syslog.Port = port
	return b
}

// SyslogAppName sets the APPNAME field of outbound frames.
func (b *Builder) SyslogAppName(name string) *Builder {
	b.cfg.Syslog.AppName = name
	return b
}

// RateLimit caps records per second per logger, 0 for unlimited.
func (b *Builder) RateLimit(perSecond int64) *Builder {
	b.cfg.RateLimit = perSecond
	return b
}

// Build normalizes the configuration and constructs a registry with one
// logger per enabled sink. The console logger is always present.
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	cfg := b.cfg.Clone()
	cfg.normalize()

	reg := NewRegistry()

	console := reg.Console(cfg.Console)
	console.SetRateLimit(cfg.RateLimit)

	if cfg.File.Enabled {
		reg.File(cfg.File).SetRateLimit(cfg.RateLimit)
	}
	if cfg.Mail.Enabled {
		lg, _ := reg.Mail(cfg.Mail)
		lg.SetRateLimit(cfg.RateLimit)
	}
	if cfg.Syslog.Enabled {
		reg.Syslog(cfg.Syslog).SetRateLimit(cfg.RateLimit)
	}

	return reg, nil
}

// Example usage:
//
//	registry, err := sinklog.NewBuilder().
//		Level("debug").
//		TimeZone("utc").
//		FilePath("/var/log/app/app.log").
//		MaxBytes(10 * 1024 * 1024).
//		BackupCount(5).
//		Build()
//
//	if err == nil {
//		defer registry.Close()
//		if lg, ok := registry.Get("File"); ok {
//			lg.Info("logger initialized")
//		}
//	}
