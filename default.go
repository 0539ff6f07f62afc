package sinklog

// Global registry for package-level convenience functions
var defaultRegistry = NewRegistry()

// Default package-level functions that delegate to the default registry

// Console creates a console logger in the default registry.
func Console(cfg ConsoleConfig) *Logger {
	return defaultRegistry.Console(cfg)
}

// File creates a rotating-compressing file logger in the default registry.
func File(cfg FileConfig) *Logger {
	return defaultRegistry.File(cfg)
}

// Mail creates a buffered mail logger in the default registry, returning
// the logger and the flushable sink handle.
func Mail(cfg MailConfig) (*Logger, *MailSink) {
	return defaultRegistry.Mail(cfg)
}

// Syslog creates an RFC 5424 syslog logger in the default registry.
func Syslog(cfg SyslogConfig) *Logger {
	return defaultRegistry.Syslog(cfg)
}

// Get returns a logger registered under name in the default registry.
func Get(name string) (*Logger, bool) {
	return defaultRegistry.Get(name)
}

// Close flushes and closes every sink in the default registry.
func Close() error {
	return defaultRegistry.Close()
}
