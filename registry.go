package sinklog

import (
	"sync"
)

// Registry owns named loggers, each wired to exactly one sink. It is
// created at process start and torn down with Close at exit, which flushes
// buffered sinks. Construction failures degrade to a console sink with a
// printed diagnostic; a registry lookup failure (duplicate name) is the
// only fatal path, because without a usable logger the rest of the program
// cannot observe subsequent failures.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]*Logger),
	}
}

// Get returns the logger registered under name.
func (r *Registry) Get(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lg, ok := r.loggers[name]
	return lg, ok
}

// Console creates and registers a console logger. Console construction
// cannot fail.
func (r *Registry) Console(cfg ConsoleConfig) *Logger {
	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}
	name := cfg.Name
	if name == "" {
		name = "root"
	}
	return r.mustRegister(name, newLogger(name, level, NewConsoleSink(cfg)))
}

// File creates and registers a rotating-compressing file logger. If the
// file sink cannot be constructed the logger degrades to console output.
func (r *Registry) File(cfg FileConfig) *Logger {
	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}
	name := cfg.Name
	if name == "" {
		name = "File"
	}

	var sink Sink
	sink, sinkErr := NewFileSink(cfg)
	if sinkErr != nil {
		diagf("%v", sinkErr)
		diagf("log file couldn't be opened, changing to console output")
		sink = r.fallbackConsole(cfg.Level, cfg.TimeZone)
	}
	return r.mustRegister(name, newLogger(name, level, sink))
}

// Mail creates and registers a buffered mail logger. The returned MailSink
// is the flushable handle; it is nil when construction degraded to console.
func (r *Registry) Mail(cfg MailConfig) (*Logger, *MailSink) {
	cfg.normalize()
	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}

	mailSink, sinkErr := NewMailSink(cfg)
	var sink Sink = mailSink
	if sinkErr != nil {
		diagf("%v", sinkErr)
		diagf("mail logger couldn't be created, changing to console output")
		mailSink = nil
		sink = r.fallbackConsole(cfg.Level, cfg.TimeZone)
	}
	return r.mustRegister(cfg.Name, newLogger(cfg.Name, level, sink)), mailSink
}

// Syslog creates and registers an RFC 5424 syslog logger, degrading to
// console output when the endpoint cannot be dialed.
func (r *Registry) Syslog(cfg SyslogConfig) *Logger {
	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}
	name := cfg.Name
	if name == "" {
		name = "SysLog"
	}

	var sink Sink
	sink, sinkErr := NewSyslogSink(cfg)
	if sinkErr != nil {
		diagf("%v", sinkErr)
		diagf("syslog endpoint unavailable, changing to console output")
		sink = r.fallbackConsole(cfg.Level, cfg.TimeZone)
	}
	return r.mustRegister(name, newLogger(name, level, sink))
}

// Close flushes and closes every registered sink. The registry is empty
// afterwards and may be reused.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for _, lg := range r.loggers {
		err = combineErrors(err, lg.sink.Close())
	}
	r.loggers = make(map[string]*Logger)
	return err
}

// fallbackConsole builds the degradation target, preserving level and zone.
func (r *Registry) fallbackConsole(level, timeZone string) *ConsoleSink {
	return NewConsoleSink(ConsoleConfig{
		Level:    level,
		TimeZone: timeZone,
	})
}

// mustRegister stores the logger under its name. A name collision is the
// registry-lookup failure: it terminates the process after a diagnostic.
func (r *Registry) mustRegister(name string, lg *Logger) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loggers[name]; exists {
		diagf("error while creating %s logger: name already registered", name)
		osExit(1)
		return nil
	}
	r.loggers[name] = lg
	return lg
}
