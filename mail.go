package sinklog

import (
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
)

// MailSender transmits one composed message to its recipients.
// The default implementation speaks SMTP with STARTTLS; tests substitute
// an in-memory recorder.
type MailSender interface {
	Send(from string, to []string, msg []byte) error
}

// smtpSender is the default MailSender: connect, upgrade to TLS,
// authenticate, send, quit. One session per flush, no retry.
type smtpSender struct {
	host     string
	port     int64
	username string
	password string
}

func (s smtpSender) Send(from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(s.host, strconv.FormatInt(s.port, 10))
	c, err := smtp.Dial(addr)
	if err != nil {
		return fmtErrorf("failed to connect to mail server '%s': %w", addr, err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
		return fmtErrorf("failed to start TLS with '%s': %w", addr, err)
	}
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := c.Auth(auth); err != nil {
		return fmtErrorf("failed to authenticate with '%s': %w", addr, err)
	}

	if err := c.Mail(from); err != nil {
		return fmtErrorf("mail server rejected sender '%s': %w", from, err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmtErrorf("mail server rejected recipient '%s': %w", rcpt, err)
		}
	}

	wc, err := c.Data()
	if err != nil {
		return fmtErrorf("failed to open mail data stream: %w", err)
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return fmtErrorf("failed to write mail body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmtErrorf("failed to finish mail body: %w", err)
	}

	return c.Quit()
}

// MailSink buffers records up to a fixed capacity and sends them as a
// single message when flushed. The buffer is cleared unconditionally after
// a flush attempt, even on send failure, to avoid unbounded growth; the
// failure is surfaced once to the caller.
type MailSink struct {
	mu        sync.Mutex
	from      string
	to        []string
	subject   string
	capacity  int
	formatter *Formatter
	sender    MailSender
	buffer    []Record
}

// NewMailSink creates a mail sink. Host, sender and recipients are required.
func NewMailSink(cfg MailConfig) (*MailSink, error) {
	cfg.normalize()

	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmtErrorf("mail host cannot be empty")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmtErrorf("mail sender address cannot be empty")
	}
	if len(cfg.To) == 0 {
		return nil, fmtErrorf("mail recipient list cannot be empty")
	}

	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}

	return &MailSink{
		from:      cfg.From,
		to:        append([]string(nil), cfg.To...),
		subject:   cfg.Subject,
		capacity:  int(cfg.Capacity),
		formatter: NewFormatter(level, parseTimeZoneStyle(cfg.TimeZone)),
		sender: smtpSender{
			host:     cfg.Host,
			port:     cfg.Port,
			username: cfg.Username,
			password: cfg.Password,
		},
		buffer: make([]Record, 0, cfg.Capacity),
	}, nil
}

// SetSender replaces the outbound transport. Must be called before the
// first Write.
func (s *MailSink) SetSender(sender MailSender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

// Write appends a record to the buffer, flushing when capacity is reached.
// Append-and-maybe-flush is atomic per sink.
func (s *MailSink) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buffer = append(s.buffer, rec)
	if len(s.buffer) >= s.capacity {
		return s.flushLocked()
	}
	return nil
}

// Flush sends all buffered records as one message.
func (s *MailSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// Buffered reports the number of records awaiting the next flush.
func (s *MailSink) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

// flushLocked composes and sends the digest. Caller must hold mu.
func (s *MailSink) flushLocked() error {
	if len(s.buffer) == 0 {
		return nil
	}
	// Cleared even on send failure
	defer func() { s.buffer = s.buffer[:0] }()

	var msg []byte
	msg = append(msg, "From: "...)
	msg = append(msg, s.from...)
	msg = append(msg, "\r\nTo: "...)
	msg = append(msg, strings.Join(s.to, ",")...)
	msg = append(msg, "\r\nSubject: "...)
	msg = append(msg, s.subject...)
	msg = append(msg, "\r\n\r\n"...)
	for _, rec := range s.buffer {
		msg = append(msg, s.formatter.Format(rec)...)
		msg = append(msg, "\r\n"...)
	}

	return s.sender.Send(s.from, s.to, msg)
}

// Close flushes any remaining buffered records.
func (s *MailSink) Close() error {
	return s.Flush()
}
