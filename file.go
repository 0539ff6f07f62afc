package sinklog

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// FileSink appends records to an active file and rotates it into a bounded
// sequence of gzip archives once it would exceed MaxBytes. Archives are
// named <path>.<index>.gz with index 1 the newest; at most backupCount
// archives exist at any time for a given base path.
type FileSink struct {
	mu          sync.Mutex
	path        string
	maxBytes    int64
	backupCount int
	delay       bool
	enc         encoding.Encoding // nil for UTF-8 passthrough
	formatter   *Formatter

	file *os.File
	encw io.WriteCloser // transform writer when enc is set
	w    io.Writer
	size int64
}

// NewFileSink creates a file sink for cfg. The target path must be openable
// at construction time unless Delay is set; on failure the caller is
// expected to fall back to a console sink.
func NewFileSink(cfg FileConfig) (*FileSink, error) {
	cfg.normalize()

	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmtErrorf("file path cannot be empty")
	}

	level, err := NormalizeLevel(cfg.Level, LevelInfo)
	if err != nil {
		diagf("%v", err)
	}

	enc, err := resolveEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	s := &FileSink{
		path:        cfg.Path,
		maxBytes:    cfg.MaxBytes,
		backupCount: int(cfg.BackupCount),
		delay:       cfg.Delay,
		enc:         enc,
		formatter:   NewFormatter(level, parseTimeZoneStyle(cfg.TimeZone)),
	}

	if !cfg.Delay {
		if err := s.open(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// resolveEncoding maps a charset name to a text encoding.
// UTF-8 needs no transformation and resolves to nil.
func resolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmtErrorf("unknown text encoding '%s': %w", name, err)
	}
	if enc == nil {
		return nil, fmtErrorf("text encoding '%s' has no available implementation", name)
	}
	return enc, nil
}

// Write appends the formatted line to the active file, rotating first when
// the line would push the file past maxBytes. Rotation errors propagate.
func (s *FileSink) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.formatter.Format(rec)
	line = append(line, '\n')

	if s.maxBytes > 0 && s.size+int64(len(line)) > s.maxBytes {
		if err := s.rotate(); err != nil {
			return err
		}
	}
	if s.file == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	n, err := s.w.Write(line)
	s.size += int64(n)
	if err != nil {
		return fmtErrorf("failed to write log file '%s': %w", s.path, err)
	}
	return nil
}

// Rotate forces an immediate rollover regardless of the active file size.
func (s *FileSink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotate()
}

// rotate runs the close-shift-compress-reopen sequence. Caller must hold mu.
//
// Existing archives <path>.i.gz shift up one slot, oldest deleted when it
// would exceed backupCount. The active file becomes <path>.1 briefly, is
// compressed to <path>.1.gz, and a fresh active file is opened unless the
// sink is delayed.
func (s *FileSink) rotate() error {
	if err := s.closeStream(); err != nil {
		return err
	}

	if s.backupCount > 0 {
		for i := s.backupCount - 1; i >= 1; i-- {
			sfn := s.archiveName(i)
			dfn := s.archiveName(i + 1)
			if !fileExists(sfn) {
				continue
			}
			if fileExists(dfn) {
				if err := os.Remove(dfn); err != nil {
					return fmtErrorf("failed to remove archive '%s': %w", dfn, err)
				}
			}
			if err := os.Rename(sfn, dfn); err != nil {
				return fmtErrorf("failed to shift archive '%s': %w", sfn, err)
			}
		}
	}

	intermediate := s.path + ".1"
	if fileExists(intermediate) {
		if err := os.Remove(intermediate); err != nil {
			return fmtErrorf("failed to remove stale file '%s': %w", intermediate, err)
		}
	}
	if fileExists(s.path) {
		if err := os.Rename(s.path, intermediate); err != nil {
			return fmtErrorf("failed to rename log file '%s': %w", s.path, err)
		}
		if err := compressFile(intermediate, intermediate+".gz"); err != nil {
			return err
		}
		if err := os.Remove(intermediate); err != nil {
			return fmtErrorf("failed to remove intermediate '%s': %w", intermediate, err)
		}
	}

	s.size = 0
	if !s.delay {
		return s.open()
	}
	return nil
}

// archiveName returns the compressed archive path for the given slot.
func (s *FileSink) archiveName(index int) string {
	return fmt.Sprintf("%s.%d.gz", s.path, index)
}

// open creates or appends the active file at the base path. Caller holds mu.
func (s *FileSink) open() error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", s.path, err)
	}
	s.file = f
	s.size = 0
	if fi, errStat := f.Stat(); errStat == nil {
		s.size = fi.Size()
	}
	if s.enc != nil {
		tw := transform.NewWriter(f, s.enc.NewEncoder())
		s.encw = tw
		s.w = tw
	} else {
		s.encw = nil
		s.w = f
	}
	return nil
}

// closeStream flushes the encoder and closes the active file. Caller holds mu.
func (s *FileSink) closeStream() error {
	var err error
	if s.encw != nil {
		err = combineErrors(err, s.encw.Close())
		s.encw = nil
	}
	if s.file != nil {
		err = combineErrors(err, s.file.Close())
		s.file = nil
	}
	s.w = nil
	return err
}

// compressFile gzips src into dst, leaving src in place for the caller.
func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmtErrorf("failed to open '%s' for compression: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmtErrorf("failed to create archive '%s': %w", dst, err)
	}

	gz := gzip.NewWriter(out)
	_, copyErr := io.Copy(gz, in)
	closeErr := combineErrors(gz.Close(), out.Close())
	if copyErr != nil {
		return fmtErrorf("failed to compress '%s': %w", src, copyErr)
	}
	if closeErr != nil {
		return fmtErrorf("failed to finalize archive '%s': %w", dst, closeErr)
	}
	return nil
}

// Flush syncs the active file to disk.
func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", s.path, err)
	}
	return nil
}

// Close flushes the encoder and closes the active file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeStream()
}
