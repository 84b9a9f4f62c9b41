package transitionlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink appends formatted lines. Implementations must serialize concurrent writes so
// lines never interleave.
type Sink interface {
	WriteLine(ctx context.Context, line string) error
}

// FileSink appends lines to a flat text file, opening and closing it on every write.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink returns a sink for path. The file is created on first write.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the file the sink appends to.
func (s *FileSink) Path() string {
	return s.path
}

// Ping reports whether the next write can succeed without writing anything: an
// existing file must open for append, a missing one needs an existing parent
// directory.
func (s *FileSink) Ping(_ context.Context) error {
	info, err := os.Stat(s.path)
	switch {
	case err == nil:
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", s.path)
		}
		f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open %s: %w", s.path, err)
		}
		return f.Close()
	case errors.Is(err, os.ErrNotExist):
		dir := filepath.Dir(s.path)
		dirInfo, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("log directory %s: %w", dir, err)
		}
		if !dirInfo.IsDir() {
			return fmt.Errorf("log directory %s is not a directory", dir)
		}
		return nil
	default:
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
}

// WriteLine appends line plus a newline in a single write.
func (s *FileSink) WriteLine(_ context.Context, line string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", s.path, cerr)
		}
	}()

	if _, werr := f.WriteString(line + "\n"); werr != nil {
		return fmt.Errorf("append %s: %w", s.path, werr)
	}
	return nil
}

// MemorySink keeps lines in memory. Used by tests and the console demo.
type MemorySink struct {
	mu    sync.Mutex
	lines []string
	err   error
}

// NewMemorySink returns an empty sink that accepts writes.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteLine records line, or returns the error set with FailWith.
func (s *MemorySink) WriteLine(_ context.Context, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, line)
	return nil
}

// FailWith makes subsequent writes return err. A nil err restores normal behavior.
func (s *MemorySink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Lines returns a copy of the written lines.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// MultiSink writes every line to each sink in order.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink fans writes out to sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// WriteLine tries every sink and joins the failures. A line that reached some sinks
// is not withdrawn when another fails.
func (m *MultiSink) WriteLine(ctx context.Context, line string) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.WriteLine(ctx, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
