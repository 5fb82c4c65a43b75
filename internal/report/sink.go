package report

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dbcalls/internal/errors"
)

// TimestampFormat is the layout of the timestamp in report file names.
const TimestampFormat = "20060102150405"

// Sink receives rendered lines. Close is called once, after the summary line,
// and only when the run succeeded.
type Sink interface {
	WriteLine(line string) error
	Close() error
}

// ConsoleSink writes each line as soon as it is produced.
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a sink writing to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// WriteLine implements Sink.
func (s *ConsoleSink) WriteLine(line string) error {
	if _, err := io.WriteString(s.w, line+"\n"); err != nil {
		return errors.Wrap(errors.ReportWriteFailed, err, "failed to write report line")
	}
	return nil
}

// Close implements Sink.
func (s *ConsoleSink) Close() error {
	return nil
}

// FileSink collects lines and writes them to <dir>/<category>_<timestamp>.csv
// on Close. Nothing is written for a run that never closes the sink.
type FileSink struct {
	dir      string
	category string
	now      func() time.Time
	create   func(path string) (*os.File, error)
	lines    []string
	path     string
}

// NewFileSink creates a file sink.
func NewFileSink(dir, category string) *FileSink {
	return &FileSink{dir: dir, category: category, now: time.Now, create: createExclusive}
}

// createExclusive refuses to replace a report left by another run that
// finished within the same second.
func createExclusive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// FileName returns the report file name for category at t.
func FileName(category string, t time.Time) string {
	return category + "_" + t.Format(TimestampFormat) + ".csv"
}

// WriteLine implements Sink.
func (s *FileSink) WriteLine(line string) error {
	s.lines = append(s.lines, line)
	return nil
}

// Close creates the file and writes every collected line. An existing file
// is never overwritten, and a partially written one is removed.
func (s *FileSink) Close() error {
	path := filepath.Join(s.dir, FileName(s.category, s.now()))

	f, err := s.create(path)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrap(errors.ReportWriteFailed, err, "report %s already exists", path).
				WithDetails(map[string]string{"path": path})
		}
		return errors.Wrap(errors.ReportWriteFailed, err, "failed to create report %s", path)
	}

	if err := writeLines(f, s.lines); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return errors.Wrap(errors.ReportWriteFailed, err, "failed to write report %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return errors.Wrap(errors.ReportWriteFailed, err, "failed to close report %s", path)
	}

	s.path = path
	return nil
}

func writeLines(f *os.File, lines []string) error {
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return err
	}
	return w.Flush()
}

// Path returns the written file, or "" before a successful Close.
func (s *FileSink) Path() string {
	return s.path
}
