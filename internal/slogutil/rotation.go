package slogutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// RotationPolicy bounds a log file. A zero MaxSize disables rotation;
// MaxBackups rotated copies (dbcalls.log.1 is the newest) are kept.
type RotationPolicy struct {
	MaxSize    int64
	MaxBackups int
}

// Enabled reports whether the policy rotates at all.
func (p RotationPolicy) Enabled() bool {
	return p.MaxSize > 0
}

// ParseRotation builds a policy from the logging.maxSize and
// logging.maxBackups settings.
func ParseRotation(maxSize string, maxBackups int) (RotationPolicy, error) {
	size, err := ParseSize(maxSize)
	if err != nil {
		return RotationPolicy{}, err
	}
	if maxBackups < 0 {
		return RotationPolicy{}, fmt.Errorf("negative backup count %d", maxBackups)
	}
	return RotationPolicy{MaxSize: size, MaxBackups: maxBackups}, nil
}

var sizeUnits = []struct {
	suffix string
	factor float64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize converts "512KB", "10MB" or a bare byte count into bytes.
// The empty string means no limit.
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	factor := float64(1)
	number := s
	for _, u := range sizeUnits {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			number, factor = strings.TrimSpace(rest), u.factor
			break
		}
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return int64(value * factor), nil
}

// RotatingFile appends to a log file and shifts it to numbered backups
// once the next write would cross the policy's size limit.
type RotatingFile struct {
	mu     sync.Mutex
	path   string
	policy RotationPolicy
	file   *os.File
	size   int64
}

// OpenRotatingFile opens path for appending, creating parent directories.
func OpenRotatingFile(path string, policy RotationPolicy) (*RotatingFile, error) {
	rf := &RotatingFile{path: path, policy: policy}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *RotatingFile) open() error {
	f, err := openAppend(r.path)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	r.file, r.size = f, info.Size()
	return nil
}

// Write rotates first when needed. A failed rotation does not drop the record.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.policy.Enabled() && r.size > 0 && r.size+int64(len(p)) > r.policy.MaxSize {
		if err := r.rotate(); err != nil && r.file == nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Close closes the current file.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *RotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	r.file = nil

	if r.policy.MaxBackups == 0 {
		_ = os.Remove(r.path)
		return r.open()
	}

	_ = os.Remove(r.backup(r.policy.MaxBackups))
	for n := r.policy.MaxBackups - 1; n >= 1; n-- {
		_ = os.Rename(r.backup(n), r.backup(n+1))
	}
	_ = os.Rename(r.path, r.backup(1))
	return r.open()
}

func (r *RotatingFile) backup(n int) string {
	return r.path + "." + strconv.Itoa(n)
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// NewFileHandler returns a TextHandler writing to path and the closer for
// the underlying file. Rotation applies only when the policy enables it.
func NewFileHandler(path string, level slog.Level, policy RotationPolicy) (slog.Handler, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: level}

	if !policy.Enabled() {
		f, err := openAppend(path)
		if err != nil {
			return nil, nil, err
		}
		return NewTextHandler(f, opts), f, nil
	}

	rf, err := OpenRotatingFile(path, policy)
	if err != nil {
		return nil, nil, err
	}
	return NewTextHandler(rf, opts), rf, nil
}
