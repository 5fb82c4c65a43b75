package paths

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// ConfigDirName is the per-project directory holding dbcalls configuration.
const ConfigDirName = ".dbcalls"

// ConfigDir returns <base>/.dbcalls
func ConfigDir(base string) string {
	return filepath.Join(base, ConfigDirName)
}

// realPath resolves symlinks. For a path that does not exist the nearest
// existing ancestor is resolved and the rest is appended unchanged.
func realPath(p string) (string, error) {
	resolved, err := filepath.EvalSymlinks(p)
	if !errors.Is(err, fs.ErrNotExist) {
		return resolved, err
	}
	parent := filepath.Dir(p)
	if parent == p {
		return p, nil
	}
	dir, err := realPath(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(p)), nil
}

// CanonicalizePath returns absolutePath relative to root, slash-separated,
// with symlinks on both sides resolved.
func CanonicalizePath(absolutePath string, root string) (string, error) {
	file, err := realPath(absolutePath)
	if err != nil {
		return "", err
	}
	base, err := realPath(root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, file)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsWithinRoot reports whether p is root itself or lies below it.
func IsWithinRoot(p string, root string) bool {
	rel, err := CanonicalizePath(p, root)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// NormalizePath turns an index or user supplied relative path into the
// slash form used as a document key: `.\Data\Repo.cs` -> `Data/Repo.cs`.
func NormalizePath(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// ReducedPath keeps only the enclosing directory name and the file name:
// /src/app/Data/OrderRepository.cs -> Data/OrderRepository.cs
func ReducedPath(p string) string {
	clean := filepath.Clean(p)
	parent := filepath.Base(filepath.Dir(clean))
	if parent == "." || parent == string(filepath.Separator) {
		return filepath.Base(clean)
	}
	return filepath.Join(parent, filepath.Base(clean))
}
