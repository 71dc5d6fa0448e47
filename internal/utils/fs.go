package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DirCheckResult represents the result of dir checks
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists reports whether anything exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath and its parents.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0o755)
}

// AbsPath returns path made absolute, or path itself when that fails.
func AbsPath(path string) string {
	if path == "" {
		return "unknown"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// GetExecutableDir returns the directory of the running binary.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

func writable(dirPath string) bool {
	tmp, err := os.CreateTemp(dirPath, ".write_test-*")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	tmp.Close()
	os.Remove(tmp.Name())
	return true
}

// CheckDirStatus creates dirPath if needed and checks it for write access.
func CheckDirStatus(dirPath string) DirCheckResult {
	if err := EnsureDir(dirPath); err != nil {
		log.Warnf("Cannot create directory %s: %v", dirPath, err)
		return DirCheckResult{Error: err}
	}
	return DirCheckResult{Exists: true, Writable: writable(dirPath)}
}
