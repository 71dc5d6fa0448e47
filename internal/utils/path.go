package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName is the directory name used under the platform config dir.
const AppDirName = "wordserve"

// PathResolver finds word lists and config files relative to the binary,
// the working directory and the user's config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a path resolver for the running executable.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := newPathResolver(filepath.Dir(execPath), homeDir)
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

func newPathResolver(execDir, homeDir string) *PathResolver {
	return &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppDirName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, "."+AppDirName)
	}
}

// candidates lists the locations tried for a relative file name, in order.
func (pr *PathResolver) candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, name))
	}
	return append(paths,
		filepath.Join(pr.executableDir, name),
		filepath.Join(pr.executableDir, "data", name),
		filepath.Join(pr.configDir, name),
	)
}

// GetWordsFile resolves a word list path. The first existing regular file
// wins; when none exists the name is returned unchanged so the loader can
// report the error.
func (pr *PathResolver) GetWordsFile(name string) string {
	for _, path := range pr.candidates(name) {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found word list: %s", path)
			return path
		}
		log.Debugf("Word list candidate not found: %s", path)
	}
	return name
}

// GetConfigPath returns the full path for a config file, falling back to
// other writable locations when the config dir is read-only.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if CheckDirStatus(pr.configDir).Writable {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, "."+AppDirName),
		filepath.Join(os.TempDir(), AppDirName),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if CheckDirStatus(dir).Writable {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// GetConfigDir returns the platform config directory.
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
