package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigDirName = ".qfrbench"
	// ConfigFileName is the YAML config init writes. ConfigFileNameTOML is
	// picked up when no YAML config exists.
	ConfigFileName     = "config.yml"
	ConfigFileNameTOML = "config.toml"
	DefaultOutputDir   = ".qfrbench/results"
)

// configFileNames lists the names FindConfigPath accepts, in preference order.
var configFileNames = []string{ConfigFileName, ConfigFileNameTOML}

// ConfigDir returns the .qfrbench directory under root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns the YAML config path under root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RepoRootFromConfigPath returns the directory relative config paths resolve
// against: the parent of .qfrbench, or the config's own directory.
func RepoRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// ResolvePath joins a config-relative path onto root.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// FindConfigPath walks up from startDir, or the working directory, to the
// first .qfrbench directory and returns the config inside it.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		configDir := ConfigDir(dir)
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return configInDir(configDir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or parent directories", filepath.Join(ConfigDirName, ConfigFileName), startDirOrWD(startDir))
		}
		dir = parent
	}
}

func configInDir(configDir string) (string, error) {
	for _, name := range configFileNames {
		path := filepath.Join(configDir, name)
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("config path %q is a directory", path)
		case err == nil:
			return path, nil
		case !os.IsNotExist(err):
			return "", fmt.Errorf("stat config path %q: %w", path, err)
		}
	}
	return "", fmt.Errorf("found %q but %s is missing", configDir, strings.Join(configFileNames, " or "))
}

func startDirOrWD(startDir string) string {
	if strings.TrimSpace(startDir) != "" {
		return startDir
	}
	return "the working directory"
}
