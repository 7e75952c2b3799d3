package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/agiangrant/esthetic"
	"github.com/agiangrant/esthetic/internal/logging"
)

// ProjectFile is the configuration file looked up in the project root.
const ProjectFile = "esthetic.toml"

// LoadProjectConfig loads path when given. Otherwise it looks for
// esthetic.toml in the project root and falls back to the defaults when there
// is none.
func LoadProjectConfig(path string) (esthetic.Config, error) {
	if path != "" {
		return esthetic.LoadConfig(path)
	}

	root, err := FindProjectRoot()
	if err != nil {
		return esthetic.DefaultConfig(), nil
	}

	candidate := filepath.Join(root, ProjectFile)
	if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
		return esthetic.DefaultConfig(), nil
	}
	return esthetic.LoadConfig(candidate)
}

// FindProjectRoot finds the project root by looking for esthetic.toml or go.mod
// in the working directory and its parents.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}
		// go.mod as fallback
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in an esthetic project (no %s or go.mod found)", ProjectFile)
		}
		dir = parent
	}
}

// newFlagSet returns a flag set carrying the flags every command shares.
func newFlagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	return fs, logLevel
}

// parse parses args and applies the shared flags.
func parse(fs *pflag.FlagSet, logLevel *string, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	logging.SetRawLogLevel(*logLevel)
	return nil
}
