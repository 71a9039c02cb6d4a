package config

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/kballard/go-shellquote"
)

// Validate checks the configuration for structural errors
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("binary", c.Binary, executableExists),
		criterio.Run("manuals.root", c.Manuals.Root, isRelativePath),
		criterio.Run("manuals.templates", c.Manuals.Templates, isRelativePath),
		criterio.Run("manuals.views", c.Manuals.Views, isRelativePath),
		c.validateExclude(),
	)
}

func (c *Config) validateExclude() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Diff.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("diff.exclude[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	return errs.ToError()
}

// executableExists validates that the command a configured binary starts
// with can be run. The binary is a shell fragment, so quoted paths count as
// one word.
func executableExists(binary string) error {
	if binary == "" {
		return nil
	}
	words, err := shellquote.Split(binary)
	if err != nil {
		return fmt.Errorf("not a valid shell command: %w", err)
	}
	if len(words) == 0 {
		return fmt.Errorf("must not be blank")
	}
	if _, err := exec.LookPath(words[0]); err != nil {
		return fmt.Errorf("executable not found: %s", words[0])
	}
	return nil
}

// isRelativePath validates a non-empty path relative to the repository root.
func isRelativePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("must not be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("must be relative to the repository root: %s", path)
	}
	if strings.HasPrefix(filepath.Clean(path), "..") {
		return fmt.Errorf("must stay inside the repository: %s", path)
	}
	return nil
}
