package actions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stepwise.dev/stepwise/internal/config"
	"stepwise.dev/stepwise/internal/runtime"
	"stepwise.dev/stepwise/internal/tui"
	"stepwise.dev/stepwise/internal/utils"
)

const hookMarker = "# Installed by stepwise"

// InitOptions contains options for the init command
type InitOptions struct {
	// Force replaces a commit-msg hook not installed by stepwise
	Force bool
}

// InitAction installs the commit-msg hook and writes a default
// configuration file when the repository has none
func InitAction(ctx *runtime.Context, opts InitOptions) error {
	hooksDir, err := ctx.Repo.HooksDir(ctx)
	if err != nil {
		return err
	}

	installed, err := installCommitMsgHook(hooksDir, ctx.Binary, opts.Force)
	if err != nil {
		return err
	}
	if installed {
		ctx.Splog.Info("Installed the commit-msg hook.")
	} else {
		ctx.Splog.Warn("Kept the existing commit-msg hook. Step moves will not be detected while editing steps.")
	}

	cfgPath := config.Path(ctx.Repo.Root())
	if _, err := os.Stat(cfgPath); err == nil {
		return nil
	}
	if err := config.Default().Save(ctx.Repo.Root()); err != nil {
		return err
	}
	ctx.Splog.Info("Wrote %s.", config.FileName)
	return nil
}

// HookScript is the commit-msg hook calling back into binary, a shell
// fragment such as "stepwise" or "go run ./cmd/stepwise"
func HookScript(binary string) string {
	return "#!/bin/sh\n" + hookMarker + "\nexec " + binary + " hook commit-msg \"$1\"\n"
}

func installCommitMsgHook(hooksDir, binary string, force bool) (bool, error) {
	path := filepath.Join(hooksDir, "commit-msg")

	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	case strings.Contains(string(existing), hookMarker), force:
	case utils.IsInteractive():
		replace, err := tui.PromptConfirm("A commit-msg hook already exists. Replace it?", false)
		if err != nil {
			return false, err
		}
		if !replace {
			return false, nil
		}
	default:
		return false, fmt.Errorf("a commit-msg hook already exists at %s; use --force to replace it", path)
	}

	if err := os.MkdirAll(hooksDir, 0750); err != nil {
		return false, fmt.Errorf("failed to create hooks directory: %w", err)
	}
	// #nosec G306 -- hooks must be executable
	if err := os.WriteFile(path, []byte(HookScript(binary)), 0755); err != nil {
		return false, fmt.Errorf("failed to write commit-msg hook: %w", err)
	}
	// #nosec G302 -- hooks must be executable
	if err := os.Chmod(path, 0755); err != nil {
		return false, fmt.Errorf("failed to make commit-msg hook executable: %w", err)
	}
	return true, nil
}
