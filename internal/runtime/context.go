package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stepwise.dev/stepwise/internal/config"
	"stepwise.dev/stepwise/internal/diffstep"
	"stepwise.dev/stepwise/internal/git"
	"stepwise.dev/stepwise/internal/manual"
	"stepwise.dev/stepwise/internal/output"
	"stepwise.dev/stepwise/internal/rebase"
	"stepwise.dev/stepwise/internal/storage"
	"stepwise.dev/stepwise/internal/utils"
)

// Context provides access to the repository and output for commands
type Context struct {
	context.Context
	Repo   *git.Repository
	Config *config.Config
	Store  storage.Store
	Splog  *output.Splog
	// Binary is how composed commands invoke stepwise
	Binary string
}

// NewContext creates a context from already opened dependencies
func NewContext(ctx context.Context, repo *git.Repository, cfg *config.Config, store storage.Store, splog *output.Splog) *Context {
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Context{
		Context: ctx,
		Repo:    repo,
		Config:  cfg,
		Store:   store,
		Splog:   splog,
		Binary:  ResolveBinary(cfg),
	}
}

// GetContext opens the repository containing the working directory, loads
// its configuration and sets up logging.
func GetContext(ctx context.Context) (*Context, error) {
	repo, err := git.OpenCurrentRepository(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repo.Root())
	if err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithConfig(os.Stdout, cfg.LogPath(repo.GitDir()))
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return NewContext(ctx, repo, cfg, storage.NewFileStore(repo.GitDir()), splog), nil
}

// ResolveBinary returns the shell fragment used to call stepwise back from
// git: STEPWISE_BINARY, then the configured binary, then the running
// executable. The first two are taken as written; the executable path is
// quoted.
func ResolveBinary(cfg *config.Config) string {
	if bin := os.Getenv("STEPWISE_BINARY"); bin != "" {
		return bin
	}
	if cfg != nil && cfg.Binary != "" {
		return cfg.Binary
	}
	exe, err := os.Executable()
	if err != nil {
		return "stepwise"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return utils.ShellQuote(exe)
}

// Commands composes the exec lines placed into rebase todos
func (c *Context) Commands() rebase.Commands {
	renderer := c.Config.Manuals.Renderer
	if renderer == "" {
		renderer = c.Binary + " manual"
	}
	return rebase.Commands{
		Binary:     c.Binary,
		Renderer:   renderer,
		RootManual: c.Config.Manuals.Root,
		ViewsDir:   c.Config.Manuals.Views,
	}
}

// Editor returns the rebase todo editor bound to the flag store
func (c *Context) Editor() *rebase.Editor {
	return rebase.NewEditor(c.Store, c.Commands(), c.Splog)
}

// DiffRenderer returns the step diff renderer honoring diff.exclude
func (c *Context) DiffRenderer() *diffstep.Renderer {
	return diffstep.NewRenderer(c.Config.Diff.Exclude)
}

// ManualRenderer returns the manual renderer of the repository
func (c *Context) ManualRenderer() *manual.Renderer {
	return manual.NewRenderer(c.Repo.Root(), c.Config.Manuals, c.Repo, c.DiffRenderer())
}

// Close releases the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}
