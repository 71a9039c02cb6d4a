package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults key by key", func(t *testing.T) {
		dir := t.TempDir()
		content := `manuals:
  views: docs/steps
diff:
  exclude:
    - "**/*.lock"
log:
  file: ""
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "README.md", cfg.Manuals.Root)
		assert.Equal(t, "docs/steps", cfg.Manuals.Views)
		assert.Equal(t, []string{"**/*.lock"}, cfg.Diff.Exclude)
		assert.Empty(t, cfg.LogPath("/repo/.git"))
	})

	t.Run("invalid file is rejected", func(t *testing.T) {
		dir := t.TempDir()
		content := "manuals:\n  root: /etc/README.md\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))

		_, err := Load(dir)
		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "manuals.root", fieldErrs[0].Field)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Diff.Exclude = []string{"vendor/**"}
	require.NoError(t, cfg.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty root", func(c *Config) { c.Manuals.Root = "" }, "manuals.root"},
		{"views outside repository", func(c *Config) { c.Manuals.Views = "../views" }, "manuals.views"},
		{"bad exclude pattern", func(c *Config) { c.Diff.Exclude = []string{"ok/**", "[unclosed"} }, "diff.exclude[1]"},
		{"missing binary", func(c *Config) { c.Binary = "definitely-not-a-stepwise-binary --flag" }, "binary"},
		{"unbalanced quote in binary", func(c *Config) { c.Binary = "'sh run" }, "binary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, cfg.Validate(), &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestValidateMultiWordBinary(t *testing.T) {
	for _, binary := range []string{"sh ./scripts/stepwise.sh", "'sh' -c 'exec stepwise \"$@\"' stepwise"} {
		cfg := Default()
		cfg.Binary = binary
		assert.NoError(t, cfg.Validate(), binary)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	value, err := cfg.Get("manuals.views")
	require.NoError(t, err)
	assert.Equal(t, ".stepwise/manuals/views", value)

	require.NoError(t, cfg.Set("diff.exclude", "*.lock, vendor/**"))
	assert.Equal(t, []string{"*.lock", "vendor/**"}, cfg.Diff.Exclude)

	value, err = cfg.Get("diff.exclude")
	require.NoError(t, err)
	assert.Equal(t, "*.lock,vendor/**", value)

	t.Run("rejected values leave the config unchanged", func(t *testing.T) {
		assert.Error(t, cfg.Set("manuals.root", "/abs"))
		assert.Equal(t, "README.md", cfg.Manuals.Root)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := cfg.Get("trunk")
		assert.ErrorContains(t, err, "unknown config key")
		assert.Error(t, cfg.Set("trunk", "main"))
	})
}

func TestLogPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/repo/.git", "stepwise", "stepwise.log"), cfg.LogPath("/repo/.git"))

	cfg.Log.File = "/var/log/stepwise.log"
	assert.Equal(t, "/var/log/stepwise.log", cfg.LogPath("/repo/.git"))
}
