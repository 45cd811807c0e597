package reorganize

import (
	"context"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-maid/internal/loader"
	"github.com/griffnb/core-maid/internal/membertype"
)

func TestService_Run(t *testing.T) {
	t.Run("reports changed files sorted by path", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte(unordered), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte(ordered), 0o644))
		loaded, err := loader.NewService().LoadSearchDirs([]string{dir})
		require.NoError(t, err)

		// Act
		results, err := NewService(membertype.DefaultSettings(), Options{}, nil).Run(context.Background(), loaded.Files)

		// Assert
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, filepath.Join(dir, "a.go"), results[0].Path)
		assert.False(t, results[0].Changed)
		assert.True(t, results[1].Changed)
		assert.Equal(t, ordered, string(results[1].Output))

		changed := Changed(results)
		require.Len(t, changed, 1)
		assert.Equal(t, filepath.Join(dir, "b.go"), changed[0].Path)
	})

	t.Run("writes changed files keeping permissions", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "b.go")
		require.NoError(t, os.WriteFile(path, []byte(unordered), 0o600))
		loaded, err := loader.NewService().LoadSearchDirs([]string{dir})
		require.NoError(t, err)

		results, err := NewService(nil, Options{}, nil).Run(context.Background(), loaded.Files)
		require.NoError(t, err)
		require.NoError(t, Write(results))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ordered, string(b))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("keeps going past a file it cannot reorganize", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte(unordered), 0o644))
		loaded, err := loader.NewService().LoadSearchDirs([]string{dir})
		require.NoError(t, err)
		broken := filepath.Join(dir, "a.go")
		loaded.Files[broken] = &loader.AstFileInfo{
			File:    loaded.Files[filepath.Join(dir, "b.go")].File,
			Path:    broken,
			FileSet: token.NewFileSet(),
			Source:  []byte(unordered),
		}

		// Act
		results, err := NewService(nil, Options{}, nil).Run(context.Background(), loaded.Files)

		// Assert
		require.NoError(t, err)
		require.Len(t, results, 2)
		failed := Failed(results)
		require.Len(t, failed, 1)
		assert.Equal(t, broken, failed[0].Path)
		assert.False(t, failed[0].Changed)
		require.Len(t, Changed(results), 1)
		assert.Equal(t, ordered, string(Changed(results)[0].Output))
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte(unordered), 0o644))
		loaded, err := loader.NewService().LoadSearchDirs([]string{dir})
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = NewService(nil, Options{}, nil).Run(ctx, loaded.Files)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
