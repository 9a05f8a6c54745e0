package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Token.sol"), []byte("contract Token {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Auction.sol"), []byte("contract Auction {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not solidity"), 0644))

	reader := NewSourceReader(dir)
	ctx := context.Background()

	t.Run("contract source", func(t *testing.T) {
		source, err := reader.ContractSource(ctx, "Token")
		require.NoError(t, err)
		assert.Equal(t, "contract Token {}", source)
	})

	t.Run("missing contract", func(t *testing.T) {
		_, err := reader.ContractSource(ctx, "Missing")
		require.Error(t, err)
		assert.ErrorContains(t, err, "Missing.sol")
	})

	t.Run("list is sorted and solidity-only", func(t *testing.T) {
		files, err := reader.ListSources(ctx)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, filepath.Join(dir, "Auction.sol"), files[0].Path)
		assert.Equal(t, filepath.Join(dir, "Token.sol"), files[1].Path)
		assert.Equal(t, "contract Auction {}", files[0].Content)
	})

	t.Run("empty directory", func(t *testing.T) {
		files, err := NewSourceReader(t.TempDir()).ListSources(ctx)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}
