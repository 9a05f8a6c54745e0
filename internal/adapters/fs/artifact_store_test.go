package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/domain/models"
)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestArtifactStoreRoundTrip(t *testing.T) {
	store := NewArtifactStore(t.TempDir())
	ctx := context.Background()

	want := &models.Artifact{
		ContractName:     "SimpleStorage",
		ABI:              []byte(`[{"type":"function","name":"get"}]`),
		Bytecode:         "0x6080604052",
		DeployedBytecode: "0x6080",
		Metadata:         `{"compiler":{"version":"0.8.19"}}`,
	}
	require.NoError(t, store.SaveArtifact(ctx, want))

	got, err := store.GetArtifact(ctx, "SimpleStorage")
	require.NoError(t, err)
	assert.Equal(t, want.ContractName, got.ContractName)
	assert.Equal(t, want.Bytecode, got.Bytecode)
	assert.Equal(t, want.DeployedBytecode, got.DeployedBytecode)
	assert.JSONEq(t, string(want.ABI), string(got.ABI))
}

func TestArtifactStoreNotFound(t *testing.T) {
	store := NewArtifactStore(t.TempDir())

	_, err := store.GetArtifact(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestArtifactStoreMalformed(t *testing.T) {
	dir := t.TempDir()
	store := NewArtifactStore(dir)

	t.Run("invalid json", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.json"), []byte("{"), 0644))
		_, err := store.GetArtifact(context.Background(), "Broken")
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	})

	t.Run("missing bytecode", func(t *testing.T) {
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "Empty.json"),
			mustJSON(t, &models.Artifact{ContractName: "Empty", ABI: []byte(`[]`)}), 0644))
		_, err := store.GetArtifact(context.Background(), "Empty")
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	})
}

func TestSettingsRoundTrip(t *testing.T) {
	store := NewArtifactStore(t.TempDir())
	ctx := context.Background()

	want := &models.CompilationSettings{
		ContractName:         "SimpleStorage",
		SolcVersion:          "0.8.19+commit.7dd6d404",
		Optimization:         models.Optimization{Enabled: true, Runs: 200},
		Pragma:               "^0.8.19",
		License:              "MIT",
		DeployedBytecode:     "0x6080",
		CompilationTimestamp: time.Unix(1690000000, 0).UTC(),
	}
	require.NoError(t, store.SaveSettings(ctx, want))

	got, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsLastWriterWins(t *testing.T) {
	store := NewArtifactStore(t.TempDir())
	ctx := context.Background()

	first := &models.CompilationSettings{ContractName: "First", SolcVersion: "0.8.19+commit.7dd6d404"}
	second := &models.CompilationSettings{ContractName: "Second", SolcVersion: "0.8.19+commit.7dd6d404"}
	require.NoError(t, store.SaveSettings(ctx, first))
	require.NoError(t, store.SaveSettings(ctx, second))

	got, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.ContractName)
}

func TestSettingsMissing(t *testing.T) {
	store := NewArtifactStore(t.TempDir())

	_, err := store.GetSettings(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "compile")
}
