package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter88213/novelibre-sub001/internal/domain/mocks"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/config"
)

func TestNewInitHandler(t *testing.T) {
	journal := mocks.NewJournal()

	handler := NewInitHandler(journal)

	require.NotNil(t, handler)
	assert.Equal(t, journal, handler.journal)
}

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()

	handler := NewInitHandler(mocks.NewJournal())

	result, err := handler.Handle(t.Context(), tmpDir)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Equal(t, filepath.Join(tmpDir, config.DefaultConfigDir, config.DefaultJournalFile), result.JournalPath)
	assert.True(t, config.Exists(tmpDir))
}

func TestInitHandler_Handle_WithoutJournal(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := NewInitHandler(nil).Handle(t.Context(), tmpDir)

	require.NoError(t, err)
	assert.Empty(t, result.JournalPath)
}

func TestInitHandler_Handle_JournalDisabled(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("NOVX_JOURNAL_ENABLED", "false")

	journal := mocks.NewJournal()
	journal.Err = errors.New("must not be called")

	result, err := NewInitHandler(journal).Handle(t.Context(), tmpDir)

	require.NoError(t, err)
	assert.Empty(t, result.JournalPath)
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()

	err := config.WriteDefault(tmpDir)
	require.NoError(t, err)

	_, err = NewInitHandler(mocks.NewJournal()).Handle(t.Context(), tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInitHandler_Handle_JournalError(t *testing.T) {
	tmpDir := t.TempDir()

	journal := mocks.NewJournal()
	journal.Err = errors.New("disk full")

	_, err := NewInitHandler(journal).Handle(t.Context(), tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating journal")
	assert.Contains(t, err.Error(), "disk full")

	_, statErr := os.Stat(config.FilePath(tmpDir))
	assert.NoError(t, statErr)
}
