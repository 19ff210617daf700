package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsOrderedGooseFiles(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(FS(), ".")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "00001_create_user_profiles.sql", entries[0].Name())
	assert.Equal(t, "00002_create_recordings.sql", entries[1].Name())

	for _, e := range entries {
		data, err := fs.ReadFile(FS(), e.Name())
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "-- +goose Up"), "%s lacks Up section", e.Name())
		assert.True(t, strings.Contains(string(data), "-- +goose Down"), "%s lacks Down section", e.Name())
	}
}
