package commands

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEventDocument(t *testing.T) {
	dir := t.TempDir()

	doc := `{
  "channel_id": 200,
  "role_id": 500,
  "title": "Game Night",
  "description": "Bring snacks",
  "color": "gold",
  "image_url": "https://example.com/banner.png",
  "footer": "See you there",
  "reactions": ["🎮", "🍕"]
}`
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "gamenight.json"), []byte(doc), 0o644))

	loaded, err := loadEventDocument(dir, "gamenight")
	require.NoError(t, err)

	assert.Equal(t, int64(200), loaded.ChannelID)
	assert.Equal(t, int64(500), loaded.RoleID)
	assert.Equal(t, "Game Night", loaded.Title)
	assert.Equal(t, "gold", loaded.Color)
	assert.Equal(t, []string{"🎮", "🍕"}, loaded.Reactions)
}

func TestLoadEventDocumentMissingFile(t *testing.T) {
	_, err := loadEventDocument(t.TempDir(), "nope")
	assert.Error(t, err)
}

func TestLoadEventDocumentMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "bad.json"), []byte("{oops"), 0o644))

	_, err := loadEventDocument(dir, "bad")
	assert.Error(t, err)
}

func TestLoadEventDocumentRejectsPathNames(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"", "../secrets", "a/b", `a\b`, ".."} {
		_, err := loadEventDocument(dir, name)
		assert.Error(t, err, name)
	}
}
