package msgraph_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/pet-assistant/internal/msgraph"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	cache := msgraph.TokenCache{Dir: filepath.Join(t.TempDir(), "auth")}

	tok, err := cache.Load()
	require.NoError(t, err)
	assert.Nil(t, tok)

	want := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, cache.Save(want))

	info, err := os.Stat(filepath.Join(cache.Dir, "msgraph_tokens.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, want.Expiry.Equal(got.Expiry))
}

func TestTokenCacheCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "msgraph_tokens.json"), []byte("{not json"), 0o600))

	_, err := msgraph.TokenCache{Dir: dir}.Load()
	assert.ErrorContains(t, err, "corrupt token file")
}
