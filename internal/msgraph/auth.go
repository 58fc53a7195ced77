package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/pet-assistant/internal/log"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.ReadWrite",
	"offline_access",
}

const tokenFileName = "msgraph_tokens.json"

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// oauth2Config returns the oauth2.Config for Microsoft Graph using the
// provided tenant and client IDs.
func oauth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// TokenCache stores the OAuth2 token as JSON inside Dir.
type TokenCache struct {
	Dir string
}

func (c TokenCache) path() string {
	return filepath.Join(c.Dir, tokenFileName)
}

// Load returns the cached token, or nil when none has been saved yet.
func (c TokenCache) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", c.path(), err)
	}
	return &tok, nil
}

// Save writes tok with owner-only permissions via a temp file and rename.
func (c TokenCache) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	path := c.path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts    oauth2.TokenSource
	cache TokenCache
	last  string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := s.cache.Save(tok); err != nil {
			logger := log.WithComponent("msgraph")
			logger.Warn().Err(err).Msg("could not save refreshed token")
		}
	}
	return tok, nil
}

// GetHTTPClient returns an authenticated HTTP client for Microsoft Graph.
// It loads the cached token from authDir, refreshes it if needed, or runs
// the device code flow, printing the sign-in instructions to prompt.
func GetHTTPClient(ctx context.Context, authDir, tenantID, clientID string, prompt io.Writer) (*http.Client, error) {
	logger := log.WithComponent("msgraph")
	cfg := oauth2Config(tenantID, clientID)
	cache := TokenCache{Dir: authDir}

	tok, err := cache.Load()
	if err != nil {
		// Corrupt token, re-auth.
		logger.Warn().Err(err).Msg("ignoring cached token")
		tok = nil
	}

	if tok != nil && tok.Valid() {
		logger.Debug().Msg("using cached token")
		return newHTTPClient(ctx, cfg, tok, cache), nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := cache.Save(refreshed); err != nil {
				logger.Warn().Err(err).Msg("could not save refreshed token")
			}
			return newHTTPClient(ctx, cfg, refreshed, cache), nil
		}
		logger.Info().Err(err).Msg("token refresh failed, re-authenticating")
	}

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(prompt)
	fmt.Fprintln(prompt, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(prompt, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(prompt, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(prompt)

	newTok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	if err := cache.Save(newTok); err != nil {
		logger.Warn().Err(err).Msg("could not save token")
	}
	return newHTTPClient(ctx, cfg, newTok, cache), nil
}

func newHTTPClient(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token, cache TokenCache) *http.Client {
	ts := &savingTokenSource{ts: cfg.TokenSource(ctx, tok), cache: cache, last: tok.AccessToken}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, ts))
}
