package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sync"

	"github.com/ttufts/youtube-smart-playlists/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Scopes requested during authorization. force-ssl allows both reading subscriptions and inserting playlist items.
var Scopes = []string{youtube.YoutubeForceSslScope}

// Credentials is the on-disk credentials file: the OAuth client plus the user's token.
//
// The file is self-contained so the sweep can refresh expired access tokens without the client secrets download.
type Credentials struct {
	ClientID     string        `json:"client_id"`
	ClientSecret string        `json:"client_secret"`
	Token        *oauth2.Token `json:"token"`
}

// OAuthConfig rebuilds the [oauth2.Config] used to refresh the stored token.
func (c *Credentials) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}

// LoadOAuthConfig reads a Google "client_secret.json" download.
//
// A non-empty redirectURL replaces the one in the file so the local callback server can receive the code.
func LoadOAuthConfig(clientSecretsPath, redirectURL string) (*oauth2.Config, error) {
	data, err := shared.VerifyAndReadFile(clientSecretsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}

	config, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}
	return config, nil
}

// AuthCodeURL returns the consent URL. Offline access with forced approval guarantees a refresh token.
func AuthCodeURL(config *oauth2.Config, state string) string {
	return config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// LoadCredentials reads a credentials file written by [SaveCredentials].
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist, run `ytsp auth` first", shared.ErrMissingCredentials, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	if creds.ClientID == "" || creds.Token == nil {
		return nil, fmt.Errorf("%w: %s is missing client_id or token", shared.ErrInvalidCredentials, path)
	}
	if creds.Token.RefreshToken == "" && !creds.Token.Valid() {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoRefreshToken, path)
	}
	return &creds, nil
}

// SaveCredentials writes creds to path with owner-only permissions.
func SaveCredentials(path string, creds *Credentials) error {
	return shared.WriteJSONFile(path, creds, 0600)
}

// NewOAuthHTTPClient returns an HTTP client that authorizes requests with the stored token and writes refreshed tokens back to path.
func NewOAuthHTTPClient(ctx context.Context, path string) (*http.Client, error) {
	creds, err := LoadCredentials(path)
	if err != nil {
		return nil, err
	}

	base := creds.OAuthConfig().TokenSource(ctx, creds.Token)
	ts := oauth2.ReuseTokenSource(creds.Token, &persistingTokenSource{
		base:  base,
		path:  path,
		creds: *creds,
		last:  creds.Token.AccessToken,
	})
	return oauth2.NewClient(ctx, ts), nil
}

// persistingTokenSource saves each newly minted token so restarts reuse it.
type persistingTokenSource struct {
	base  oauth2.TokenSource
	path  string
	creds Credentials

	mu   sync.Mutex
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenExpired, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken == p.last {
		return tok, nil
	}

	p.last = tok.AccessToken
	p.creds.Token = tok
	if err := SaveCredentials(p.path, &p.creds); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	return tok, nil
}
