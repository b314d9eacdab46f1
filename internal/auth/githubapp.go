// Package auth provides GitHub credential sources: a static personal access
// token, or GitHub App authentication (app JWT exchanged for an installation
// token).
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
)

// AppTokenSource mints short-lived GitHub App JWTs signed with the app's
// private key. These authenticate as the app itself, not an installation.
type AppTokenSource struct {
	appID string
	key   *rsa.PrivateKey
}

// NewAppTokenSource parses the PEM-encoded private key.
func NewAppTokenSource(appID string, pemKey []byte) (*AppTokenSource, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemKey)
	if err != nil {
		return nil, errors.Wrap(err, "parse app private key")
	}
	return &AppTokenSource{appID: appID, key: key}, nil
}

// Token signs a new app JWT. The issued-at is backdated 60 seconds to absorb
// clock skew between us and GitHub; the upstream rejects future iat values.
func (s *AppTokenSource) Token(_ context.Context) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-60 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "sign app token")
	}
	return signed, nil
}

// InstallationTokenSource exchanges app JWTs for installation access tokens
// and caches them until shortly before expiry.
type InstallationTokenSource struct {
	app            *AppTokenSource
	installationID string
	baseURL        string
	httpClient     *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewInstallationTokenSource creates a source for one installation.
func NewInstallationTokenSource(app *AppTokenSource, installationID string) *InstallationTokenSource {
	return &InstallationTokenSource{
		app:            app,
		installationID: installationID,
		baseURL:        "https://api.github.com",
		httpClient:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns a cached installation token, refreshing it when less than a
// minute of validity remains.
func (s *InstallationTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Until(s.expires) > time.Minute {
		return s.token, nil
	}

	appJWT, err := s.app.Token(ctx)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/app/installations/%s/access_tokens", s.baseURL, s.installationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "create token request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+appJWT)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "exchange installation token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", errors.Errorf("installation token exchange failed: status %d", resp.StatusCode)
	}

	var parsed struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "decode installation token")
	}

	s.token = parsed.Token
	s.expires = parsed.ExpiresAt
	return s.token, nil
}

// FromEnv builds an installation token source from GITHUB_APP_ID,
// GITHUB_APP_PRIVATE_KEY (or GITHUB_APP_PRIVATE_KEY_FILE), and
// GITHUB_APP_INSTALLATION_ID. It returns (nil, nil) when app auth is not
// configured.
func FromEnv() (*InstallationTokenSource, error) {
	appID := os.Getenv("GITHUB_APP_ID")
	installationID := os.Getenv("GITHUB_APP_INSTALLATION_ID")
	if appID == "" || installationID == "" {
		return nil, nil
	}

	pemKey := []byte(os.Getenv("GITHUB_APP_PRIVATE_KEY"))
	if len(pemKey) == 0 {
		path := os.Getenv("GITHUB_APP_PRIVATE_KEY_FILE")
		if path == "" {
			return nil, errors.New("GITHUB_APP_ID set but no private key configured")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read app private key file")
		}
		pemKey = data
	}

	app, err := NewAppTokenSource(appID, pemKey)
	if err != nil {
		return nil, err
	}
	return NewInstallationTokenSource(app, installationID), nil
}
