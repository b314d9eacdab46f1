package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testKeyPEM(t *testing.T) ([]byte, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	pemKey := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return pemKey, key
}

func TestAppTokenClaims(t *testing.T) {
	pemKey, key := testKeyPEM(t)

	src, err := NewAppTokenSource("12345", pemKey)
	if err != nil {
		t.Fatal(err)
	}

	signed, err := src.Token(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}

	claims := parsed.Claims.(*jwt.RegisteredClaims)
	if claims.Issuer != "12345" {
		t.Errorf("issuer = %q, want 12345", claims.Issuer)
	}

	now := time.Now()
	if !claims.IssuedAt.Before(now) {
		t.Error("iat should be backdated")
	}
	if lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time); lifetime != 11*time.Minute {
		// 10 minute validity plus the 60 second backdate.
		t.Errorf("iat-to-exp span = %v", lifetime)
	}
}

func TestAppTokenSourceRejectsBadKey(t *testing.T) {
	if _, err := NewAppTokenSource("12345", []byte("not a pem key")); err == nil {
		t.Fatal("expected error for invalid key material")
	}
}

func TestInstallationTokenCaching(t *testing.T) {
	pemKey, _ := testKeyPEM(t)
	app, err := NewAppTokenSource("12345", pemKey)
	if err != nil {
		t.Fatal(err)
	}

	var exchanges int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app/installations/777/access_tokens" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("missing app JWT")
		}
		exchanges++
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"token":      "ghs_testtoken",
			"expires_at": time.Now().Add(time.Hour),
		})
	}))
	defer srv.Close()

	src := NewInstallationTokenSource(app, "777")
	src.baseURL = srv.URL

	for i := 0; i < 3; i++ {
		token, err := src.Token(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if token != "ghs_testtoken" {
			t.Errorf("token = %q", token)
		}
	}
	if exchanges != 1 {
		t.Errorf("expected one exchange, got %d", exchanges)
	}
}

func TestInstallationTokenExchangeFailure(t *testing.T) {
	pemKey, _ := testKeyPEM(t)
	app, err := NewAppTokenSource("12345", pemKey)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	src := NewInstallationTokenSource(app, "777")
	src.baseURL = srv.URL

	if _, err := src.Token(context.Background()); err == nil {
		t.Fatal("expected exchange failure")
	}
}
