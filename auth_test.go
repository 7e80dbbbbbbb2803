package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

const testClientSecret = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"shh","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`

func TestLoadOAuthConfigRemembersSecretPath(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	path := filepath.Join(t.TempDir(), "client_secret.json")
	if err := os.WriteFile(path, []byte(testClientSecret), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	oauthConfig, err := loadOAuthConfig(&Config{}, db, path)
	if err != nil {
		t.Fatalf("load with path: %v", err)
	}
	if oauthConfig.ClientID != "id.apps.googleusercontent.com" {
		t.Fatalf("client id mismatch: %q", oauthConfig.ClientID)
	}

	// Later runs find the file without the flag.
	oauthConfig, err = loadOAuthConfig(&Config{}, db, "")
	if err != nil {
		t.Fatalf("load remembered: %v", err)
	}
	if oauthConfig.ClientSecret != "shh" {
		t.Fatalf("client secret mismatch: %q", oauthConfig.ClientSecret)
	}
}

func TestLoadOAuthConfigFromConfig(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	oauthConfig, err := loadOAuthConfig(&Config{ClientID: "cid", ClientSecret: "csecret"}, db, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if oauthConfig.ClientID != "cid" || oauthConfig.RedirectURL != "urn:ietf:wg:oauth:2.0:oob" {
		t.Fatalf("unexpected oauth config: %+v", oauthConfig)
	}
}

func TestLoadOAuthConfigMissing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	_, err := loadOAuthConfig(&Config{}, db, "")
	if err == nil || !strings.Contains(err.Error(), "client_secret.json") {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestLoadOAuthConfigUnreadableFile(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	if _, err := loadOAuthConfig(&Config{}, db, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	value, err := getSetting(db, clientSecretSetting)
	if err != nil || value != "" {
		t.Fatalf("a bad path must not be remembered: %q, %v", value, err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	token, err := loadToken(db, "work")
	if err != nil || token != nil {
		t.Fatalf("expected no token, got %v, %v", token, err)
	}

	want := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: time.Now().Add(time.Hour).Round(time.Second)}
	if err := saveToken(db, "work", want); err != nil {
		t.Fatalf("save token: %v", err)
	}
	got, err := loadToken(db, "work")
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken || !got.Expiry.Equal(want.Expiry) {
		t.Fatalf("token mismatch: %+v", got)
	}
}

func TestGetClientUsesCachedToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	token := &oauth2.Token{AccessToken: "access", Expiry: time.Now().Add(time.Hour)}
	if err := saveToken(db, "work", token); err != nil {
		t.Fatalf("save token: %v", err)
	}

	var out bytes.Buffer
	a := NewAuthorizer(&oauth2.Config{ClientID: "cid"}, db, strings.NewReader(""), &out)
	client, err := a.getClient(context.Background(), "work")
	if err != nil {
		t.Fatalf("getClient: %v", err)
	}
	if client == nil {
		t.Fatalf("expected client")
	}
	if strings.Contains(out.String(), "Authorize this app") {
		t.Fatalf("valid token should not start the web flow")
	}
}
