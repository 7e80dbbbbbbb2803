package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

const clientSecretSetting = "client_secret_path"

// Authorizer produces authorized HTTP clients for a Google account, caching tokens in
// the tokens table.
type Authorizer struct {
	oauthConfig *oauth2.Config
	db          *sql.DB
	in          io.Reader
	out         io.Writer
}

func NewAuthorizer(oauthConfig *oauth2.Config, db *sql.DB, in io.Reader, out io.Writer) *Authorizer {
	return &Authorizer{
		oauthConfig: oauthConfig,
		db:          db,
		in:          in,
		out:         out,
	}
}

// loadOAuthConfig builds the OAuth2 client configuration. A client secret JSON file is
// taken from secretPath, then the path remembered from an earlier run, then the config
// file; client_id and client_secret from the config are the fallback. A path given on
// the command line is remembered for later runs.
func loadOAuthConfig(config *Config, db *sql.DB, secretPath string) (*oauth2.Config, error) {
	if secretPath != "" {
		abs, err := filepath.Abs(secretPath)
		if err != nil {
			return nil, fmt.Errorf("error resolving client secret path: %w", err)
		}
		secretPath = abs
	} else {
		remembered, err := getSetting(db, clientSecretSetting)
		if err != nil {
			return nil, fmt.Errorf("error reading remembered client secret path: %w", err)
		}
		secretPath = remembered
	}
	if secretPath == "" {
		secretPath = config.ClientSecretFile
	}

	if secretPath != "" {
		data, err := os.ReadFile(secretPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read client secret file: %w", err)
		}
		oauthConfig, err := google.ConfigFromJSON(data, calendar.CalendarScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse client secret file: %w", err)
		}
		if err := saveSetting(db, clientSecretSetting, secretPath); err != nil {
			return nil, fmt.Errorf("error remembering client secret path: %w", err)
		}
		return oauthConfig, nil
	}

	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, errors.New("you must provide a client_secret.json (-s) if this is the first time running")
	}
	return &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{calendar.CalendarScope},
	}, nil
}

func (a *Authorizer) getTokenFromWeb(ctx context.Context) (*oauth2.Token, error) {
	authURL := a.oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(a.out, "🔑 Authorize this app by visiting this url:\n%v\n\n", authURL)
	fmt.Fprint(a.out, "Enter the code from that page here: ")

	var authCode string
	if _, err := fmt.Fscan(a.in, &authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := a.oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("error while trying to retrieve access token: %w", err)
	}
	return tok, nil
}

func saveToken(db *sql.DB, accountName string, token *oauth2.Token) error {
	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return err
	}

	_, err = db.Exec("INSERT OR REPLACE INTO tokens (account_name, token) VALUES (?, ?)", accountName, tokenJSON)
	return err
}

// loadToken returns the cached token, or nil when the account has none.
func loadToken(db *sql.DB, accountName string) (*oauth2.Token, error) {
	var tokenJSON []byte
	err := db.QueryRow("SELECT token FROM tokens WHERE account_name = ?", accountName).Scan(&tokenJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving token from database: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("error unmarshaling token: %w", err)
	}
	return &token, nil
}

// getClient returns an HTTP client authorized for accountName. Without a usable cached
// token the user is walked through the authorization flow, and a refreshed token is
// written back.
func (a *Authorizer) getClient(ctx context.Context, accountName string) (*http.Client, error) {
	token, err := loadToken(a.db, accountName)
	if err != nil {
		return nil, err
	}

	if token == nil {
		printVerbosely(a.out, 1, "  ❗️ No token found for account %s. Obtaining a new token.\n", accountName)
		return a.authorizeFromWeb(ctx, accountName)
	}

	newToken, err := a.oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			printVerbosely(a.out, 1, "  ❗️ Token expired or revoked for account %s. Obtaining a new token.\n", accountName)
			return a.authorizeFromWeb(ctx, accountName)
		}
		return nil, fmt.Errorf("error retrieving token from token source: %w", err)
	}

	if newToken.AccessToken != token.AccessToken {
		printVerbosely(a.out, 4, "Token refreshed for account %s.\n", accountName)
		if err := saveToken(a.db, accountName, newToken); err != nil {
			return nil, fmt.Errorf("error saving refreshed token: %w", err)
		}
	}

	return a.oauthConfig.Client(ctx, newToken), nil
}

func (a *Authorizer) authorizeFromWeb(ctx context.Context, accountName string) (*http.Client, error) {
	token, err := a.getTokenFromWeb(ctx)
	if err != nil {
		return nil, err
	}
	if err := saveToken(a.db, accountName, token); err != nil {
		return nil, fmt.Errorf("error saving token: %w", err)
	}
	printVerbosely(a.out, 2, "✅ Authorization complete!\n\n")
	return a.oauthConfig.Client(ctx, token), nil
}
