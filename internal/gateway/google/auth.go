package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// NewTokenSource builds an OAuth token source from the installed-app client
// secrets at credentialsPath and the cached token at tokenPath. A missing or
// unusable token triggers the interactive consent flow once; the resulting
// token is cached for later runs and refreshed automatically after that.
func NewTokenSource(ctx context.Context, credentialsPath, tokenPath string) (oauth2.TokenSource, error) {
	secrets, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}

	conf, err := google.ConfigFromJSON(secrets, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		token, err = tokenFromWeb(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, token); err != nil {
			return nil, err
		}
	}

	return conf.TokenSource(ctx, token), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

// tokenFromWeb walks the operator through the consent flow on the terminal.
func tokenFromWeb(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then paste the authorization code:\n%s\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create token cache: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}
