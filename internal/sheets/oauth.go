package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

const authTimeout = 5 * time.Minute

// OAuth2Config holds OAuth2 configuration.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	// ListenAddr is where the callback server listens. Defaults to
	// localhost:8080.
	ListenAddr string
}

// AuthenticateOAuth2Interactive runs the browser consent flow and returns a
// token carrying a refresh token. The token is also saved to TokenFile when
// set.
func AuthenticateOAuth2Interactive(ctx context.Context, config OAuth2Config, logger *slog.Logger) (*oauth2.Token, error) {
	if logger == nil {
		logger = slog.Default()
	}
	addr := config.ListenAddr
	if addr == "" {
		addr = "localhost:8080"
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://" + listener.Addr().String() + "/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}

	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", callbackHandler(codeChan, errorChan))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorChan <- fmt.Errorf("callback server failed: %w", err)
		}
	}()
	defer func() {
		if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Error shutting down callback server", "error", err)
		}
	}()

	authURL := oauthConfig.AuthCodeURL("pocket", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	logger.Info("Google Sheets authentication required")
	logger.Info("Please visit this URL to authenticate", "url", authURL)

	var authCode string
	select {
	case authCode = <-codeChan:
		logger.Info("Received authorization code")
	case err := <-errorChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authentication timeout: no response received within %s", authTimeout)
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if config.TokenFile != "" {
		if err := SaveToken(config.TokenFile, token); err != nil {
			logger.Warn("Failed to save token to file", "error", err, "file", config.TokenFile)
		} else {
			logger.Info("Token saved", "file", config.TokenFile)
		}
	}

	return token, nil
}

func callbackHandler(codeChan chan<- string, errorChan chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			select {
			case errorChan <- fmt.Errorf("no authorization code received"):
			default:
			}
			http.Error(w, "Authentication failed: no authorization code received.", http.StatusBadRequest)
			return
		}

		select {
		case codeChan <- code:
		default:
		}
		_, _ = fmt.Fprint(w, "Authentication successful. You can close this window and return to the terminal.")
	}
}

// LoadToken loads a token from file.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return token, nil
}

// SaveToken writes token to path with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}
