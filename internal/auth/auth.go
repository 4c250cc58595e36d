/*
Package auth acquires the Gmail OAuth2 session used for sending.

A session is built from two operator-provided artifacts: the OAuth client
secret file downloaded from the Google Cloud Console, and a token file that
is written after the first successful authorization and reused on later
runs. Expired tokens are refreshed silently when a refresh token is
available; otherwise the interactive browser flow runs again.
*/
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

// ListenAddr is where the local redirect listener binds. The OAuth client
// must have http://localhost:8080/ registered as an authorized redirect URI.
const ListenAddr = "localhost:8080"

// RedirectURL is the redirect URI registered with the OAuth client
const RedirectURL = "http://localhost:8080/"

// authTimeout bounds the wait for the operator to approve access
const authTimeout = 5 * time.Minute

// Options configures session acquisition
type Options struct {
	// CredentialsFile is the OAuth client secret JSON
	CredentialsFile string

	// TokenFile caches the authorized token between runs
	TokenFile string
}

// Session is an authenticated Gmail sending credential, acquired once per
// run and shared read-only by every send.
type Session struct {
	source oauth2.TokenSource
}

// TokenSource returns the session's refreshing token source
func (s *Session) TokenSource() oauth2.TokenSource {
	return s.source
}

// NewSession obtains a valid bearer credential, refreshing or
// re-authenticating as needed. Any failure here is fatal to the run; no
// partial credential state is persisted.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	data, err := os.ReadFile(opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	conf.RedirectURL = RedirectURL

	tok, err := readToken(opts.TokenFile)
	if err != nil {
		return nil, err
	}

	switch {
	case tok != nil && tok.Valid():
		log.Debug("Using cached token", "file", opts.TokenFile)

	case tok != nil && tok.RefreshToken != "":
		log.Info("Refreshing expired token")
		tok, err = conf.TokenSource(ctx, tok).Token()
		if err != nil {
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}
		if err := writeToken(opts.TokenFile, tok); err != nil {
			return nil, err
		}

	default:
		tok, err = authorize(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := writeToken(opts.TokenFile, tok); err != nil {
			return nil, err
		}
		log.Info("Token saved, future runs will not require authentication", "file", opts.TokenFile)
	}

	return &Session{
		source: oauth2.ReuseTokenSource(tok, &persistingSource{
			path:       opts.TokenFile,
			src:        conf.TokenSource(ctx, tok),
			lastAccess: tok.AccessToken,
		}),
	}, nil
}

// authorize runs the interactive flow: open the consent URL in a browser
// and capture the authorization code on a one-shot local listener.
func authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", ListenAddr, err)
	}

	codeCh := make(chan string, 1)
	srv := &http.Server{Handler: redirectHandler(state, codeCh)}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("Redirect listener stopped", "error", err)
		}
	}()
	defer srv.Close()

	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)

	fmt.Println("Opening browser for authentication...")
	fmt.Println("\nIf the browser doesn't open, go to this URL manually:")
	fmt.Printf("\n%s\n\n", authURL)

	if err := browser.OpenURL(authURL); err != nil {
		log.Debug("Failed to open browser", "error", err)
	}

	log.Info("Waiting for authorization", "redirect", RedirectURL)

	var code string
	select {
	case code = <-codeCh:
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("timed out waiting for authorization")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return tok, nil
}

// redirectHandler serves the OAuth redirect, delivering the first valid
// authorization code to codeCh.
func redirectHandler(state string, codeCh chan<- string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		code := q.Get("code")
		if code == "" {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "<html><body><h1>Error: no authorization code received</h1></body></html>")
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body style="font-family: Arial; text-align: center; padding-top: 50px;">
<h1>Authorization Successful!</h1>
<p>You can close this window and return to the terminal.</p>
</body></html>`)

		select {
		case codeCh <- code:
		default:
		}
	})
}

// persistingSource rewrites the token file whenever the access token
// rotates, so later runs reuse the freshest credential.
type persistingSource struct {
	path string
	src  oauth2.TokenSource

	mu         sync.Mutex
	lastAccess string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken != p.lastAccess {
		if err := writeToken(p.path, tok); err != nil {
			log.Warn("Failed to persist refreshed token", "error", err)
		} else {
			p.lastAccess = tok.AccessToken
		}
	}

	return tok, nil
}

// readToken loads a cached token; a missing file is not an error
func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}
	return &tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
