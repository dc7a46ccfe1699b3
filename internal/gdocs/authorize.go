package gdocs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"golang.org/x/oauth2"
)

// Authorize runs the installed-app consent flow on a loopback listener and caches the
// resulting token at tokenPath. prompt receives the consent URL to show the user.
func Authorize(ctx context.Context, conf *oauth2.Config, tokenPath string, prompt func(url string), log logger.Logger) error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listen for oauth callback: %w", err)
	}
	defer ln.Close()

	conf.RedirectURL = "http://" + ln.Addr().String() + "/"
	state := uuid.NewString()

	codes := make(chan string, 1)
	errs := make(chan error, 1)
	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				return
			}
			if e := q.Get("error"); e != "" {
				http.Error(w, "authorization denied", http.StatusForbidden)
				select {
				case errs <- fmt.Errorf("authorization denied: %s", e):
				default:
				}
				return
			}
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
			select {
			case codes <- q.Get("code"):
			default:
			}
		}),
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errs <- err:
			default:
			}
		}
	}()
	defer srv.Close()

	prompt(conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	var code string
	select {
	case code = <-codes:
	case err := <-errs:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := saveToken(tokenPath, tok); err != nil {
		return err
	}

	log.Info(ctx, "Google token cached at %s", tokenPath)
	return nil
}
