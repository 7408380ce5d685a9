package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hanshat/infinitunes/internal/auth"
	"github.com/hanshat/infinitunes/internal/server"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin runs the OAuth2 authorization flow for a provider and stores the
// resulting session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	provider, err := auth.ParseProvider(cmd.String("provider"))
	if err != nil {
		return err
	}

	oauthConfig, err := r.authenticator.Config(provider, r.config)
	if err != nil {
		return fmt.Errorf("failed to build sign-in config: %w", err)
	}

	token, err := r.doOAuth(oauthConfig, string(provider))
	if err != nil {
		return err
	}

	profile, err := r.authenticator.Profile(ctx, provider, token)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	session := &auth.Session{
		Profile:  *profile,
		Token:    token,
		SignedIn: time.Now(),
	}
	if err := auth.SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.writePlainln("✓ Signed in with %s as %s", provider, profile.Name)
	if profile.Email != "" {
		r.writePlain("  Email: %s\n", profile.Email)
	}

	return nil
}

// AuthStatus shows the stored session for a provider.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	provider, err := auth.ParseProvider(cmd.String("provider"))
	if err != nil {
		return err
	}

	session, err := auth.LoadSession(provider)
	if err != nil {
		r.writePlain("Not signed in with %s\n", provider)
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("%s session", provider))
	r.writePlain("Name: %s\n", session.Profile.Name)
	if session.Profile.Email != "" {
		r.writePlain("Email: %s\n", session.Profile.Email)
	}
	r.writePlain("Signed in: %s\n", session.SignedIn.Format(time.RFC1123))
	if session.Token != nil && !session.Token.Expiry.IsZero() {
		r.writePlain("Token expires: %s\n", session.Token.Expiry.Format(time.RFC1123))
	}

	return nil
}

// AuthLogout removes the stored session for a provider.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	provider, err := auth.ParseProvider(cmd.String("provider"))
	if err != nil {
		return err
	}

	if err := auth.ClearSession(provider); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.writePlain("✓ Signed out of %s\n", provider)
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *oauth2.Config, provider string) (*oauth2.Token, error) {
	state := shared.GenerateID()
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	callbackHandler := server.NewCallbackHandler(config, provider, state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(callbackHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting sign-in server for %s at %v", provider, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for %s sign-in...\n", provider)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-callbackHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
