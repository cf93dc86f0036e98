package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ttufts/youtube-smart-playlists/internal/server"
	"github.com/ttufts/youtube-smart-playlists/internal/services"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
	"github.com/ttufts/youtube-smart-playlists/internal/ui"
	"github.com/urfave/cli/v3"
)

const authTimeout = 2 * time.Minute

// Auth performs the OAuth2 authorization code flow against Google.
//
// Starts a local callback server, opens the consent page in a browser and writes the resulting credentials file.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	secretsPath := cmd.String("client-secrets")
	if secretsPath == "" {
		secretsPath = r.config.Credentials.YouTube.ClientSecrets
	}
	credsPath := r.credsPath(cmd)

	config, err := services.LoadOAuthConfig(secretsPath, r.config.Server.CallbackURL())
	if err != nil {
		return err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	handler := server.NewOAuthHandler(config, state)
	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(handler)

	addr := net.JoinHostPort(r.config.Server.Host, strconv.Itoa(r.config.Server.Port))
	srv, err := server.Start(addr, router, r.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Shutdown(); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := services.AuthCodeURL(config, state)
	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	} else {
		r.writePlain("→ Opening browser for YouTube authorization...\n")
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}
	}

	timeout := cmd.Duration("timeout")
	if timeout <= 0 {
		timeout = authTimeout
	}
	r.writePlain("→ Waiting for authorization (%s timeout)...\n", timeout)

	token, err := handler.Await(ctx, timeout)
	if err != nil {
		return err
	}

	creds := &services.Credentials{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Token:        token,
	}
	if err := services.SaveCredentials(credsPath, creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	r.writePlainln("%s", ui.OK("✓ Authorization successful"))
	r.writePlain("✓ Credentials saved to %s\n\n", credsPath)
	r.writePlain("You can now use: ytsp run -c %s -p smart_playlists.json\n", credsPath)
	return nil
}
