package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odpi/itinfra/internal/app/discovery"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/httputil"
	"github.com/odpi/itinfra/internal/middleware"
)

type discoverOptions struct {
	url        string
	server     string
	user       string
	token      string
	prefix     string
	implType   string
	sourceName string
	dryRun     bool
	timeout    time.Duration
}

func newDiscoverHostCmd(root *rootOptions) *cobra.Command {
	opts := &discoverOptions{}
	cmd := &cobra.Command{
		Use:   "discover-host",
		Short: "Describe this machine as a Host and register it",
		Long: `discover-host reads the local host facts (name, host id, operating system,
platform and architecture) and creates a Host asset for them on a running
access service. With --dry-run the properties are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			props, err := discovery.New().Host(ctx, discovery.Options{
				QualifiedNamePrefix:        opts.prefix,
				DeployedImplementationType: opts.implType,
			})
			if err != nil {
				return err
			}
			if opts.dryRun {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(props)
			}

			cfg, err := root.load()
			if err != nil {
				return err
			}
			if opts.user == "" {
				return fmt.Errorf("--user is required")
			}
			server := opts.server
			if server == "" {
				server = cfg.Servers[0].Name
			}
			baseURL := opts.url
			if baseURL == "" {
				host := cfg.Server.Host
				if host == "" || host == "0.0.0.0" {
					host = "localhost"
				}
				baseURL = fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)
			}
			token := opts.token
			if token == "" && cfg.Auth.Enabled() {
				token, err = middleware.NewToken(cfg.Auth.JWTSecret, cfg.Auth.Issuer, opts.user, 5*time.Minute)
				if err != nil {
					return fmt.Errorf("sign token: %w", err)
				}
			}

			client := httputil.NewServiceClient(httputil.ServiceClientConfig{
				BaseURL: strings.TrimRight(baseURL, "/"),
				Token:   token,
				Timeout: opts.timeout,
			})
			guid, err := discovery.Register(ctx, client, server, opts.user,
				handlers.ExternalSource{Name: opts.sourceName}, props)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered host %s on %s as %s\n", props.QualifiedName, server, guid)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.url, "url", "", "access service base URL (default from the server config)")
	f.StringVar(&opts.server, "server", "", "server name (default the first configured server)")
	f.StringVarP(&opts.user, "user", "u", "", "calling user id")
	f.StringVar(&opts.token, "token", "", "bearer token (signed from auth.jwt_secret when empty)")
	f.StringVar(&opts.prefix, "qualified-name-prefix", "", `prefix of the host's qualified name (default "Host:")`)
	f.StringVar(&opts.implType, "deployed-implementation-type", "", "override the deployed implementation type")
	f.StringVar(&opts.sourceName, "external-source-name", "", "external source recorded on the host")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the discovered properties without registering them")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")
	return cmd
}
