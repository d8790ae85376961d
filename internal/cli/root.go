// Package cli implements the cscart command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/cscart"
	"github.com/deploymenttheory/go-api-sdk-cscart/httpclient"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/deploymenttheory/go-api-sdk-cscart/sessionstore"
	"github.com/deploymenttheory/go-api-sdk-cscart/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes returned by ExitCode.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitHTTP      = 3
	ExitTransport = 4
	ExitDecode    = 5
)

// app is the state shared by the commands of one invocation.
type app struct {
	v        *viper.Viper
	query    string
	client   *cscart.Client
	sessions sessionstore.Store
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{v: viper.New()}
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var httpErr *response.HTTPError
	var transportErr *response.TransportError
	var decodeErr *response.DecodeError
	switch {
	case errors.As(err, &httpErr):
		return ExitHTTP
	case errors.As(err, &transportErr):
		return ExitTransport
	case errors.As(err, &decodeErr):
		return ExitDecode
	default:
		return ExitError
	}
}

// newRootCommand builds the command tree. Configuration is read, in order of
// precedence, from flags, CSCART_ environment variables and the --config file.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cscart",
		Short:         "Work with the CS-Cart REST API from the command line",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "configuration file (json, yaml or toml)")
	flags.String("base-url", "", "storefront URL, e.g. https://shop.example")
	flags.String("email", "", "account email")
	flags.String("api-key", "", "account API key")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: json or console")
	flags.Duration("timeout", 0, "request timeout (default 30s, negative disables)")
	flags.String("session-store", sessionstore.TypeMemory, "where auth sessions are kept: memory, redis or bbolt")
	flags.String("redis-addr", "", "redis address for --session-store=redis")
	flags.String("bolt-path", "", "database file for --session-store=bbolt")
	flags.StringVar(&a.query, "query", "", "jq expression applied to the response")

	bindings := map[string]string{
		"config":            "config",
		"base_url":          "base-url",
		"email":             "email",
		"api_key":           "api-key",
		"log_level":         "log-level",
		"log_output_format": "log-format",
		"custom_timeout":    "timeout",
		"session_store":     "session-store",
		"redis_addr":        "redis-addr",
		"bolt_path":         "bolt-path",
	}
	for key, name := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newPingCommand(a),
		newAuthCommand(a),
		newAPIKeyCommand(a),
	)
	for _, spec := range resourceCommands() {
		root.AddCommand(newResourceCommand(a, spec))
	}
	return root
}

func (a *app) loadConfig() error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	httpclient.BindEnv(a.v)
	for _, key := range []string{"base_url", "email", "api_key", "session_store", "redis_addr", "bolt_path"} {
		_ = a.v.BindEnv(key)
	}
	return nil
}

// cscartClient builds the API client on first use so that commands that never
// reach the network do not need credentials.
func (a *app) cscartClient() (*cscart.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	creds, err := credentials.New(a.v.GetString("email"), a.v.GetString("api_key"))
	if err != nil {
		return nil, err
	}
	httpConfig, err := httpclient.FromViper(a.v)
	if err != nil {
		return nil, err
	}
	sessions, err := a.sessionStore()
	if err != nil {
		return nil, err
	}

	client, err := cscart.New(cscart.Config{
		BaseURL:     a.v.GetString("base_url"),
		Credentials: creds,
		HTTP:        *httpConfig,
		Sessions:    sessions,
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

func (a *app) close() {
	if a.sessions != nil {
		_ = a.sessions.Close()
	}
}

func (a *app) sessionStore() (sessionstore.Store, error) {
	if a.sessions != nil {
		return a.sessions, nil
	}
	store, err := sessionstore.Open(sessionstore.Options{
		Type:      a.v.GetString("session_store"),
		RedisAddr: a.v.GetString("redis_addr"),
		Path:      a.v.GetString("bolt_path"),
	})
	if err != nil {
		return nil, err
	}
	a.sessions = store
	return store, nil
}
