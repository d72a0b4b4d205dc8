package ghmcp

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gogithub "github.com/google/go-github/v69/github"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcptools/mcp-github/pkg/github"
	mcplog "github.com/mcptools/mcp-github/pkg/log"
	"github.com/mcptools/mcp-github/pkg/translations"
	log "github.com/sirupsen/logrus"
)

// apiTimeout caps every request to the GitHub API. There are no retries; a
// slow request surfaces as a network error on the tool call.
const apiTimeout = 30 * time.Second

type MCPServerConfig struct {
	// Version of the server, reported to clients and sent as part of the
	// User-Agent.
	Version string

	// GitHub Host to target for API requests (e.g. github.com or a GHES
	// instance). Empty means github.com.
	Host string

	// GitHub token for authenticated requests. Empty runs the server
	// unauthenticated, which GitHub rate limits heavily.
	Token string

	// EnabledToolsets is a list of toolset names to enable. Empty enables
	// the default set.
	EnabledToolsets []string

	// Owner is the default repository owner used when tool calls omit one.
	Owner string

	// MaxResults bounds how many items list tools return per call.
	MaxResults int

	// Translator provides translated tool descriptions.
	Translator translations.TranslationHelperFunc

	// Logger receives API request traces at debug level. Nil disables
	// request tracing.
	Logger *log.Logger
}

// NewMCPServer builds the MCP server with every enabled toolset registered
// against a shared GitHub client.
func NewMCPServer(cfg MCPServerConfig) (*server.MCPServer, error) {
	httpClient := &http.Client{Timeout: apiTimeout}
	if cfg.Logger != nil && cfg.Logger.GetLevel() >= log.DebugLevel {
		httpClient.Transport = mcplog.NewTransport(nil, mcplog.NewHTTPLogger(cfg.Logger))
	}

	restClient := gogithub.NewClient(httpClient)
	restClient.UserAgent = fmt.Sprintf("mcp-github/%s", cfg.Version)
	if cfg.Token != "" {
		restClient = restClient.WithAuthToken(cfg.Token)
	}
	if cfg.Host != "" {
		var err error
		restClient, err = restClient.WithEnterpriseURLs(cfg.Host, cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub host %q: %w", cfg.Host, err)
		}
	}

	translator := cfg.Translator
	if translator == nil {
		translator = translations.NullTranslationHelper
	}

	ghServer := server.NewMCPServer(
		"mcp-github",
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	getClient := func(_ context.Context) (*gogithub.Client, error) {
		return restClient, nil
	}

	enabledToolsets := cfg.EnabledToolsets
	if len(enabledToolsets) == 0 {
		enabledToolsets = github.DefaultTools
	}

	toolCfg := github.Config{Owner: cfg.Owner, MaxResults: cfg.MaxResults}
	tsg, err := github.InitToolsets(enabledToolsets, getClient, toolCfg, translator)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize toolsets: %w", err)
	}
	tsg.RegisterTools(ghServer)

	return ghServer, nil
}

type StdioServerConfig struct {
	// Version of the server.
	Version string

	// GitHub Host to target for API requests.
	Host string

	// GitHub token, already resolved via ResolveToken.
	Token string

	// EnabledToolsets is a list of toolset names to enable.
	EnabledToolsets []string

	// Owner is the default repository owner.
	Owner string

	// MaxResults bounds list tool output.
	MaxResults int

	// ExportTranslations dumps the translation key map to a config file on
	// shutdown so descriptions can be overridden.
	ExportTranslations bool

	// EnableCommandLogging mirrors every JSON-RPC line to the log.
	EnableCommandLogging bool

	// LogFilePath redirects logging to a file. Empty logs to stderr.
	LogFilePath string
}

// RunStdioServer serves MCP over stdin/stdout until the context is cancelled
// by SIGINT or SIGTERM. It is not concurrency safe.
func RunStdioServer(cfg StdioServerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, dumpTranslations := translations.TranslationHelper()

	logger, err := initLogger(cfg.LogFilePath)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Token == "" {
		logger.Warn("no GitHub token configured, unauthenticated requests are heavily rate limited")
	}
	logger.WithFields(log.Fields{
		"authenticated": cfg.Token != "",
		"owner":         cfg.Owner,
		"max_results":   cfg.MaxResults,
	}).Info("starting GitHub MCP server")

	ghServer, err := NewMCPServer(MCPServerConfig{
		Version:         cfg.Version,
		Host:            cfg.Host,
		Token:           cfg.Token,
		EnabledToolsets: cfg.EnabledToolsets,
		Owner:           cfg.Owner,
		MaxResults:      cfg.MaxResults,
		Translator:      t,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	stdioServer := server.NewStdioServer(ghServer)

	stdLogger := stdlog.New(logger.Writer(), "stdioserver", 0)
	stdioServer.SetErrorLogger(stdLogger)

	if cfg.ExportTranslations {
		// Dump translations after server setup so every tool description
		// has been requested through the helper at least once.
		dumpTranslations()
	}

	errC := make(chan error, 1)
	go func() {
		in, out := io.Reader(os.Stdin), io.Writer(os.Stdout)

		if cfg.EnableCommandLogging {
			loggedIO := mcplog.NewIOLogger(in, out, logger)
			in, out = loggedIO, loggedIO
		}

		errC <- stdioServer.Listen(ctx, in, out)
	}()

	_, _ = fmt.Fprintf(os.Stderr, "GitHub MCP Server running on stdio\n")

	select {
	case <-ctx.Done():
		logger.Infof("shutting down server...")
	case err := <-errC:
		if err != nil {
			return fmt.Errorf("error running server: %w", err)
		}
	}

	return nil
}

// ResolveToken picks the token for API requests: an explicit value wins, then
// the named environment variable, then GITHUB_TOKEN. An empty result means
// the server runs unauthenticated.
func ResolveToken(explicit, tokenEnv string) string {
	if explicit != "" {
		return explicit
	}
	if tokenEnv != "" {
		if v := os.Getenv(tokenEnv); v != "" {
			return v
		}
	}
	if tokenEnv != "GITHUB_TOKEN" {
		if v := os.Getenv("GITHUB_TOKEN"); v != "" {
			return v
		}
	}
	return ""
}

func initLogger(outPath string) (*log.Logger, error) {
	if outPath == "" {
		return log.New(), nil
	}

	file, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.New()
	logger.SetLevel(log.DebugLevel)
	logger.SetOutput(file)

	return logger, nil
}
