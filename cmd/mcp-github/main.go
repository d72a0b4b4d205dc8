package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mcptools/mcp-github/internal/ghmcp"
	"github.com/mcptools/mcp-github/pkg/ssecmd"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// These variables are set by the build process using ldflags.
var version = "version"
var commit = "commit"
var date = "date"

var (
	rootCmd = &cobra.Command{
		Use:     "mcp-github",
		Short:   "GitHub MCP Server",
		Long:    `A read-only MCP server that exposes GitHub repository data as tools.`,
		Version: fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date),
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start a server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Token flags are read from cobra directly rather than viper so
			// the explicit-flag-over-environment precedence holds.
			token := cmd.Flag("token").Value.String()
			tokenEnv := cmd.Flag("token-env").Value.String()

			// If you're wondering why we're not using viper.GetStringSlice("toolsets"),
			// it's because viper doesn't handle comma-separated values correctly for env
			// vars when using GetStringSlice.
			// https://github.com/spf13/viper/issues/380
			var enabledToolsets []string
			if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
				return fmt.Errorf("failed to unmarshal toolsets: %w", err)
			}

			stdioServerConfig := ghmcp.StdioServerConfig{
				Version:              version,
				Host:                 viper.GetString("host"),
				Token:                ghmcp.ResolveToken(token, tokenEnv),
				EnabledToolsets:      enabledToolsets,
				Owner:                viper.GetString("owner"),
				MaxResults:           viper.GetInt("max-results"),
				ExportTranslations:   viper.GetBool("export-translations"),
				EnableCommandLogging: viper.GetBool("enable-command-logging"),
				LogFilePath:          viper.GetString("log-file"),
			}
			return ghmcp.RunStdioServer(stdioServerConfig)
		},
	}

	sseCmd = &cobra.Command{
		Use:   "sse",
		Short: "Start SSE server",
		Long:  `Start a Server-Sent Events (SSE) server that allows real-time streaming of events to clients over HTTP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := ghmcp.ResolveToken(cmd.Flag("token").Value.String(), cmd.Flag("token-env").Value.String())
			if token == "" {
				return errors.New("a GitHub token is required to run the SSE server")
			}

			var enabledToolsets []string
			if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
				return fmt.Errorf("failed to unmarshal toolsets: %w", err)
			}

			server, err := ssecmd.CreateServerWithOptions(
				ssecmd.WithToken(token),
				ssecmd.WithHost(viper.GetString("host")),
				ssecmd.WithAddress(viper.GetString("address")),
				ssecmd.WithBasePath(viper.GetString("base-path")),
				ssecmd.WithLogFilePath(viper.GetString("log-file")),
				ssecmd.WithEnabledToolsets(enabledToolsets),
				ssecmd.WithOwner(viper.GetString("owner")),
				ssecmd.WithMaxResults(viper.GetInt("max-results")),
				ssecmd.WithVersion(version),
			)
			if err != nil {
				return err
			}
			return server.Start()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	// Add global flags that will be shared by all commands
	rootCmd.PersistentFlags().String("token", "", "GitHub token, overrides any token environment variable")
	rootCmd.PersistentFlags().String("token-env", "GITHUB_TOKEN", "Name of the environment variable to read the GitHub token from")
	rootCmd.PersistentFlags().String("owner", "", "Default repository owner used when tool calls omit one")
	rootCmd.PersistentFlags().Int("max-results", 30, "Maximum number of items list tools return per call")
	rootCmd.PersistentFlags().StringSlice("toolsets", []string{"all"}, "An optional comma separated list of groups of tools to allow, defaults to enabling all")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")
	rootCmd.PersistentFlags().Bool("enable-command-logging", false, "When enabled, the server will log all command requests and responses to the log file")
	rootCmd.PersistentFlags().Bool("export-translations", false, "Save translations to a JSON file")
	rootCmd.PersistentFlags().String("gh-host", "", "Specify the GitHub hostname (for GitHub Enterprise etc.)")

	// Bind flag to viper. The token flags stay out of viper on purpose.
	_ = viper.BindPFlag("owner", rootCmd.PersistentFlags().Lookup("owner"))
	_ = viper.BindPFlag("max-results", rootCmd.PersistentFlags().Lookup("max-results"))
	_ = viper.BindPFlag("toolsets", rootCmd.PersistentFlags().Lookup("toolsets"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("enable-command-logging", rootCmd.PersistentFlags().Lookup("enable-command-logging"))
	_ = viper.BindPFlag("export-translations", rootCmd.PersistentFlags().Lookup("export-translations"))
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("gh-host"))

	// Setup flags for SSE command
	sseCmd.Flags().String("address", "localhost:8080", "Address to listen on for SSE server")
	sseCmd.Flags().String("base-path", "", "Base path for SSE server URLs")

	// Bind SSE flags to viper
	_ = viper.BindPFlag("address", sseCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("base-path", sseCmd.Flags().Lookup("base-path"))

	// Add subcommands
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(sseCmd)
}

func initConfig() {
	// Initialize Viper configuration
	viper.SetEnvPrefix("github")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}
	return pflag.NormalizedName(name)
}
