package main

import (
	"context"
	"fmt"
	"sort"

	gogithub "github.com/google/go-github/v69/github"
	"github.com/mcptools/mcp-github/pkg/github"
	"github.com/mcptools/mcp-github/pkg/translations"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listToolsCmd = &cobra.Command{
	Use:   "list-tools",
	Short: "List available MCP tools grouped by toolset",
	Long:  `Display all registered MCP tools, grouped by toolset.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return listTools()
	},
}

func init() {
	rootCmd.AddCommand(listToolsCmd)
}

func listTools() error {
	var enabledToolsets []string
	if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
		return fmt.Errorf("failed to unmarshal toolsets: %w", err)
	}

	t, _ := translations.TranslationHelper()

	// Listing tool definitions never talks to the API, an unauthenticated
	// client is enough.
	getClient := func(_ context.Context) (*gogithub.Client, error) {
		return gogithub.NewClient(nil), nil
	}

	tsg, err := github.InitToolsets(enabledToolsets, getClient, github.Config{}, t)
	if err != nil {
		return fmt.Errorf("failed to initialize toolsets: %w", err)
	}

	var toolsetNames []string
	for name := range tsg.Toolsets {
		toolsetNames = append(toolsetNames, name)
	}
	sort.Strings(toolsetNames)

	for _, name := range toolsetNames {
		ts := tsg.Toolsets[name]
		tools := ts.GetActiveTools()
		if len(tools) == 0 {
			continue
		}
		fmt.Printf("%s: %s\n", ts.Name, ts.Description)
		for _, st := range tools {
			fmt.Printf("  %s\n", st.Tool.Name)
		}
	}

	return nil
}
