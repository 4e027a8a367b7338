// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/guardian-mcp/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tool catalogue with input schemas",
	Long: `Tools prints every tool the server advertises, with its description and
input schema. Output is YAML unless --json is given. No API key is needed.`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().Bool("json", false, "print the catalogue as JSON, as sent in tools/list")
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	out, err := renderCatalogue(tools.New(tools.Deps{Logger: logger}).List(), asJSON)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func renderCatalogue(list []tools.Tool, asJSON bool) ([]byte, error) {
	if asJSON {
		data, err := json.MarshalIndent(map[string]any{"tools": list}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding catalogue: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encoding catalogue: %w", err)
	}
	return data, nil
}
