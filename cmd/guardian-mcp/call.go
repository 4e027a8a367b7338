// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-arguments]",
	Short: "Run one tool and print its text result",
	Long: `Call runs a single tool against the content API and prints the text an MCP
client would receive. Arguments are a JSON object; pass "-" to read them from
stdin. With no arguments the tool is called with {}.

Examples:
  guardian-mcp call guardian_search '{"query":"climate","page_size":5}'
  guardian-mcp call guardian_get_sections
  echo '{"date":"2025-09-01"}' | guardian-mcp call guardian_top_stories_by_date -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	raw, err := callArguments(args[1:], cmd.InOrStdin())
	if err != nil {
		return err
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	text, err := reg.Call(cmd.Context(), args[0], raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// callArguments resolves the optional argument operand into a JSON object.
func callArguments(rest []string, stdin io.Reader) (json.RawMessage, error) {
	if len(rest) == 0 {
		return json.RawMessage(`{}`), nil
	}
	data := []byte(rest[0])
	if rest[0] == "-" {
		var err error
		if data, err = io.ReadAll(stdin); err != nil {
			return nil, fmt.Errorf("reading arguments from stdin: %w", err)
		}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return json.RawMessage(data), nil
}

