package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/config"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/rules"
)

var (
	rulesConfigFile string
	rulesInputFile  string
	rulesText       string
)

var rulesCmd = &cobra.Command{
	Use:   "normalize-rules",
	Short: "Normalize free-form business rules into a rule list",
	Long:  `Convert free-form business rules text into the normalized JSON array of atomic rules that the recommendation engine applies. Reads from --text, --in, or stdin.`,
	RunE:  runNormalizeRules,
}

func init() {
	rulesCmd.Flags().StringVarP(&rulesConfigFile, "config", "c", "", "Path to JSON config file")
	rulesCmd.Flags().StringVarP(&rulesInputFile, "in", "i", "", "Path to a text file of rules")
	rulesCmd.Flags().StringVarP(&rulesText, "text", "t", "", "Rules text given inline")
	rootCmd.AddCommand(rulesCmd)
}

func runNormalizeRules(_ *cobra.Command, _ []string) error {
	text, err := readRulesInput()
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(rulesConfigFile, config.Config{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	normalized, err := rules.Normalize(ctx, client, text)
	if err != nil {
		return fmt.Errorf("failed to normalize rules: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

func readRulesInput() (string, error) {
	if rulesText != "" && rulesInputFile != "" {
		return "", fmt.Errorf("cannot use --text with --in")
	}
	if rulesText != "" {
		return rulesText, nil
	}
	if rulesInputFile != "" {
		data, err := os.ReadFile(rulesInputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read rules file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil || len(data) == 0 {
		return "", fmt.Errorf("no rules input; use --text, --in, or pipe to stdin")
	}
	return string(data), nil
}
