package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/config"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/extraction"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/observability"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/pipeline"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/rules"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/session"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/store"
)

var (
	analyzeConfigFile    string
	analyzeOutputFile    string
	analyzeRulesFile     string
	analyzeMaxConcurrent int
	analyzeBatchPolicy   string
	analyzeVerbose       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Run a one-shot analysis over CV files",
	Long:  `Extract structured records from the given CV files (PDF, DOCX, or plain text) and print certification recommendations as JSON. State is kept in memory only; use serve for a persistent session.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfigFile, "config", "c", "", "Path to JSON config file")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeCmd.Flags().StringVar(&analyzeRulesFile, "rules-file", "", "Path to a text file of business rules to apply")
	analyzeCmd.Flags().IntVar(&analyzeMaxConcurrent, "max-concurrent", 0, "Documents parsed at once (default 1)")
	analyzeCmd.Flags().StringVar(&analyzeBatchPolicy, "batch-policy", "", "Batch failure policy: abort or skip (default abort)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print extracted records and recommendations to stderr")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	cfg, err := resolveConfig(analyzeConfigFile, config.Config{
		MaxConcurrent: analyzeMaxConcurrent,
		BatchPolicy:   analyzeBatchPolicy,
		Verbose:       analyzeVerbose,
	})
	if err != nil {
		return err
	}

	files, err := loadFiles(args)
	if err != nil {
		return err
	}

	ctx := context.Background()

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	// One-shot runs always start from a fresh in-memory session
	sess, err := session.Load(ctx, store.NewMemory())
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}

	if analyzeRulesFile != "" {
		if err := applyRulesFile(ctx, client, sess, analyzeRulesFile); err != nil {
			return err
		}
	}

	result, err := pipeline.NewRunner(client, sess).Run(ctx, pipeline.RunOptions{
		Files:         files,
		MaxConcurrent: cfg.MaxConcurrent,
		BatchPolicy:   batchPolicyFromConfig(cfg.BatchPolicy),
		Verbose:       cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		for _, cv := range result.Cvs {
			printer.PrintCvRecord(cv.Name, &cv.Structured)
		}
		printer.PrintDrafts(result.Drafts)
		printer.PrintRecommendations(result.Recommendations)
	}

	return writeResult(result)
}

func loadFiles(paths []string) ([]extraction.File, error) {
	files := make([]extraction.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		name := filepath.Base(path)
		files = append(files, extraction.File{
			Name: name,
			Mime: mimeForPath(name),
			Data: data,
		})
	}
	return files, nil
}

func mimeForPath(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extraction.MimePDF
	case ".docx":
		return extraction.MimeDocx
	default:
		return extraction.MimePlainText
	}
}

// applyRulesFile normalizes free-form rules text through the model and
// installs the result as the session's active rule set.
func applyRulesFile(ctx context.Context, client llm.Client, sess *session.Session, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}

	normalized, err := rules.Normalize(ctx, client, string(text))
	if err != nil {
		return fmt.Errorf("failed to normalize rules: %w", err)
	}
	return sess.SetRules(ctx, normalized)
}

func writeResult(result *pipeline.Result) error {
	out := map[string]any{
		"runId":           result.RunID.String(),
		"cvs":             result.Cvs,
		"drafts":          result.Drafts,
		"recommendations": result.Recommendations,
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if analyzeOutputFile == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(analyzeOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Results written to %s\n", analyzeOutputFile)
	return nil
}
