package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/config"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/extraction"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/server"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/session"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/store"
)

var (
	serveConfigFile    string
	servePort          int
	serveMaxConcurrent int
	serveBatchPolicy   string
	serveVerbose       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for CV analysis, review, catalog and rule management, and the grounded chat assistant.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().IntVar(&serveMaxConcurrent, "max-concurrent", 0, "Documents parsed at once (default 1)")
	serveCmd.Flags().StringVar(&serveBatchPolicy, "batch-policy", "", "Batch failure policy: abort or skip (default abort)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print extracted records and recommendations to stderr")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigFile, config.Config{
		Port:          servePort,
		MaxConcurrent: serveMaxConcurrent,
		BatchPolicy:   serveBatchPolicy,
		Verbose:       serveVerbose,
	})
	if err != nil {
		return err
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	ctx := context.Background()

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	kv, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := session.Load(ctx, kv)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	srv := server.New(server.Config{
		Port:          cfg.Port,
		MaxConcurrent: cfg.MaxConcurrent,
		BatchPolicy:   batchPolicyFromConfig(cfg.BatchPolicy),
		Verbose:       cfg.Verbose,
	}, client, sess)

	return srv.Start()
}

// resolveConfig layers CLI flag values over the optional config file then the
// environment, and validates the result.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	defaults := config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		ProxyURL:    os.Getenv("LLM_PROXY_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		defaults = fileCfg.MergeWithDefaults(defaults)
	}

	merged := flags.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	if merged.APIKey == "" && merged.ProxyURL == "" {
		return config.Config{}, fmt.Errorf("LLM access is required (set GEMINI_API_KEY or LLM_PROXY_URL, or provide api_key/proxy_url in the config file)")
	}
	return merged, nil
}

func newClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	llmCfg := llm.DefaultConfig()
	llmCfg.ProxyURL = cfg.ProxyURL

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newStore picks PostgreSQL persistence when a database URL is configured and
// falls back to per-process memory otherwise.
func newStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Printf("No DATABASE_URL configured, session state is in-memory only")
		return store.NewMemory(), func() {}, nil
	}

	pg, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pg, pg.Close, nil
}

func batchPolicyFromConfig(policy string) extraction.BatchPolicy {
	if policy == config.BatchSkip {
		return extraction.SkipFailed
	}
	return extraction.AbortOnError
}
