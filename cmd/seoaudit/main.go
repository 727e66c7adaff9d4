// Command seoaudit runs the technical SEO audit pipeline against a
// single seed URL, the CLI entry point replacing the teacher's
// flag-based main.go with a cobra command tree in the style of
// rohmanhakim-docs-crawler's internal/cli/root.go.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/crawl"
	"github.com/seoaudit/pipeline/pipeline"
	"github.com/seoaudit/pipeline/store"
)

var (
	maxPages          int
	maxDepth          int
	workers           int
	requestTimeout    time.Duration
	respectRobots     bool
	renderJS          string
	userAgent         string
	planWeeks         int
	doKeywords        bool
	doTemplates       bool
	doBriefs          bool
	targetCountry     string
	targetLanguage    string
	seedKeywords      []string
	outputDir         string
	tenantID          string
	postgresDSN       string
	mongoURI          string
	mongoDB           string
	redisAddr         string
	verbose           bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seoaudit",
		Short: "Technical SEO audit pipeline",
		Long: `seoaudit crawls a site, runs its 100-point technical SEO rule engine,
and renders an executive summary, technical audit, and prioritized action
plan as Markdown reports.`,
	}

	root.AddCommand(auditCmd())
	root.AddCommand(migrateCmd())
	return root
}

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [seed-url]",
		Short: "Run a full audit against one site and write its reports",
		Args:  cobra.ExactArgs(1),
		RunE:  runAudit,
	}

	flags := cmd.Flags()
	flags.IntVar(&maxPages, "max-pages", 100, "maximum number of pages to crawl")
	flags.IntVar(&maxDepth, "max-depth", 3, "maximum link depth from the seed URL")
	flags.IntVar(&workers, "workers", 10, "number of concurrent crawl workers")
	flags.DurationVar(&requestTimeout, "timeout", 30*time.Second, "per-request timeout")
	flags.BoolVar(&respectRobots, "respect-robots", true, "honor robots.txt disallow rules")
	flags.StringVar(&renderJS, "render-js", "auto", `JS rendering mode: "off", "auto", or "always"`)
	flags.StringVar(&userAgent, "user-agent", "", "override the crawler's User-Agent header")
	flags.IntVar(&planWeeks, "plan-weeks", 12, "action plan duration in weeks")
	flags.BoolVar(&doKeywords, "keyword-research", true, "run keyword research (no-op without a provider)")
	flags.BoolVar(&doTemplates, "classify-templates", true, "group crawled pages into page templates")
	flags.BoolVar(&doBriefs, "content-briefs", true, "generate content briefs from the keyword calendar")
	flags.StringVar(&targetCountry, "country", "ES", "target country code for keyword research")
	flags.StringVar(&targetLanguage, "language", "es", "target language code for keyword research")
	flags.StringArrayVar(&seedKeywords, "seed-keyword", nil, "seed keyword for research (repeatable)")
	flags.StringVar(&outputDir, "output-dir", "./seoaudit-reports", "directory reports are written to (filesystem BlobSink root)")
	flags.StringVar(&tenantID, "tenant", "default", "tenant id the site is scoped under")
	flags.StringVar(&postgresDSN, "postgres-dsn", "", "Postgres DSN; empty uses the in-memory repository")
	flags.StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI; empty (and no --postgres-dsn) uses the in-memory repository")
	flags.StringVar(&mongoDB, "mongo-db", "seoaudit", "MongoDB database name")
	flags.StringVar(&redisAddr, "redis-addr", "", "Redis address for cross-process frontier dedupe; empty uses an in-process seen-set")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if postgresDSN == "" {
				return fmt.Errorf("--postgres-dsn is required")
			}
			return store.MigratePostgres(postgresDSN)
		},
	}
	cmd.Flags().StringVar(&postgresDSN, "postgres-dsn", "", "Postgres DSN to migrate")
	return cmd
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func runAudit(cmd *cobra.Command, args []string) error {
	seedURL := args[0]
	logger := newLogger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := pipeline.DefaultOptions(seedURL)
	opts.Crawl.MaxPages = maxPages
	opts.Crawl.MaxDepth = maxDepth
	opts.Crawl.Workers = workers
	opts.Crawl.RequestTimeout = requestTimeout
	opts.Crawl.RespectRobots = respectRobots
	opts.Crawl.RenderJS = renderJS
	if userAgent != "" {
		opts.Crawl.UserAgent = userAgent
	}
	opts.PlanDurationWeeks = planWeeks
	opts.DoKeywordResearch = doKeywords
	opts.ClassifyTemplates = doTemplates
	opts.GenerateBriefs = doBriefs
	opts.TargetCountry = targetCountry
	opts.TargetLanguage = targetLanguage
	opts.SeedKeywords = seedKeywords

	if redisAddr != "" {
		client := config.NewRedisClient(redisAddr)
		opts.Dedupe = crawl.NewRedisDedupe(client, uuid.NewString(), 24*time.Hour)
	}

	p := pipeline.New(nil, nil, nil, nil, crawl.LogEventPublisher{Logger: logger}, logger)

	result, err := p.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("audit run failed: %w", err)
	}

	repo, closeRepo, err := openRepository(ctx, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	blobs, err := store.NewFSBlobSink(outputDir)
	if err != nil {
		return fmt.Errorf("open report output dir: %w", err)
	}

	run, err := pipeline.Persist(ctx, repo, blobs, tenantID, opts.Crawl.SeedURL, result)
	if err != nil {
		return err
	}

	fmt.Printf("run %s complete: score %d/100 (%s), %d pages crawled, %d issues found\n",
		result.RunID, result.Audit.OverallScore, run.Grade, len(result.Crawl.Pages), result.Audit.FailedCheckCount)
	fmt.Printf("reports written under %s\n", outputDir)
	return nil
}

// openRepository picks a Repository backend from the --postgres-dsn/
// --mongo-uri flags, defaulting to an in-memory store for ad hoc local
// runs. The returned func releases any connection the backend opened.
func openRepository(ctx context.Context, logger zerolog.Logger) (store.Repository, func(), error) {
	switch {
	case postgresDSN != "":
		repo, err := store.NewPostgresRepository(ctx, postgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case mongoURI != "":
		repo, err := store.NewMongoRepository(ctx, mongoURI, mongoDB, 30*24*time.Hour, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close(ctx) }, nil
	default:
		return store.NewMemoryRepository(), func() {}, nil
	}
}
