package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/poiesic/subnav"
	"github.com/poiesic/subnav/config"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/dispatch"
	"github.com/poiesic/subnav/ingestion"
	"github.com/poiesic/subnav/source"
	"github.com/poiesic/subnav/storage"
	"github.com/poiesic/subnav/web"
	"github.com/urfave/cli/v2"
)

// resolveConfig applies the command's flags over the loaded configuration.
func resolveConfig(c *cli.Context) (*config.Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}

	if c.IsSet("driver") {
		cfg.Store.Driver = c.String("driver")
	}
	if c.IsSet("db") {
		cfg.Store.Path = c.String("db")
	}
	if c.IsSet("in-memory") {
		cfg.Store.InMemory = c.Bool("in-memory")
	}
	if c.IsSet("ai-host") {
		cfg.AI.Host = c.String("ai-host")
	}
	if c.IsSet("ai-model") {
		cfg.AI.Model = c.String("ai-model")
	}
	if c.IsSet("ai-api-key") {
		cfg.AI.APIKey = c.String("ai-api-key")
	}
	if c.IsSet("source-file") {
		cfg.Source.File = c.String("source-file")
	}
	if c.IsSet("fail-fast") {
		cfg.Pipeline.FailFast = c.Bool("fail-fast")
	}
	if c.IsSet("max-attempts") {
		cfg.Pipeline.MaxAttempts = c.Int("max-attempts")
	}
	if c.IsSet("retry-delay") {
		cfg.Pipeline.RetryDelay = c.Duration("retry-delay")
	}
	if c.IsSet("run-timeout") {
		cfg.Pipeline.RunTimeout = c.Duration("run-timeout")
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func databaseOptions(c *cli.Context, cfg *config.Config) []subnav.DatabaseOption {
	opts := append(cfg.DatabaseOptions(), subnav.WithLogger(slog.Default()))
	extra, _ := c.App.Metadata[databaseOptionsKey].([]subnav.DatabaseOption)
	return append(opts, extra...)
}

func openDatabase(c *cli.Context, cfg *config.Config) (*subnav.Database, error) {
	db, err := subnav.NewDatabase(databaseOptions(c, cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// openStore opens the repositories without an AI provider.
func openStore(c *cli.Context, cfg *config.Config) (storage.Repositories, error) {
	repos, err := subnav.OpenStore(databaseOptions(c, cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return repos, nil
}

func newSource(cfg *config.Config) source.Source {
	if cfg.Source.File != "" {
		return source.NewFile(cfg.Source.File)
	}
	return source.NewStatic()
}

func newPipeline(db *subnav.Database, cfg *config.Config) (*ingestion.Pipeline, error) {
	return db.NewPipeline(
		ingestion.WithLogger(slog.Default()),
		ingestion.WithFailFast(cfg.Pipeline.FailFast),
		ingestion.WithRetry(cfg.Pipeline.MaxAttempts, cfg.Pipeline.RetryDelay),
	)
}

func serveCommand(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	dispatcher, err := db.NewDispatcher(pipeline, newSource(cfg),
		dispatch.WithLogger(slog.Default()),
		dispatch.WithRunTimeout(cfg.Pipeline.RunTimeout))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	defer dispatcher.Close()

	srv, err := web.New(db.Subsidies(), dispatcher,
		web.WithLogger(slog.Default()),
		web.WithAddr(cfg.Server.Addr))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.App.ErrWriter, "Store: %s (%s)\n", describeStore(cfg), cfg.Store.Driver)
	fmt.Fprintf(c.App.ErrWriter, "AI: %s %s\n", cfg.AI.Host, cfg.AI.Model)
	fmt.Fprintf(c.App.ErrWriter, "Listening on %s\n", cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}

func runCommand(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.App.ErrWriter, "Store: %s (%s)\n", describeStore(cfg), cfg.Store.Driver)
	fmt.Fprintf(c.App.ErrWriter, "AI: %s %s\n", cfg.AI.Host, cfg.AI.Model)
	fmt.Fprintln(c.App.ErrWriter)

	result, err := pipeline.Run(ctx, newSource(cfg), ingestion.NewProgressMonitor(c.App.ErrWriter))
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	if len(result.Failures) > 0 {
		return fmt.Errorf("%d of %d candidates failed: %w",
			len(result.Failures), len(result.Created)+len(result.Skipped)+len(result.Failures), result.Err())
	}
	return nil
}

func listCommand(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	repos, err := openStore(c, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	subsidies, err := repos.Subsidies().ListSubsidies(c.Context, storage.SubsidyFilter{
		Tag:   c.String("tag"),
		Limit: c.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("failed to list subsidies: %w", err)
	}
	printSubsidies(c.App.Writer, subsidies)
	return nil
}

func runsCommand(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	repos, err := openStore(c, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	runs, err := repos.Runs().ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	printRuns(c.App.Writer, runs)
	return nil
}

func describeStore(cfg *config.Config) string {
	if cfg.Store.InMemory {
		return "in-memory"
	}
	return cfg.Store.Path
}

const maxNameWidth = 48

func printSubsidies(w io.Writer, subsidies []*core.Subsidy) {
	if len(subsidies) == 0 {
		fmt.Fprintln(w, "現在、利用可能な補助金情報はありません。")
		return
	}
	rows := [][]string{{"DEADLINE", "NAME", "TAGS", "ID"}}
	for _, s := range subsidies {
		rows = append(rows, []string{
			s.Deadline.Format("2006-01-02"),
			runewidth.Truncate(s.Name, maxNameWidth, "…"),
			strings.Join(s.IndustryTags, ", "),
			s.ID,
		})
	}
	printTable(w, rows)
}

func printRuns(w io.Writer, runs []*core.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	rows := [][]string{{"SUBMITTED", "STATUS", "CREATED", "SKIPPED", "FAILED", "ID"}}
	for _, r := range runs {
		rows = append(rows, []string{
			r.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Status),
			strconv.Itoa(len(r.Created)),
			strconv.Itoa(len(r.Skipped)),
			strconv.Itoa(len(r.Failures)),
			r.ID,
		})
	}
	printTable(w, rows)
}

// printTable left-aligns columns by display width so CJK text lines up.
func printTable(w io.Writer, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(w, b.String())
	}
}
