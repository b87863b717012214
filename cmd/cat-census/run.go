package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/user/cat-census/internal/delivery/console"
	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/internal/usecase"
	"github.com/user/cat-census/pkg/config"
	"github.com/user/cat-census/pkg/logger"
	"github.com/user/cat-census/pkg/metrics"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Crawl the listing once and report the oldest cat (default command).",
		Args:  cobra.NoArgs,
		RunE:  runCensus,
	}
	addRunFlags(cmd)
	return cmd
}

func runCensus(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	theme := console.NewTheme(out)
	fmt.Fprintln(out, console.AccessingLine())

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " guessing ages..."
	report, err := a.census.Run(ctx, usecase.RunHooks{
		OnCrawled: func(urls []string) {
			fmt.Fprintln(out, console.AccessedLine(len(urls)))
			s.Start()
		},
		OnExtracted: func([]entity.CatRecord) { s.Stop() },
	})
	s.Stop()
	pushMetrics(cfg, log)
	if err != nil {
		return err
	}

	for _, cat := range report.Cats {
		fmt.Fprintln(out, console.GuessingLine(theme, cat))
	}
	if cfg.List {
		console.RenderCats(out, report.Cats)
	}
	fmt.Fprintln(out, console.SummaryLine(theme, *report.Oldest))

	if !cfg.OpenBrowser {
		return nil
	}
	if err := sleep(ctx, cfg.OpenDelay()); err != nil {
		return nil
	}
	fmt.Fprintln(out, console.OpeningLine())
	if err := sleep(ctx, cfg.OpenDelay()); err != nil {
		return nil
	}
	if err := a.opener.Open(report.Oldest.URL); err != nil {
		log.Warn("Failed to open browser", zap.String("url", report.Oldest.URL), zap.Error(err))
	}
	return nil
}

func pushMetrics(cfg *config.Config, log *zap.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}
	instance, err := os.Hostname()
	if err != nil {
		instance = "unknown"
	}
	if err := metrics.Push(cfg.PushgatewayURL, "cat_census", instance); err != nil {
		log.Warn("Failed to push metrics", zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
