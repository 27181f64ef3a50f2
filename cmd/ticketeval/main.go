// Command ticketeval batch-evaluates customer-support ticket replies.
// It reads a CSV of (ticket, reply) pairs, scores each pair through an LLM
// oracle on two 1-5 dimensions (content, format), and writes the augmented
// table plus a console summary. Rows are processed strictly sequentially;
// a single row's permanent failure never aborts the batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ahrav/go-ticketeval/infrastructure/llm"
	"github.com/ahrav/go-ticketeval/infrastructure/middleware"
	"github.com/ahrav/go-ticketeval/infrastructure/tabular"
	"github.com/ahrav/go-ticketeval/internal/application"
	"github.com/ahrav/go-ticketeval/internal/domain"
	"github.com/ahrav/go-ticketeval/internal/evaluation"
)

func main() {
	var (
		inputPath   = flag.String("input", "tickets.csv", "Input CSV with ticket and reply columns")
		outputPath  = flag.String("output", "tickets_evaluated.csv", "Output CSV path")
		configPath  = flag.String("config", "", "Optional YAML config file")
		metricsAddr = flag.String("metrics-listen", "", "Optional address to serve Prometheus metrics on (e.g. :9090)")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := application.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("configuration failed", zap.Error(err))
	}

	metrics := middleware.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, logger)
	}

	chain := []llm.Middleware{
		llm.MetricsMiddleware(metrics, cfg.Provider),
		llm.TracingMiddleware("ticketeval"),
	}
	if cfg.RequestsPerSecond > 0 {
		chain = append([]llm.Middleware{
			llm.RateLimitMiddleware(rate.Limit(cfg.RequestsPerSecond), 1),
		}, chain...)
	}

	client, err := llm.NewClient(cfg.Provider, llm.ClientConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout(),
		Middleware: chain,
	})
	if err != nil {
		logger.Fatal("oracle client setup failed", zap.Error(err))
	}

	scorer, err := evaluation.NewScorer(client, cfg.ScorerConfig(), logger)
	if err != nil {
		logger.Fatal("scorer setup failed", zap.Error(err))
	}

	table, err := tabular.ReadTickets(*inputPath)
	if err != nil {
		logger.Fatal("input failed", zap.String("path", *inputPath), zap.Error(err))
	}
	logger.Info("input loaded",
		zap.String("path", *inputPath),
		zap.Int("rows", len(table.Rows)),
		zap.Strings("columns", table.Columns))

	evaluator := evaluation.NewRowEvaluator(scorer, logger)
	pipeline := application.NewPipeline(evaluator, metrics, logger)

	rows := pipeline.Run(context.Background(), table.Rows)

	if err := tabular.WriteEvaluated(*outputPath, rows); err != nil {
		logger.Fatal("output failed", zap.String("path", *outputPath), zap.Error(err))
	}
	logger.Info("evaluation complete", zap.String("output", *outputPath))

	printSummary(os.Stdout, domain.Summarize(rows))
}

// serveMetrics exposes the Prometheus registry over HTTP for scrape-based
// monitoring of long batch runs.
func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}

// printSummary renders the human-readable run report.
func printSummary(w io.Writer, summary domain.RunSummary) {
	line := "======================================================="
	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "               EVALUATION SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Total tickets processed : %d\n", summary.Total)
	fmt.Fprintf(w, "Content score - %s\n", formatStats(summary.Content))
	fmt.Fprintf(w, "Format score  - %s\n", formatStats(summary.Format))
	fmt.Fprintf(w, "Rows with errors        : %d\n", summary.Failed)
	fmt.Fprintln(w, line)
}

func formatStats(stats domain.ScoreStats) string {
	if stats.Count == 0 {
		return "no scored rows"
	}
	return fmt.Sprintf("mean: %.2f | min: %d | max: %d", stats.Mean, stats.Min, stats.Max)
}
