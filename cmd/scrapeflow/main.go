package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thanhauco/scrapeflow/internal/dashboard"
	"github.com/thanhauco/scrapeflow/internal/engine"
	"github.com/thanhauco/scrapeflow/internal/executors"
	"github.com/thanhauco/scrapeflow/internal/proxy"
)

const version = "1.0.0"

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting scrapeflow", "version", version)

	tasksFile := flag.String("tasks", "", "path to a JSON tasks file: {\"key\": {\"url\": \"...\"}}")
	dir := flag.String("dir", "./journal", "directory holding journal and scratch files")
	executorNames := flag.String("executors", "scraper,content_hash,extract_links,geo_tag", "comma-separated executor pipeline")
	timeout := flag.Duration("timeout", getEnvDuration("TASK_TIMEOUT", 30*time.Second), "per-task pipeline timeout")
	parallelism := flag.Int("parallelism", getEnvInt("MAX_PARALLELISM", 10), "max concurrently in-flight tasks")
	forceAll := flag.Bool("force", false, "rerun every executor even if previously successful")
	metricsPort := flag.String("metrics-port", getEnv("METRICS_PORT", "9090"), "port to serve /metrics on")
	flag.Parse()

	if *tasksFile == "" {
		slog.Error("-tasks is required")
		os.Exit(1)
	}

	if err := os.MkdirAll(*dir, 0755); err != nil {
		slog.Error("failed to create journal directory", "error", err)
		os.Exit(1)
	}

	tasks, err := loadTasks(*tasksFile)
	if err != nil {
		slog.Error("failed to load tasks file", "error", err)
		os.Exit(1)
	}

	pipeline := buildPipeline(strings.Split(*executorNames, ","))
	provider := buildProxyProvider()
	registry := prometheus.NewRegistry()

	opts := []engine.Option{
		engine.WithTimeout(*timeout),
		engine.WithMaxParallelism(*parallelism),
		engine.WithMetricsRegistry(registry),
	}
	if provider != nil {
		opts = append(opts, engine.WithProxyProvider(provider))
	}
	if *forceAll {
		opts = append(opts, engine.WithForceExecutors("all"))
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"status": "healthy", "version": version})
		})

		dashboardHandler := dashboard.NewHandler(dashboard.NewService(*dir))
		dashboardHandler.RegisterRoutes(mux)

		addr := ":" + *metricsPort
		slog.Info("metrics server listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	successful, err := engine.Execute(ctx, pipeline, *dir, tasks, opts...)
	if err != nil {
		slog.Error("execute failed", "error", err)
		os.Exit(1)
	}

	slog.Info("execute complete", "successful", len(successful))
	for _, key := range successful {
		fmt.Println(key)
	}
}

func loadTasks(path string) (engine.Tasks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Tasks{}, fmt.Errorf("read tasks file: %w", err)
	}

	var raw map[string]engine.Params
	if err := json.Unmarshal(data, &raw); err != nil {
		return engine.Tasks{}, fmt.Errorf("parse tasks file: %w", err)
	}
	return engine.AdmitMap(raw), nil
}

func buildPipeline(names []string) []engine.Executor {
	available := map[string]engine.Executor{
		"scraper":       executors.Scrape(),
		"content_hash":  executors.ContentHash(),
		"extract_links": executors.ExtractLinks(),
		"geo_tag":       executors.GeoTag(),
	}

	pipeline := make([]engine.Executor, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if ex, ok := available[name]; ok {
			pipeline = append(pipeline, ex)
		} else {
			slog.Warn("unknown executor requested, skipping", "name", name)
		}
	}
	return pipeline
}

func buildProxyProvider() proxy.Provider {
	switch strings.ToLower(getEnv("PROXY_PROVIDER", "")) {
	case "static":
		urls := strings.Split(os.Getenv("PROXY_URLS"), ",")
		return proxy.NewStaticList(urls)
	case "free-api":
		endpoint := os.Getenv("PROXY_API_ENDPOINT")
		return proxy.NewFreeAPIProvider(endpoint, getEnvDuration("PROXY_API_TTL", 5*time.Minute))
	case "paid-api":
		return proxy.NewPaidAPIProvider(
			os.Getenv("PROXY_API_ENDPOINT"),
			os.Getenv("PROXY_API_KEY"),
			os.Getenv("PROXY_API_ORDER_ID"),
			getEnvDuration("PROXY_API_TTL", 5*time.Minute),
		)
	default:
		return nil
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
