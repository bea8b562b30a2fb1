package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
	"resty.dev/v3"

	"github.com/thanhauco/scrapeflow/internal/journal"
)

// Execute is the scheduler's top-level entry point (design §4.4). It
// materializes the task list, resolves each task's StatusData from the
// journal, drives every task through executors under a bounded concurrency
// and per-task-timeout budget, and returns the Keys whose pipeline finished
// with every executor in {SUCCESS, SKIPPED}.
//
// A fatal error (anything outside the recoverable taxonomy in classify)
// cancels the remaining in-flight tasks, lets each persist what it has, and
// propagates to the caller.
func Execute(ctx context.Context, executors []Executor, dir string, tasks Tasks, opts ...Option) ([]string, error) {
	resolved := defaultOptions()
	for _, opt := range opts {
		opt(resolved)
	}
	resolved.maxParallelism = clampParallelism(resolved.maxParallelism)

	httpClient := resolved.httpClient
	if httpClient == nil {
		httpClient = resty.New()
	}

	registry := resolved.metricsRegistry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	rc := &RunContext{
		Dir:             dir,
		HTTPClient:      httpClient,
		ForcedExecutors: forcedSet(resolved.forceExecutors),
		Gate:            semaphore.NewWeighted(int64(resolved.maxParallelism)),
		Timeout:         resolved.timeout,
		ProxyProvider:   resolved.proxyProvider,
		RunID:           newRunID(),
		Metrics:         NewMetrics(registry),
	}

	admitted, err := admit(dir, tasks)
	if err != nil {
		return nil, err
	}
	rc.Metrics.admitted(len(admitted))

	runCtx, abort := context.WithCancel(ctx)
	defer abort()

	results := make([]bool, len(admitted))
	var (
		wg       sync.WaitGroup
		fatalMu  sync.Mutex
		fatalErr error
	)

	for i, key := range admitted {
		i, key := i, key
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := rc.Gate.Acquire(runCtx, 1); err != nil {
				// Run-wide cancellation before this task ever entered the
				// pipeline: nothing to persist, nothing to classify.
				return
			}
			rc.Metrics.gateEnter()
			defer func() {
				rc.Gate.Release(1)
				rc.Metrics.gateLeave()
			}()

			ok, err := runPipeline(runCtx, executors, rc, key)
			if err != nil {
				fatalMu.Lock()
				if fatalErr == nil {
					fatalErr = fmt.Errorf("task %s: %w", key, err)
					abort()
				}
				fatalMu.Unlock()
				return
			}
			results[i] = ok
		}()
	}

	wg.Wait()

	if fatalErr != nil {
		slog.Error("execute aborted on fatal error", "run_id", rc.RunID, "error", fatalErr)
		return nil, fatalErr
	}

	successful := make([]string, 0, len(admitted))
	for i, key := range admitted {
		if results[i] {
			successful = append(successful, key)
		}
	}
	return successful, nil
}

// admit resolves the Tasks input into an ordered list of Keys whose journal
// entries are ready for the pipeline: for the admission form, entries are
// created or merged; for the replay form, entries that don't already exist
// are reported and skipped rather than crashing the run.
func admit(dir string, tasks Tasks) ([]string, error) {
	if !tasks.isReplay {
		keys := make([]string, 0, len(tasks.admission))
		for _, t := range tasks.admission {
			status, err := journal.Load(dir, t.Key)
			if err != nil {
				return nil, fmt.Errorf("admit %s: %w", t.Key, err)
			}
			if status == nil {
				status = journal.New(t.Key, t.Params)
			} else {
				status["name"] = t.Key
				status.SetParams(t.Params)
			}
			if err := journal.Save(dir, t.Key, status); err != nil {
				return nil, fmt.Errorf("admit %s: %w", t.Key, err)
			}
			keys = append(keys, t.Key)
		}
		return keys, nil
	}

	keys := make([]string, 0, len(tasks.replay))
	for _, key := range tasks.replay {
		status, err := journal.Load(dir, key)
		if err != nil {
			return nil, fmt.Errorf("replay %s: %w", key, err)
		}
		if status == nil {
			slog.Warn("replay requested for key with no existing journal entry", "key", key)
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// runPipeline drives one task through every executor in order, persisting
// the journal after each step. ok reports whether every executor ended in
// {SUCCESS, SKIPPED}. A non-nil error is fatal and must abort the whole
// Execute call.
func runPipeline(ctx context.Context, executors []Executor, rc *RunContext, key string) (ok bool, fatalErr error) {
	start := time.Now()
	defer func() {
		rc.Metrics.pipelineTime.Observe(time.Since(start).Seconds())
	}()

	status, err := journal.Load(rc.Dir, key)
	if err != nil {
		return false, fmt.Errorf("load journal: %w", err)
	}
	if status == nil {
		return false, fmt.Errorf("no journal entry for %s", key)
	}

	taskCtx, cancel := context.WithTimeout(ctx, rc.Timeout)
	defer cancel()

	succeeded := true
	for _, ex := range executors {
		name := ex.Name()

		if status.ExecutorStatus(name) == "SUCCESS" && !rc.forces(name) {
			status.SetExecutorStatus(name, "SKIPPED")
			if err := journal.Save(rc.Dir, key, status); err != nil {
				return false, fmt.Errorf("persist skip for %s/%s: %w", key, name, err)
			}
			continue
		}

		patch, updated, runErr := ex.Run(taskCtx, rc, key, status)
		if runErr == nil {
			status.SetExecutorOutput(name, patch)
			status.SetExecutorStatus(name, "SUCCESS")
			if updated {
				status.SetExecutorLastRun(name, time.Now())
			}
			if err := journal.Save(rc.Dir, key, status); err != nil {
				return false, fmt.Errorf("persist success for %s/%s: %w", key, name, err)
			}
			continue
		}

		classified, fatal := classify(runErr)
		if fatal {
			journal.Save(rc.Dir, key, status) //nolint:errcheck // best-effort flush before propagating
			return false, fmt.Errorf("%s/%s: %w", key, name, runErr)
		}

		status.ClearExecutorOutput(name)
		status.SetExecutorStatus(name, classified.String())
		status.SetExecutorLastRun(name, time.Now())
		if err := journal.Save(rc.Dir, key, status); err != nil {
			return false, fmt.Errorf("persist error for %s/%s: %w", key, name, err)
		}
		rc.Metrics.executorError(name, classified.kind)
		succeeded = false
		break
	}

	outcome := "success"
	if !succeeded {
		outcome = "error"
	}
	rc.Metrics.completed(outcome)
	return succeeded, nil
}
