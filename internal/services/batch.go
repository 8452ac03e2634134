package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"wqcli/internal/infrastructure"
)

// BatchRunner runs one request template over many inputs concurrently
type BatchRunner struct {
	service     *AnalysisService
	parallelism int
	logger      *slog.Logger
}

// NewBatchRunner creates a runner that keeps at most parallelism runs in flight
func NewBatchRunner(service *AnalysisService, parallelism int, logger *slog.Logger) *BatchRunner {
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchRunner{
		service:     service,
		parallelism: parallelism,
		logger:      infrastructure.WithComponent(logger, "batch"),
	}
}

// Run analyzes every input with template and returns the reports in input order.
// The first failure cancels the runs still pending and is returned.
// With several inputs, outputs are prefixed by the input file stem unless
// template sets a prefix.
func (b *BatchRunner) Run(ctx context.Context, template Request, inputs []string) ([]*Report, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	start := time.Now()
	b.logger.InfoContext(ctx, "batch started",
		"kind", template.Kind,
		"inputs", len(inputs),
		"parallelism", b.parallelism,
	)

	reports := make([]*Report, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallelism)

	for i, input := range inputs {
		i, input := i, input
		req := template
		req.Input = input
		if len(inputs) > 1 && req.Prefix == "" {
			req.Prefix = inputStem(input)
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := b.service.Run(gctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			reports[i] = rep
			return nil
		})
	}

	err := g.Wait()
	b.service.telemetry.Metrics.RecordRuntime(ctx)
	if err != nil {
		b.logger.ErrorContext(ctx, "batch failed", infrastructure.ErrorAttrs(err)...)
		return nil, err
	}

	b.logger.InfoContext(ctx, "batch completed",
		"kind", template.Kind,
		"inputs", len(inputs),
		"duration", time.Since(start),
	)
	return reports, nil
}
