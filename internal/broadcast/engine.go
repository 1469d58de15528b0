// Package broadcast implements the mass-send engine: bounded concurrency,
// batch pacing and per-recipient error classification. A broadcast never
// aborts; failures are counted and logged per recipient.
package broadcast

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// SendFunc delivers one message to one recipient.
type SendFunc func(ctx context.Context, userID int64) error

// Report summarizes one finished broadcast.
type Report struct {
	Attempted int
	Delivered int
	Blocked   int
	Failed    int
}

type Engine struct {
	concurrency int
	batchSize   int
	batchPause  time.Duration
	limiter     *rate.Limiter
	logger      *zerolog.Logger
}

func NewEngine(concurrency, batchSize int, batchPause, sendInterval time.Duration, logger *zerolog.Logger) *Engine {
	if concurrency <= 0 {
		concurrency = 1
	}
	if batchSize <= 0 {
		batchSize = 1000
	}
	var limiter *rate.Limiter
	if sendInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(sendInterval), 1)
	}
	return &Engine{
		concurrency: concurrency,
		batchSize:   batchSize,
		batchPause:  batchPause,
		limiter:     limiter,
		logger:      logger,
	}
}

// Run sends to every recipient and returns the tally. Recipients are
// processed in batches with a pause between batches; inside a batch at most
// `concurrency` sends are in flight and dispatch is paced by the limiter.
// Run only stops early when ctx is cancelled.
func (e *Engine) Run(ctx context.Context, recipients []int64, send SendFunc) Report {
	var delivered, blocked, failed atomic.Int64
	attempted := 0

	start := time.Now()
	sem := make(chan struct{}, e.concurrency)

	for batchStart := 0; batchStart < len(recipients); batchStart += e.batchSize {
		if ctx.Err() != nil {
			break
		}
		batchEnd := batchStart + e.batchSize
		if batchEnd > len(recipients) {
			batchEnd = len(recipients)
		}

		var wg sync.WaitGroup
		for _, userID := range recipients[batchStart:batchEnd] {
			if e.limiter != nil {
				if err := e.limiter.Wait(ctx); err != nil {
					break
				}
			} else if ctx.Err() != nil {
				break
			}

			attempted++
			sem <- struct{}{}
			wg.Add(1)
			go func(userID int64) {
				defer wg.Done()
				defer func() { <-sem }()

				err := send(ctx, userID)
				switch {
				case err == nil:
					delivered.Add(1)
				case IsBlockedError(err):
					blocked.Add(1)
					e.logger.Warn().Int64("user_id", userID).Err(err).Msg("recipient unreachable")
				default:
					failed.Add(1)
					e.logger.Error().Int64("user_id", userID).Err(err).Msg("broadcast send failed")
				}
			}(userID)
		}
		wg.Wait()

		if batchEnd < len(recipients) && e.batchPause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(e.batchPause):
			}
		}
	}

	report := Report{
		Attempted: attempted,
		Delivered: int(delivered.Load()),
		Blocked:   int(blocked.Load()),
		Failed:    int(failed.Load()),
	}

	e.logger.Info().
		Int("attempted", report.Attempted).
		Int("delivered", report.Delivered).
		Int("blocked", report.Blocked).
		Int("failed", report.Failed).
		Dur("took", time.Since(start)).
		Msg("broadcast finished")

	return report
}

// IsBlockedError classifies the Bot API errors that mean the recipient can
// never be reached again: the user blocked the bot, deleted the account or
// the chat is gone.
func IsBlockedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blocked by the user") ||
		strings.Contains(msg, "user is deactivated") ||
		strings.Contains(msg, "chat not found")
}
