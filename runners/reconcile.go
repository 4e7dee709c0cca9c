package runners

import (
	"context"
	"errors"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// Reconcile periodically re-renders the live picker message and re-adds any
// baseline reactions users may have cleared, so the menu converges back to
// the persisted document after manual tampering or missed events.
func (r *Runners) Reconcile(ctx context.Context, delay time.Duration) {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("runner", "reconcile"),
	)

	if delay != 0 {
		time.Sleep(time.Second * delay)
	}

	ticker := time.NewTicker(r.Config.Runners.Reconcile.Frequency * time.Second)

	wp := workerpool.New(r.Config.Runners.Reconcile.Workers)

	for range ticker.C {
		requestID := uuid.New()
		gCtx := logging.AddValues(ctx, zap.String("request_id", requestID.String()))

		if wp.WaitingQueueSize() > 0 {
			newCtx := logging.AddValues(gCtx,
				zap.Int("queue_size", wp.WaitingQueueSize()),
				zap.NamedError("error", errors.New("queue not empty")),
				zap.String("error_message", "cannot start new reconcile run with non-empty queue"),
			)
			logger := logging.Logger(newCtx)
			logger.Error("runner_log")
			continue
		}

		conf := r.Engine.Store.Config()
		if conf.MessageID == 0 || conf.ChannelID == 0 {
			continue
		}

		newCtx := logging.AddValues(gCtx, zap.String("runner_message", "Started reconcile runner"))
		logger := logging.Logger(newCtx)
		logger.Info("runner_log")

		wp.Submit(func() {
			if rErr := r.Engine.RefreshPicker(gCtx); rErr != nil {
				errCtx := logging.AddValues(gCtx,
					zap.NamedError("error", rErr.Err),
					zap.String("error_message", rErr.Message),
					zap.Int("status_code", rErr.Code),
				)
				logger := logging.Logger(errCtx)
				logger.Error("runner_log")
			}
		})
	}
}
