package jobs

import (
	"context"
	"time"

	"workshop-backend/internal/logger"
)

// ReconcileJobStatuses rewrites any stored job status that disagrees with the
// status derived from item delivery totals. The stored status is a cache;
// this repairs drift from partial writes or manual data edits.
func (jr *JobRunner) ReconcileJobStatuses() {
	jr.runWithRecovery("ReconcileJobStatuses", func() {
		ctx := context.Background()

		repaired, err := jr.store.ReconcileStatuses(ctx)
		if err != nil {
			logger.Error("Failed to reconcile job statuses", "error", err)
			return
		}
		if repaired > 0 {
			logger.Warn("Repaired drifted job statuses", "count", repaired)
		} else {
			logger.Info("All job statuses consistent")
		}
	})
}

// PurgeExpiredDeliveryKeys clears idempotency keys on deliveries older than
// the retention window. Keys only matter while a client might still retry.
func (jr *JobRunner) PurgeExpiredDeliveryKeys() {
	jr.runWithRecovery("PurgeExpiredDeliveryKeys", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().Add(-jr.config.DeliveryKeyRetention())
		cleared, err := jr.store.ClearDeliveryKeys(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge delivery keys", "error", err)
			return
		}
		logger.Info("Purged expired delivery keys", "count", cleared, "cutoff", cutoff.Format(time.RFC3339))
	})
}
