package queue

import (
	"time"

	"github.com/mikestefanello/backlite"
)

const ReconcileQueue = "Reconcile"

type ReconcileJob struct {
	AuthorUid string
}

func (j ReconcileJob) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ReconcileQueue,
		MaxAttempts: 5,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   12 * time.Hour,
			OnlyFailed: false,
			Data: &backlite.RetainData{
				OnlyFailed: true,
			},
		},
	}
}
