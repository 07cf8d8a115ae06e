package queue

import (
	"context"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
)

func (q *queueImpl) register() {
	q.queues.Register(backlite.NewQueue[ReconcileJob](q.reconcile()))
}

func (q *queueImpl) reconcile() func(context.Context, ReconcileJob) error {
	return func(ctx context.Context, task ReconcileJob) error {
		log.Debug().Str("author", task.AuthorUid).Msg("reconciling outgoing friend requests")
		err := q.fed.ReconcileRequests(ctx, task.AuthorUid)
		if err != nil {
			log.Error().Err(err).Str("author", task.AuthorUid).Msg("reconciliation failed")
		}
		return err
	}
}
