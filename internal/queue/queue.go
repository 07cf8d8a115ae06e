package queue

import (
	"context"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/federation"
)

// Queue schedules background federation work, currently the reconciliation of
// outgoing friend requests against remote nodes.
type Queue interface {
	// Reconcile enqueues a reconciliation pass over the author's outgoing
	// pending friend requests.
	Reconcile(authorUid string) error
}

type queueImpl struct {
	fed    *federation.Federation
	queues *backlite.Client
}

func New(ctx context.Context, fed *federation.Federation, blClient *backlite.Client) Queue {
	q := &queueImpl{
		fed:    fed,
		queues: blClient,
	}
	q.register()
	q.queues.Start(ctx)
	log.Info().Msg("started task queue")
	return q
}

func (q *queueImpl) Reconcile(authorUid string) error {
	log.Debug().Str("author", authorUid).Msg("enqueuing friend request reconciliation")
	_, err := q.queues.Add(ReconcileJob{AuthorUid: authorUid}).Save()
	return err
}
