package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"dealflow/internal/domain/service/notification"
	"dealflow/internal/domain/value"
	"dealflow/internal/infrastructure/queue"
	"dealflow/internal/worker"
)

type notifierStub struct {
	got []value.DealID
	err error
}

func (n *notifierStub) NotifyDeal(_ context.Context, id value.DealID) (notification.SweepResult, error) {
	n.got = append(n.got, id)
	return notification.SweepResult{Processed: 1, Contacted: 1}, n.err
}

func TestNotifyDealHandler(t *testing.T) {
	rq := require.New(t)

	id := value.NewDealID()
	task, err := queue.NewNotifyDealTask(id)
	rq.NoError(err)

	stub := &notifierStub{}
	rq.NoError(worker.NewNotifyDealHandler(stub).Handle(context.Background(), task))
	rq.Equal([]value.DealID{id}, stub.got)
}

func TestNotifyDealHandlerErrors(t *testing.T) {
	rq := require.New(t)

	stub := &notifierStub{}
	h := worker.NewNotifyDealHandler(stub)

	err := h.Handle(context.Background(), asynq.NewTask(queue.TypeNotifyDeal, []byte("garbage")))
	rq.ErrorIs(err, asynq.SkipRetry)
	rq.Empty(stub.got)

	task, err := queue.NewNotifyDealTask(value.NewDealID())
	rq.NoError(err)

	stub.err = errors.New("db down")
	err = h.Handle(context.Background(), task)
	rq.Error(err)
	rq.NotErrorIs(err, asynq.SkipRetry)
}
