package handler

import (
	"context"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/service/notification"
	"dealflow/internal/domain/value"
)

type sweeper interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	RunOnce(ctx context.Context) (notification.SweepResult, bool, error)
}

type kpiReader interface {
	KPIs(ctx context.Context) (entity.KPIs, error)
}

type tierSetter interface {
	SetPaidTier(ctx context.Context, id value.BuyerID, tier string) (entity.Buyer, error)
}

type Handler struct {
	sweeper sweeper
	kpis    kpiReader
	buyers  tierSetter
}

func New(sweeper sweeper, kpis kpiReader, buyers tierSetter) *Handler {
	return &Handler{
		sweeper: sweeper,
		kpis:    kpis,
		buyers:  buyers,
	}
}
