package server

import (
	"context"
	"fmt"
	"net/http"

	"dealflow/internal/domain/service/notification"
	"dealflow/pkg/httpx/reply"
)

type notificationSweeper interface {
	Sweep(ctx context.Context) (notification.SweepResult, error)
}

type AdminServer struct {
	sweeper notificationSweeper
}

func NewAdminServer(sweeper notificationSweeper) AdminServer {
	return AdminServer{
		sweeper: sweeper,
	}
}

func (s AdminServer) postV1AdminSweep(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	result, err := s.sweeper.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("sweeper.Sweep: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSweepResult(result))

	return nil
}
