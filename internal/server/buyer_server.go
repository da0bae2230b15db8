package server

import (
	"context"
	"fmt"
	"net/http"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/service/buyer"
	"dealflow/internal/domain/value"
	"dealflow/pkg/httpx/reply"
	"dealflow/pkg/httpx/req"
	"dealflow/pkg/lox"
	"dealflow/pkg/rest"
)

type buyerService interface {
	Register(ctx context.Context, reg buyer.Registration) (entity.Buyer, error)
	ListActive(ctx context.Context) ([]entity.Buyer, error)
	SetPaidTier(ctx context.Context, id value.BuyerID, tier string) (entity.Buyer, error)
	SetActive(ctx context.Context, id value.BuyerID, active bool) (entity.Buyer, error)
}

type BuyerServer struct {
	buyerService buyerService
}

func NewBuyerServer(buyerService buyerService) BuyerServer {
	return BuyerServer{
		buyerService: buyerService,
	}
}

func (s BuyerServer) postV1Buyer(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RegisterBuyerRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	b, err := s.buyerService.Register(ctx, newDomainRegistration(request))
	if err != nil {
		return fmt.Errorf("buyerService.Register: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTBuyer(b))

	return nil
}

func (s BuyerServer) getV1Buyers(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	buyers, err := s.buyerService.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("buyerService.ListActive: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(buyers, newRESTBuyer))

	return nil
}

func (s BuyerServer) putV1BuyerTier(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseBuyerID(r.PathValue("id"))
	if err != nil {
		return err
	}

	var request rest.UpdatePaidTierRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	b, err := s.buyerService.SetPaidTier(ctx, id, request.PaidTier)
	if err != nil {
		return fmt.Errorf("buyerService.SetPaidTier: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyer(b))

	return nil
}

func (s BuyerServer) putV1BuyerActive(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseBuyerID(r.PathValue("id"))
	if err != nil {
		return err
	}

	var request rest.UpdateActiveRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	b, err := s.buyerService.SetActive(ctx, id, *request.Active)
	if err != nil {
		return fmt.Errorf("buyerService.SetActive: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyer(b))

	return nil
}
