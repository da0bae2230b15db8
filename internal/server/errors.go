package server

import (
	"context"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"dealflow/internal/domain"
	"dealflow/pkg/errcodes"
	"dealflow/pkg/httpx/reply"
	"dealflow/pkg/logx"
)

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.ValidationError:     http.StatusBadRequest,
	errcodes.InvalidPaging:       http.StatusBadRequest,
	errcodes.InvalidDealID:       http.StatusBadRequest,
	errcodes.InvalidDeal:         http.StatusBadRequest,
	errcodes.InvalidAssetType:    http.StatusBadRequest,
	errcodes.InvalidPrice:        http.StatusBadRequest,
	errcodes.InvalidTier:         http.StatusBadRequest,
	errcodes.InvalidBuyerID:      http.StatusBadRequest,
	errcodes.InvalidBuyer:        http.StatusBadRequest,
	errcodes.InvalidBudgetRange:  http.StatusBadRequest,
	errcodes.InvalidPaidTier:     http.StatusBadRequest,
	errcodes.InvalidBillingEvent: http.StatusBadRequest,
	errcodes.Forbidden:           http.StatusForbidden,
	errcodes.NotFound:            http.StatusNotFound,
	errcodes.DealNotFound:        http.StatusNotFound,
	errcodes.BuyerNotFound:       http.StatusNotFound,
	errcodes.MatchNotFound:       http.StatusNotFound,
	errcodes.Conflict:            http.StatusConflict,
	errcodes.BuyerEmailInUse:     http.StatusConflict,
	errcodes.MatchAlreadyClosed:  http.StatusConflict,
	errcodes.DuplicateMatch:      http.StatusConflict,
	errcodes.SweepInProgress:     http.StatusConflict,
}

// replyError translates domain errors into HTTP replies. Anything without a
// known domain code goes through reply.Error.
func replyError(ctx context.Context, w http.ResponseWriter, err error) {
	code, ok := domain.GetCode(err)
	if !ok {
		reply.Error(ctx, w, err)
		return
	}

	status, ok := statusByCode[code]
	if !ok {
		reply.Error(ctx, w, err)
		return
	}

	logger(ctx).Warn("request rejected", logx.Error(err))

	reply.Problem(ctx, w, status, code, err.Error())
}
