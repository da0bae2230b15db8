package stream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/value"
	"dealflow/internal/infrastructure/stream"
)

func TestHubPublishDeal(t *testing.T) {
	rq := require.New(t)

	hub := stream.NewHub(nil)
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	rq.NoError(err)
	t.Cleanup(func() { _ = conn.Close() })

	rq.Eventually(func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	deal := entity.Deal{
		ID:             value.NewDealID(),
		Name:           "Bungalow",
		AssetType:      value.AssetTypeRealEstate,
		Location:       "Toronto",
		Price:          decimal.NewFromInt(90000),
		Scores:         entity.Scores{Profit: 45, Urgency: 40, Risk: 0, Composite: 85},
		Tier:           value.TierGreen,
		Recommendation: value.RecommendationBuyImmediately,
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	hub.PublishDeal(context.Background(), deal, 2)

	rq.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, msg, err := conn.ReadMessage()
	rq.NoError(err)

	var event stream.DealEvent
	rq.NoError(jsoniter.Unmarshal(msg, &event))
	rq.Equal(stream.EventDealScored, event.Type)
	rq.Equal(deal.ID.String(), event.DealID)
	rq.Equal("90000.00", event.Price)
	rq.Equal(85, event.Composite)
	rq.Equal("GREEN", event.Tier)
	rq.Equal(2, event.MatchCount)
}

func TestHubDropsClosedSubscriber(t *testing.T) {
	rq := require.New(t)

	hub := stream.NewHub(nil)
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	rq.NoError(err)

	rq.Eventually(func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	rq.NoError(conn.Close())

	rq.Eventually(func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	rq := require.New(t)

	hub := stream.NewHub([]string{"https://dealflow.example"})
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	header := http.Header{"Origin": {"https://evil.example"}}

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	rq.Error(err)
	rq.NotNil(resp)
	rq.Equal(http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}
