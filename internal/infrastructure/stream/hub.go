package stream

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"dealflow/internal/domain/entity"
	"dealflow/pkg/logx"
)

const (
	EventDealScored = "deal.scored"

	defaultSendBuffer = 16
	writeTimeout      = 5 * time.Second
	pongTimeout       = time.Minute
	pingInterval      = pongTimeout * 9 / 10
)

// DealEvent is the message pushed to live feed subscribers.
type DealEvent struct {
	Type           string    `json:"type"`
	DealID         string    `json:"deal_id"`
	Name           string    `json:"name"`
	AssetType      string    `json:"asset_type"`
	Location       string    `json:"location"`
	Price          string    `json:"price"`
	Composite      int       `json:"composite"`
	Tier           string    `json:"tier"`
	Recommendation string    `json:"recommendation"`
	MatchCount     int       `json:"match_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts scored deals to connected websocket clients. Slow clients
// whose buffer is full are disconnected instead of blocking ingestion.
type Hub struct {
	upgrader    websocket.Upgrader
	sendBuffer  int
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{
		sendBuffer:  defaultSendBuffer,
		subscribers: make(map[*subscriber]struct{}),
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 {
				return true
			}

			return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		},
	}

	return h
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers)
}

// PublishDeal implements the ingestion publisher.
func (h *Hub) PublishDeal(ctx context.Context, deal entity.Deal, matchCount int) {
	payload, err := jsoniter.Marshal(DealEvent{
		Type:           EventDealScored,
		DealID:         deal.ID.String(),
		Name:           deal.Name,
		AssetType:      deal.AssetType.String(),
		Location:       deal.Location,
		Price:          deal.Price.StringFixed(2),
		Composite:      deal.Scores.Composite,
		Tier:           deal.Tier.String(),
		Recommendation: deal.Recommendation.String(),
		MatchCount:     matchCount,
		CreatedAt:      deal.CreatedAt,
	})
	if err != nil {
		logger(ctx).Error("jsoniter.Marshal", logx.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subscribers {
		select {
		case s.send <- payload:
		default:
			logger(ctx).Warn("stream subscriber too slow, dropping", slog.String("remote", s.conn.RemoteAddr().String()))
			h.drop(s)
		}
	}
}

// ServeHTTP upgrades the request and keeps the connection until the client
// goes away or the request context is cancelled.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger(ctx).Warn("upgrader.Upgrade", logx.Error(err))
		return
	}

	s := &subscriber{
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.subscribers[s] = struct{}{}
	h.mu.Unlock()

	logger(ctx).Info("stream subscriber connected", slog.String("remote", conn.RemoteAddr().String()))

	done := make(chan struct{})
	go h.readLoop(s, done)

	h.writeLoop(ctx, s, done)

	h.mu.Lock()
	h.drop(s)
	h.mu.Unlock()

	_ = conn.Close()

	logger(ctx).Info("stream subscriber disconnected", slog.String("remote", conn.RemoteAddr().String()))
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subscribers {
		h.drop(s)
	}
}

// drop must be called with mu held.
func (h *Hub) drop(s *subscriber) {
	if _, ok := h.subscribers[s]; !ok {
		return
	}

	delete(h.subscribers, s)
	close(s.send)
}

// readLoop discards client messages; it exists to process control frames
// and notice the peer closing the connection.
func (h *Hub) readLoop(s *subscriber, done chan<- struct{}) {
	defer close(done)

	s.conn.SetReadLimit(512)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(ctx context.Context, s *subscriber, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.writeClose(s)
			return
		case <-done:
			return
		case msg, ok := <-s.send:
			if !ok {
				h.writeClose(s)
				return
			}

			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) writeClose(s *subscriber) {
	_ = s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout),
	)
}
