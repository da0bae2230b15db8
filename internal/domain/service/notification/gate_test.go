package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dealflow/internal/domain"
	"dealflow/internal/domain/entity"
	"dealflow/internal/domain/service/notification"
	"dealflow/internal/domain/value"
	"dealflow/pkg/errcodes"
)

// memStore settles matches the way the database does: a match is handed to
// one worker only and its status moves forward once.
type memStore struct {
	mu      sync.Mutex
	rows    []entity.PendingNotification
	locked  map[value.MatchID]bool
	updates map[value.MatchID]int
}

func newMemStore(rows ...entity.PendingNotification) *memStore {
	return &memStore{
		rows:    rows,
		locked:  map[value.MatchID]bool{},
		updates: map[value.MatchID]int{},
	}
}

func (s *memStore) ListPending(_ context.Context, limit int) ([]entity.PendingNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.PendingNotification
	for _, r := range s.rows {
		if r.Match.Status == value.MatchStatusMatched && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ListPendingByDeal(ctx context.Context, dealID value.DealID) ([]entity.PendingNotification, error) {
	all, _ := s.ListPending(ctx, len(s.rows))

	var out []entity.PendingNotification
	for _, r := range all {
		if r.Match.DealID == dealID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) Settle(ctx context.Context, matchID value.MatchID, deliver func(context.Context) value.MatchStatus) (bool, error) {
	s.mu.Lock()
	idx := -1
	for i, r := range s.rows {
		if r.Match.ID == matchID {
			idx = i
		}
	}
	if idx < 0 || s.locked[matchID] || s.rows[idx].Match.Status != value.MatchStatusMatched {
		s.mu.Unlock()
		return false, nil
	}
	s.locked[matchID] = true
	s.mu.Unlock()

	status := deliver(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[idx].Match.Status = status
	s.updates[matchID]++
	s.locked[matchID] = false

	return true, nil
}

func pending(phone string) entity.PendingNotification {
	dealID := value.NewDealID()
	buyerID := value.NewBuyerID()

	return entity.PendingNotification{
		Match: entity.Match{
			ID:      value.NewMatchID(),
			DealID:  dealID,
			BuyerID: buyerID,
			Status:  value.MatchStatusMatched,
		},
		Deal: entity.Deal{
			ID:          dealID,
			Name:        "Bungalow",
			AssetType:   value.AssetTypeRealEstate,
			Location:    "Toronto",
			Price:       decimal.NewFromInt(90_000),
			Description: "urgent must sell, divorce",
			Scores:      entity.Scores{Profit: 45, Urgency: 30, Composite: 75},
			Tier:        value.TierYellow,
		},
		Buyer: entity.Buyer{
			ID:       buyerID,
			Name:     "Ana",
			Email:    "ana@example.com",
			Phone:    phone,
			Active:   true,
			PaidTier: value.PaidTierPaid,
		},
	}
}

func newGate(t *testing.T, store notification.MatchStore, email *notification.EmailSenderMock, sms *notification.SMSSenderMock) *notification.Gate {
	t.Helper()

	renderer, err := notification.NewRenderer()
	require.NoError(t, err)

	return notification.NewGate(store, email, renderer).WithSMS(sms)
}

func okEmail() *notification.EmailSenderMock {
	return &notification.EmailSenderMock{
		SendEmailFunc: func(context.Context, string, string, string) error { return nil },
	}
}

func failingEmail() *notification.EmailSenderMock {
	return &notification.EmailSenderMock{
		SendEmailFunc: func(context.Context, string, string, string) error { return errors.New("smtp: 421 service not available") },
	}
}

func okSMS() *notification.SMSSenderMock {
	return &notification.SMSSenderMock{
		SendSMSFunc: func(context.Context, string, string) error { return nil },
	}
}

func TestGateEmailFailsWithoutPhone(t *testing.T) {
	rq := require.New(t)
	n := pending("")

	var statuses []value.MatchStatus
	store := &notification.MatchStoreMock{
		SettleFunc: func(ctx context.Context, _ value.MatchID, deliver func(context.Context) value.MatchStatus) (bool, error) {
			statuses = append(statuses, deliver(ctx))
			return true, nil
		},
	}
	sms := okSMS()

	outcomes := newGate(t, store, failingEmail(), sms).Notify(context.Background(), []entity.PendingNotification{n})

	rq.Equal([]entity.MatchOutcome{{
		MatchID: n.Match.ID,
		DealID:  n.Match.DealID,
		BuyerID: n.Match.BuyerID,
		Status:  value.MatchStatusFailed,
	}}, outcomes)
	rq.Empty(sms.SendSMSCalls())
	rq.Len(store.SettleCalls(), 1)
	rq.Equal([]value.MatchStatus{value.MatchStatusFailed}, statuses)
}

func TestGateChannels(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name      string
		phone     string
		emailErr  error
		smsErr    error
		want      value.MatchStatus
		emailSent bool
		smsSent   bool
		smsCalls  int
	}{
		{name: "Email only", want: value.MatchStatusContacted, emailSent: true},
		{name: "Email and SMS", phone: "+15550100", want: value.MatchStatusContacted, emailSent: true, smsSent: true, smsCalls: 1},
		{name: "SMS rescues failed email", phone: "+15550100", emailErr: errors.New("timeout"), want: value.MatchStatusContacted, smsSent: true, smsCalls: 1},
		{name: "SMS fails after email", phone: "+15550100", smsErr: errors.New("21211 invalid number"), want: value.MatchStatusContacted, emailSent: true, smsCalls: 1},
		{name: "Both fail", phone: "+15550100", emailErr: errors.New("timeout"), smsErr: errors.New("timeout"), want: value.MatchStatusFailed, smsCalls: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			n := pending(tc.phone)
			store := newMemStore(n)
			email := &notification.EmailSenderMock{
				SendEmailFunc: func(context.Context, string, string, string) error { return tc.emailErr },
			}
			sms := &notification.SMSSenderMock{
				SendSMSFunc: func(context.Context, string, string) error { return tc.smsErr },
			}

			outcomes := newGate(t, store, email, sms).Notify(context.Background(), []entity.PendingNotification{n})

			rq.Len(outcomes, 1)
			rq.Equal(tc.want, outcomes[0].Status)
			rq.Equal(tc.emailSent, outcomes[0].EmailSent)
			rq.Equal(tc.smsSent, outcomes[0].SMSSent)
			rq.Len(email.SendEmailCalls(), 1)
			rq.Equal("ana@example.com", email.SendEmailCalls()[0].To)
			rq.Len(sms.SendSMSCalls(), tc.smsCalls)
			rq.Equal(1, store.updates[n.Match.ID])
		})
	}
}

func TestGateIsolatesFailures(t *testing.T) {
	rq := require.New(t)
	first, broken, last := pending(""), pending(""), pending("")
	store := newMemStore(first, last)
	mock := &notification.MatchStoreMock{
		SettleFunc: func(ctx context.Context, id value.MatchID, deliver func(context.Context) value.MatchStatus) (bool, error) {
			if id == broken.Match.ID {
				return false, errors.New("deadlock detected")
			}
			return store.Settle(ctx, id, deliver)
		},
	}
	email := okEmail()

	outcomes := newGate(t, mock, email, okSMS()).Notify(context.Background(), []entity.PendingNotification{first, broken, last})

	rq.Len(outcomes, 3)
	rq.Equal(value.MatchStatusContacted, outcomes[0].Status)
	rq.Equal(value.MatchStatusMatched, outcomes[1].Status)
	rq.Equal(value.MatchStatusContacted, outcomes[2].Status)
	rq.Len(email.SendEmailCalls(), 2)
}

func TestGateSweepAtMostOnce(t *testing.T) {
	rq := require.New(t)
	store := newMemStore(pending(""), pending("+15550100"), pending(""))
	email := okEmail()
	sms := okSMS()
	alerter := &notification.AdminAlerterMock{
		AlertContactedFunc: func(context.Context, entity.PendingNotification) error { return errors.New("bot blocked") },
	}

	renderer, err := notification.NewRenderer()
	rq.NoError(err)

	gates := []*notification.Gate{
		notification.NewGate(store, email, renderer).WithSMS(sms).WithAlerter(alerter),
		notification.NewGate(store, email, renderer).WithSMS(sms).WithAlerter(alerter),
		notification.NewGate(store, email, renderer).WithSMS(sms).WithAlerter(alerter),
	}

	var wg sync.WaitGroup
	for _, g := range gates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Sweep(context.Background())
		}()
	}
	wg.Wait()

	result, err := gates[0].Sweep(context.Background())
	rq.NoError(err)
	rq.Equal(notification.SweepResult{}, result)

	rq.Len(email.SendEmailCalls(), 3)
	rq.Len(sms.SendSMSCalls(), 1)
	rq.Len(alerter.AlertContactedCalls(), 3)
	for _, updates := range store.updates {
		rq.Equal(1, updates)
	}
}

func TestGateSkipsSettledMatches(t *testing.T) {
	rq := require.New(t)
	n := pending("")
	store := newMemStore(n)
	email := okEmail()
	gate := newGate(t, store, email, okSMS())

	first := gate.Notify(context.Background(), []entity.PendingNotification{n})
	second := gate.Notify(context.Background(), []entity.PendingNotification{n})

	rq.False(first[0].Skipped)
	rq.True(second[0].Skipped)
	rq.Len(email.SendEmailCalls(), 1)

	contacted := n
	contacted.Match.Status = value.MatchStatusContacted
	rq.True(gate.Notify(context.Background(), []entity.PendingNotification{contacted})[0].Skipped)
}

func TestGateNotifyDeal(t *testing.T) {
	rq := require.New(t)
	target, other := pending(""), pending("")
	store := newMemStore(target, other)
	email := okEmail()

	result, err := newGate(t, store, email, okSMS()).NotifyDeal(context.Background(), target.Deal.ID)
	rq.NoError(err)
	rq.Equal(notification.SweepResult{Processed: 1, Contacted: 1}, result)
	rq.Equal(0, store.updates[other.Match.ID])
}

func TestGateSweepInProgress(t *testing.T) {
	rq := require.New(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	store := &notification.MatchStoreMock{
		ListPendingFunc: func(context.Context, int) ([]entity.PendingNotification, error) {
			close(entered)
			<-release
			return nil, nil
		},
	}
	gate := newGate(t, store, okEmail(), okSMS())

	done := make(chan error)
	go func() {
		_, err := gate.Sweep(context.Background())
		done <- err
	}()

	<-entered
	_, err := gate.Sweep(context.Background())
	rq.True(domain.HasCode(err, errcodes.SweepInProgress))

	close(release)
	rq.NoError(<-done)
}

func TestRenderer(t *testing.T) {
	rq := require.New(t)

	renderer, err := notification.NewRenderer()
	rq.NoError(err)

	msg, err := renderer.Render(pending("+15550100"))
	rq.NoError(err)

	rq.Equal("New real estate deal in Toronto - score 75/100", msg.Subject)
	rq.Contains(msg.Body, "Hi Ana,")
	rq.Contains(msg.Body, "Price:    $90,000")
	rq.Contains(msg.Body, "Score:    75/100 (YELLOW)")
	rq.Contains(msg.Body, "urgent must sell, divorce")
	rq.NotContains(msg.Body, "Listing:")
	rq.Equal("New real estate deal: Toronto, $90,000, score 75/100. Check your email for details.", msg.SMS)
}
