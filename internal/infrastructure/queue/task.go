package queue

import (
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"dealflow/internal/domain/value"
)

const (
	TypeNotifyDeal = "notify:deal"

	QueueNotifications = "notifications"
)

type notifyDealPayload struct {
	DealID string `json:"deal_id"`
}

func NewNotifyDealTask(dealID value.DealID) (*asynq.Task, error) {
	payload, err := jsoniter.Marshal(notifyDealPayload{DealID: dealID.String()})
	if err != nil {
		return nil, fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	return asynq.NewTask(TypeNotifyDeal, payload), nil
}

// ParseNotifyDealTask extracts the deal id. A malformed payload is wrapped in
// asynq.SkipRetry since retrying cannot fix it.
func ParseNotifyDealTask(task *asynq.Task) (value.DealID, error) {
	var p notifyDealPayload
	if err := jsoniter.Unmarshal(task.Payload(), &p); err != nil {
		return value.DealID{}, fmt.Errorf("jsoniter.Unmarshal: %v: %w", err, asynq.SkipRetry)
	}

	id, err := value.ParseDealID(p.DealID)
	if err != nil {
		return value.DealID{}, fmt.Errorf("value.ParseDealID: %v: %w", err, asynq.SkipRetry)
	}

	return id, nil
}

func notifyDealTaskID(dealID value.DealID) string {
	return TypeNotifyDeal + ":" + dealID.String()
}
