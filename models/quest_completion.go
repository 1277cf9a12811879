package models

import "time"

// QuestCompletion = one completion event in the append-only audit log.
type QuestCompletion struct {
	ID          string    `json:"id"`
	QuestID     string    `json:"quest_id"`
	UserAddress string    `json:"user_address"`
	CompletedAt time.Time `json:"completed_at"`
	Verified    bool      `json:"verified"`
}
