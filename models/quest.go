package models

import "fmt"

// QuestDifficulty grades how demanding a quest is.
type QuestDifficulty string

const (
	DifficultyEasy   QuestDifficulty = "easy"
	DifficultyMedium QuestDifficulty = "medium"
	DifficultyHard   QuestDifficulty = "hard"
)

func (d QuestDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func ParseDifficulty(s string) (QuestDifficulty, error) {
	d := QuestDifficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown quest difficulty %q", s)
	}
	return d, nil
}

// QuestType says where the quest is performed.
type QuestType string

const (
	QuestTypeOnchain  QuestType = "onchain"
	QuestTypeOffchain QuestType = "offchain"
	QuestTypeHybrid   QuestType = "hybrid"
)

func (t QuestType) Valid() bool {
	switch t {
	case QuestTypeOnchain, QuestTypeOffchain, QuestTypeHybrid:
		return true
	}
	return false
}

func ParseQuestType(s string) (QuestType, error) {
	t := QuestType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown quest type %q", s)
	}
	return t, nil
}

type QuestStatus string

const (
	QuestStatusActive   QuestStatus = "active"
	QuestStatusInactive QuestStatus = "inactive"
)

func (s QuestStatus) Valid() bool {
	switch s {
	case QuestStatusActive, QuestStatusInactive:
		return true
	}
	return false
}

// Quest is a unit of work published by a Project. Immutable once added to the store.
type Quest struct {
	ID                  string          `gorm:"primaryKey" json:"id" yaml:"id"`
	ProjectID           string          `gorm:"index;not null" json:"project_id" yaml:"project_id"`
	Title               string          `gorm:"not null" json:"title" yaml:"title"`
	ShortDescription    string          `json:"short_description" yaml:"short_description"`
	DetailedDescription string          `gorm:"type:text" json:"detailed_description" yaml:"detailed_description"`
	XPReward            int64           `gorm:"not null" json:"xp_reward" yaml:"xp_reward"`
	Difficulty          QuestDifficulty `gorm:"type:varchar(16);not null" json:"difficulty" yaml:"difficulty"`
	QuestType           QuestType       `gorm:"type:varchar(16);not null" json:"quest_type" yaml:"quest_type"`
	Status              QuestStatus     `gorm:"type:varchar(16);default:'active'" json:"status" yaml:"status"`
	ExternalLink        string          `gorm:"type:text" json:"external_link,omitempty" yaml:"external_link,omitempty"`
	ImageURL            string          `gorm:"type:text" json:"image_url,omitempty" yaml:"image_url,omitempty"`
}
