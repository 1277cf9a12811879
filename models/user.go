package models

import "slices"

// User is the gamification identity of a wallet address. It lives only in memory for the
// lifetime of the process.
type User struct {
	Address         string   `json:"address"`
	Username        string   `json:"username,omitempty"`
	TotalXP         int64    `json:"total_xp"`
	Level           int      `json:"level"`
	CompletedQuests []string `json:"completed_quests"`
	Badges          []Badge  `json:"badges"`
}

// NewUser returns a user at baseline stats.
func NewUser(address string) *User {
	return &User{
		Address:         address,
		CompletedQuests: []string{},
		Badges:          []Badge{},
	}
}

// Clone returns a deep copy safe to hand out of a locked store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.CompletedQuests = slices.Clone(u.CompletedQuests)
	c.Badges = slices.Clone(u.Badges)
	return &c
}

func (u *User) HasCompleted(questID string) bool {
	return slices.Contains(u.CompletedQuests, questID)
}

func (u *User) HasBadge(badgeID string) bool {
	return slices.ContainsFunc(u.Badges, func(b Badge) bool { return b.ID == badgeID })
}

// LeaderboardEntry is a ranked row of the leaderboard view.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Address   string `json:"address"`
	Username  string `json:"username,omitempty"`
	TotalXP   int64  `json:"total_xp"`
	Level     int    `json:"level"`
	LevelName string `json:"level_name"`
}
