package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats are the platform-wide counters shown on the landing page.
type Stats struct {
	TotalUsers       int   `json:"total_users"`
	TotalQuests      int   `json:"total_quests"`
	TotalProjects    int   `json:"total_projects"`
	TotalCompletions int   `json:"total_completions"`
	TotalXP          int64 `json:"total_xp"`
}

// FormattedStats carries the same counters rendered for display ("1,234").
type FormattedStats struct {
	TotalUsers       string `json:"total_users"`
	TotalQuests      string `json:"total_quests"`
	TotalProjects    string `json:"total_projects"`
	TotalCompletions string `json:"total_completions"`
	TotalXP          string `json:"total_xp"`
}

func (s Stats) Format(tag language.Tag) FormattedStats {
	p := message.NewPrinter(tag)
	return FormattedStats{
		TotalUsers:       p.Sprintf("%d", s.TotalUsers),
		TotalQuests:      p.Sprintf("%d", s.TotalQuests),
		TotalProjects:    p.Sprintf("%d", s.TotalProjects),
		TotalCompletions: p.Sprintf("%d", s.TotalCompletions),
		TotalXP:          p.Sprintf("%d", s.TotalXP),
	}
}
