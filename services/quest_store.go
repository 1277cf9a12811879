package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"questchain/models"
)

var (
	ErrQuestNotFound         = errors.New("quest not found")
	ErrQuestAlreadyCompleted = errors.New("quest already completed")
	ErrProjectNotFound       = errors.New("project not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateID           = errors.New("duplicate id")
	ErrInvalidQuest          = errors.New("invalid quest")
	ErrInvalidProject        = errors.New("invalid project")
	ErrEmptyAddress          = errors.New("empty user address")
)

const subscriberBuffer = 8

type QuestStoreOption func(*QuestStore)

// WithRepeatCompletions lets a user complete the same quest again, re-awarding its XP and
// logging another completion each time.
func WithRepeatCompletions(allow bool) QuestStoreOption {
	return func(s *QuestStore) { s.allowRepeat = allow }
}

func WithClock(now func() time.Time) QuestStoreOption {
	return func(s *QuestStore) { s.now = now }
}

// QuestFilter narrows Quests. Zero fields match everything.
type QuestFilter struct {
	Search     string
	ProjectID  string
	Difficulty models.QuestDifficulty
	Type       models.QuestType
}

func (f QuestFilter) match(q models.Quest) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(q.Title), needle) &&
			!strings.Contains(strings.ToLower(q.ShortDescription), needle) {
			return false
		}
	}
	if f.ProjectID != "" && q.ProjectID != f.ProjectID {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.Type != "" && q.QuestType != f.Type {
		return false
	}
	return true
}

// QuestStore holds quests, projects, users, completions and badges for the whole process.
// Every method is safe for concurrent use; values handed out are copies.
type QuestStore struct {
	mu sync.RWMutex

	projects   []models.Project
	projectIdx map[string]int
	quests     []models.Quest
	questIdx   map[string]int
	badges     []models.Badge

	users       map[string]*models.User
	userOrder   []string
	completions []models.QuestCompletion
	current     string

	subs    map[int]chan models.User
	nextSub int

	allowRepeat bool
	now         func() time.Time
}

// NewQuestStore seeds a store from a catalog. Catalog entries go through the same checks as
// AddProject and AddQuest.
func NewQuestStore(catalog *Catalog, opts ...QuestStoreOption) (*QuestStore, error) {
	s := &QuestStore{
		projectIdx: make(map[string]int),
		questIdx:   make(map[string]int),
		users:      make(map[string]*models.User),
		subs:       make(map[int]chan models.User),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if catalog == nil {
		return s, nil
	}

	for _, p := range catalog.Projects {
		if err := s.AddProject(p); err != nil {
			return nil, fmt.Errorf("seed project %s: %w", p.ID, err)
		}
	}
	for _, q := range catalog.Quests {
		if err := s.AddQuest(q); err != nil {
			return nil, fmt.Errorf("seed quest %s: %w", q.ID, err)
		}
	}
	s.badges = slices.Clone(catalog.Badges)
	slices.SortStableFunc(s.badges, func(a, b models.Badge) int {
		return cmp.Compare(a.RequiredXP, b.RequiredXP)
	})
	return s, nil
}

// AddProject inserts a project. Ids must be unique.
func (s *QuestStore) AddProject(p models.Project) error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProject)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projectIdx[p.ID]; ok {
		return fmt.Errorf("project %s: %w", p.ID, ErrDuplicateID)
	}
	s.projectIdx[p.ID] = len(s.projects)
	s.projects = append(s.projects, p)
	return nil
}

// AddQuest inserts a quest of an existing project. Ids must be unique.
func (s *QuestStore) AddQuest(q models.Quest) error {
	if err := ValidateQuest(q); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questIdx[q.ID]; ok {
		return fmt.Errorf("quest %s: %w", q.ID, ErrDuplicateID)
	}
	if _, ok := s.projectIdx[q.ProjectID]; !ok {
		return fmt.Errorf("quest %s: project %s: %w", q.ID, q.ProjectID, ErrProjectNotFound)
	}
	s.questIdx[q.ID] = len(s.quests)
	s.quests = append(s.quests, q)
	return nil
}

// ValidateQuest checks the fields of a quest that do not depend on store contents.
func ValidateQuest(q models.Quest) error {
	switch {
	case q.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidQuest)
	case q.XPReward <= 0:
		return fmt.Errorf("%w: %s: xp reward must be positive", ErrInvalidQuest, q.ID)
	case !q.Difficulty.Valid():
		return fmt.Errorf("%w: %s: difficulty %q", ErrInvalidQuest, q.ID, q.Difficulty)
	case !q.QuestType.Valid():
		return fmt.Errorf("%w: %s: quest type %q", ErrInvalidQuest, q.ID, q.QuestType)
	case !q.Status.Valid():
		return fmt.Errorf("%w: %s: status %q", ErrInvalidQuest, q.ID, q.Status)
	}
	return nil
}

// CompleteQuest records a completion of questID by address and applies the XP, level and
// badge updates. Unknown quests are rejected without touching any state. Unless repeat
// completions are allowed, completing a quest twice returns ErrQuestAlreadyCompleted.
func (s *QuestStore) CompleteQuest(questID, address string) (*models.User, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.questIdx[questID]
	if !ok {
		return nil, fmt.Errorf("quest %s: %w", questID, ErrQuestNotFound)
	}
	quest := s.quests[i]

	user := s.users[address]
	if user != nil && !s.allowRepeat && user.HasCompleted(questID) {
		return nil, fmt.Errorf("quest %s by %s: %w", questID, address, ErrQuestAlreadyCompleted)
	}
	if user == nil {
		user = s.materialize(address)
	}

	now := s.now()
	s.completions = append(s.completions, models.QuestCompletion{
		ID:          uuid.NewString(),
		QuestID:     questID,
		UserAddress: address,
		CompletedAt: now,
		Verified:    true,
	})

	prevLevel := user.Level
	user.TotalXP += quest.XPReward
	user.Level = LevelFor(user.TotalXP)
	if !user.HasCompleted(questID) {
		user.CompletedQuests = append(user.CompletedQuests, questID)
	}
	earned := BadgesEarned(user.TotalXP, s.badges, user.Badges)
	user.Badges = append(user.Badges, earned...)

	ev := log.Info().
		Str("quest_id", questID).
		Str("address", address).
		Int64("xp_reward", quest.XPReward).
		Int64("total_xp", user.TotalXP).
		Int("level", user.Level)
	if user.Level > prevLevel {
		ev = ev.Str("level_up", LevelName(user.Level))
	}
	for _, b := range earned {
		ev = ev.Str("badge_"+b.ID, b.Name)
	}
	ev.Msg("[QUESTS] quest completed")

	snapshot := user.Clone()
	if s.current == address {
		s.publish(*snapshot)
	}
	return snapshot, nil
}

// materialize creates a baseline user. Caller holds the write lock.
func (s *QuestStore) materialize(address string) *models.User {
	u := models.NewUser(address)
	s.users[address] = u
	s.userOrder = append(s.userOrder, address)
	return u
}

// SetCurrentUser activates the user for address, creating it at baseline stats if needed.
func (s *QuestStore) SetCurrentUser(address string) (*models.User, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[address]
	if !ok {
		user = s.materialize(address)
	}
	s.current = address
	snapshot := user.Clone()
	s.publish(*snapshot)
	return snapshot, nil
}

func (s *QuestStore) ClearCurrentUser() {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()
}

func (s *QuestStore) CurrentUser() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return nil, false
	}
	return s.users[s.current].Clone(), true
}

// Subscribe streams snapshots of the current user whenever it is activated or progresses.
// Slow subscribers miss updates instead of blocking the store. Call the returned func to stop.
func (s *QuestStore) Subscribe() (<-chan models.User, func()) {
	ch := make(chan models.User, subscriberBuffer)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// publish fans a snapshot out to subscribers. Caller holds the write lock.
func (s *QuestStore) publish(u models.User) {
	for _, ch := range s.subs {
		select {
		case ch <- *u.Clone():
		default:
		}
	}
}

func (s *QuestStore) GetUserProfile(address string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[address]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

func (s *QuestStore) GetQuestsByProject(projectID string) []models.Quest {
	return s.Quests(QuestFilter{ProjectID: projectID})
}

// GetLeaderboard orders users by total XP, highest first. Ties keep the order in which the
// users were first seen.
func (s *QuestStore) GetLeaderboard() []models.User {
	s.mu.RLock()
	users := make([]models.User, 0, len(s.userOrder))
	for _, addr := range s.userOrder {
		users = append(users, *s.users[addr].Clone())
	}
	s.mu.RUnlock()

	slices.SortStableFunc(users, func(a, b models.User) int {
		return cmp.Compare(b.TotalXP, a.TotalXP)
	})
	return users
}

// LeaderboardEntries is GetLeaderboard with 1-based ranks.
func (s *QuestStore) LeaderboardEntries() []models.LeaderboardEntry {
	users := s.GetLeaderboard()
	entries := make([]models.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = models.LeaderboardEntry{
			Rank:      i + 1,
			Address:   u.Address,
			Username:  u.Username,
			TotalXP:   u.TotalXP,
			Level:     u.Level,
			LevelName: LevelName(u.Level),
		}
	}
	return entries
}

func (s *QuestStore) Quests(filter QuestFilter) []models.Quest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Quest{}
	for _, q := range s.quests {
		if filter.match(q) {
			out = append(out, q)
		}
	}
	return out
}

func (s *QuestStore) Quest(id string) (models.Quest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.questIdx[id]
	if !ok {
		return models.Quest{}, false
	}
	return s.quests[i], true
}

func (s *QuestStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

func (s *QuestStore) Project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.projectIdx[id]
	if !ok {
		return models.Project{}, false
	}
	return s.projects[i], true
}

// Badges returns the catalog sorted by required XP.
func (s *QuestStore) Badges() []models.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.badges)
}

// Completions returns the audit log, optionally for a single address.
func (s *QuestStore) Completions(address string) []models.QuestCompletion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.QuestCompletion{}
	for _, c := range s.completions {
		if address == "" || c.UserAddress == address {
			out = append(out, c)
		}
	}
	return out
}

func (s *QuestStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{
		TotalUsers:       len(s.users),
		TotalQuests:      len(s.quests),
		TotalProjects:    len(s.projects),
		TotalCompletions: len(s.completions),
	}
	for _, u := range s.users {
		st.TotalXP += u.TotalXP
	}
	return st
}
