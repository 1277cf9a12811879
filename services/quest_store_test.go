package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"questchain/models"
)

func testQuest(id, projectID string, xp int64) models.Quest {
	return models.Quest{
		ID:         id,
		ProjectID:  projectID,
		Title:      "Quest " + id,
		XPReward:   xp,
		Difficulty: models.DifficultyEasy,
		QuestType:  models.QuestTypeOnchain,
		Status:     models.QuestStatusActive,
	}
}

func testCatalog() *Catalog {
	return &Catalog{
		Projects: []models.Project{{ID: "p1", Name: "Helix"}},
		Quests: []models.Quest{
			testQuest("q100", "p1", 100),
			testQuest("q300", "p1", 300),
			testQuest("q450", "p1", 450),
			testQuest("q900", "p1", 900),
		},
		Badges: DefaultBadges(),
	}
}

func newTestStore(t *testing.T, opts ...QuestStoreOption) *QuestStore {
	t.Helper()
	s, err := NewQuestStore(testCatalog(), opts...)
	require.NoError(t, err)
	return s
}

func TestCompleteQuestProgression(t *testing.T) {
	s := newTestStore(t)

	u, err := s.CompleteQuest("q100", "inj1alice")
	require.NoError(t, err)
	assert.EqualValues(t, 100, u.TotalXP)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, []string{"q100"}, u.CompletedQuests)
	assert.Equal(t, []string{"1"}, badgeIDs(u.Badges))

	u, err = s.CompleteQuest("q450", "inj1alice")
	require.NoError(t, err)
	assert.EqualValues(t, 550, u.TotalXP)
	assert.Equal(t, 2, u.Level)
	assert.Equal(t, []string{"q100", "q450"}, u.CompletedQuests)
	assert.Equal(t, []string{"1", "2"}, badgeIDs(u.Badges))

	assert.Len(t, s.Completions("inj1alice"), 2)
}

func TestCompleteQuestUnknownQuest(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CompleteQuest("nope", "inj1alice")
	require.ErrorIs(t, err, ErrQuestNotFound)

	_, ok := s.GetUserProfile("inj1alice")
	assert.False(t, ok)
	assert.Empty(t, s.Completions(""))
}

func TestCompleteQuestEmptyAddress(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CompleteQuest("q100", "")
	require.ErrorIs(t, err, ErrEmptyAddress)
}

func TestCompleteQuestTwiceRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CompleteQuest("q100", "inj1alice")
	require.NoError(t, err)
	_, err = s.CompleteQuest("q100", "inj1alice")
	require.ErrorIs(t, err, ErrQuestAlreadyCompleted)

	u, ok := s.GetUserProfile("inj1alice")
	require.True(t, ok)
	assert.EqualValues(t, 100, u.TotalXP)
	assert.Len(t, s.Completions("inj1alice"), 1)
}

func TestCompleteQuestTwiceAllowed(t *testing.T) {
	s := newTestStore(t, WithRepeatCompletions(true))

	_, err := s.CompleteQuest("q450", "inj1alice")
	require.NoError(t, err)
	u, err := s.CompleteQuest("q450", "inj1alice")
	require.NoError(t, err)

	assert.EqualValues(t, 900, u.TotalXP)
	assert.Equal(t, []string{"q450"}, u.CompletedQuests)
	assert.Equal(t, []string{"1", "2"}, badgeIDs(u.Badges))
	assert.Len(t, s.Completions("inj1alice"), 2)
}

func TestCompletionRecord(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, WithClock(func() time.Time { return at }))

	_, err := s.CompleteQuest("q300", "inj1bob")
	require.NoError(t, err)

	cs := s.Completions("")
	require.Len(t, cs, 1)
	assert.NotEmpty(t, cs[0].ID)
	assert.Equal(t, "q300", cs[0].QuestID)
	assert.Equal(t, "inj1bob", cs[0].UserAddress)
	assert.Equal(t, at, cs[0].CompletedAt)
	assert.True(t, cs[0].Verified)
}

func TestUserInvariantsHold(t *testing.T) {
	s := newTestStore(t)
	for _, q := range []string{"q100", "q300", "q450", "q900"} {
		_, err := s.CompleteQuest(q, "inj1carol")
		require.NoError(t, err)

		u, _ := s.GetUserProfile("inj1carol")
		var sum int64
		for _, id := range u.CompletedQuests {
			quest, ok := s.Quest(id)
			require.True(t, ok)
			sum += quest.XPReward
		}
		assert.Equal(t, sum, u.TotalXP)
		assert.Equal(t, LevelFor(u.TotalXP), u.Level)
		for _, b := range u.Badges {
			assert.LessOrEqual(t, b.RequiredXP, u.TotalXP)
		}
		assert.ElementsMatch(t, badgeIDs(u.Badges), badgeIDs(BadgesEarned(u.TotalXP, s.Badges(), nil)))
	}
}

func TestGetLeaderboard(t *testing.T) {
	s := newTestStore(t)
	for _, c := range []struct{ quest, addr string }{
		{"q300", "user1"},
		{"q900", "user2"},
		{"q900", "user3"},
	} {
		_, err := s.CompleteQuest(c.quest, c.addr)
		require.NoError(t, err)
	}

	board := s.GetLeaderboard()
	require.Len(t, board, 3)
	assert.Equal(t, "user2", board[0].Address)
	assert.Equal(t, "user3", board[1].Address)
	assert.Equal(t, "user1", board[2].Address)

	entries := s.LeaderboardEntries()
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, "Pathfinder", entries[0].LevelName)
	assert.Equal(t, "Explorer", entries[2].LevelName)
}

func TestAddProjectAndQuest(t *testing.T) {
	s := newTestStore(t)

	require.ErrorIs(t, s.AddProject(models.Project{ID: "p1"}), ErrDuplicateID)
	require.ErrorIs(t, s.AddProject(models.Project{}), ErrInvalidProject)
	require.NoError(t, s.AddProject(models.Project{ID: "p2", Name: "Mito"}))

	require.ErrorIs(t, s.AddQuest(testQuest("q100", "p2", 10)), ErrDuplicateID)
	require.ErrorIs(t, s.AddQuest(testQuest("qx", "missing", 10)), ErrProjectNotFound)
	require.ErrorIs(t, s.AddQuest(testQuest("qx", "p2", 0)), ErrInvalidQuest)

	bad := testQuest("qx", "p2", 10)
	bad.Difficulty = "legendary"
	require.ErrorIs(t, s.AddQuest(bad), ErrInvalidQuest)

	require.NoError(t, s.AddQuest(testQuest("qx", "p2", 10)))
	assert.Len(t, s.GetQuestsByProject("p2"), 1)
	assert.Len(t, s.Projects(), 2)
}

func TestNewQuestStoreRejectsBrokenCatalog(t *testing.T) {
	c := testCatalog()
	c.Quests = append(c.Quests, testQuest("orphan", "p9", 10))
	_, err := NewQuestStore(c)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestNewQuestStoreSortsBadges(t *testing.T) {
	c := testCatalog()
	c.Badges = []models.Badge{
		{ID: "b", RequiredXP: 500},
		{ID: "a", RequiredXP: 100},
	}
	s, err := NewQuestStore(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, badgeIDs(s.Badges()))
}

func TestSetCurrentUser(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.CurrentUser()
	assert.False(t, ok)

	u, err := s.SetCurrentUser("inj1dave")
	require.NoError(t, err)
	assert.Zero(t, u.TotalXP)
	assert.Equal(t, 0, u.Level)
	assert.Empty(t, u.CompletedQuests)
	assert.Empty(t, u.Badges)

	_, err = s.CompleteQuest("q100", "inj1dave")
	require.NoError(t, err)

	again, err := s.SetCurrentUser("inj1dave")
	require.NoError(t, err)
	assert.EqualValues(t, 100, again.TotalXP)
	assert.Equal(t, 1, s.Stats().TotalUsers)

	s.ClearCurrentUser()
	_, ok = s.CurrentUser()
	assert.False(t, ok)

	_, err = s.SetCurrentUser("")
	require.ErrorIs(t, err, ErrEmptyAddress)
}

func TestProfilesAreCopies(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CompleteQuest("q100", "inj1erin")
	require.NoError(t, err)

	u, _ := s.GetUserProfile("inj1erin")
	u.CompletedQuests[0] = "tampered"
	u.TotalXP = 1

	fresh, _ := s.GetUserProfile("inj1erin")
	assert.Equal(t, []string{"q100"}, fresh.CompletedQuests)
	assert.EqualValues(t, 100, fresh.TotalXP)
}

func TestSubscribeReceivesCurrentUser(t *testing.T) {
	s := newTestStore(t)
	ch, cancel := s.Subscribe()
	defer cancel()

	_, err := s.SetCurrentUser("inj1frank")
	require.NoError(t, err)
	_, err = s.CompleteQuest("q300", "inj1frank")
	require.NoError(t, err)
	_, err = s.CompleteQuest("q100", "someone-else")
	require.NoError(t, err)

	first := <-ch
	assert.Zero(t, first.TotalXP)
	second := <-ch
	assert.EqualValues(t, 300, second.TotalXP)

	select {
	case u := <-ch:
		t.Fatalf("unexpected update for %s", u.Address)
	default:
	}
}

func TestSubscribeCancelClosesChannel(t *testing.T) {
	s := newTestStore(t)
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	_, err := s.SetCurrentUser("inj1gina")
	require.NoError(t, err)
}

func TestConcurrentCompletions(t *testing.T) {
	s := newTestStore(t)
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CompleteQuest("q100", "inj1race")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrQuestAlreadyCompleted):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, dup)

	u, _ := s.GetUserProfile("inj1race")
	assert.EqualValues(t, 100, u.TotalXP)
}

func TestQuestsFilter(t *testing.T) {
	s, err := NewQuestStore(DefaultCatalog())
	require.NoError(t, err)

	assert.Len(t, s.Quests(QuestFilter{}), 8)
	assert.Len(t, s.Quests(QuestFilter{ProjectID: "1"}), 4)
	assert.Len(t, s.Quests(QuestFilter{Difficulty: models.DifficultyHard}), 2)
	assert.Len(t, s.Quests(QuestFilter{Type: models.QuestTypeOffchain}), 2)
	assert.Len(t, s.Quests(QuestFilter{Search: "HELIX"}), 4)
	assert.Len(t, s.Quests(QuestFilter{Search: "vault", ProjectID: "2"}), 2)
	assert.Empty(t, s.Quests(QuestFilter{ProjectID: "404"}))
}

func TestStats(t *testing.T) {
	s, err := NewQuestStore(DefaultCatalog())
	require.NoError(t, err)
	_, err = s.CompleteQuest("8", "inj1a")
	require.NoError(t, err)
	_, err = s.CompleteQuest("8", "inj1b")
	require.NoError(t, err)
	_, err = s.CompleteQuest("4", "inj1b")
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, Stats{
		TotalUsers:       2,
		TotalQuests:      8,
		TotalProjects:    3,
		TotalCompletions: 3,
		TotalXP:          1300,
	}, st)
	assert.Equal(t, "1,300", st.Format(language.English).TotalXP)
}
