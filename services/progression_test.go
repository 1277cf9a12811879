package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"questchain/models"
)

func TestLevelFor(t *testing.T) {
	cases := map[int64]int{
		-10:   0,
		0:     0,
		99:    0,
		100:   1,
		499:   1,
		500:   2,
		999:   2,
		1000:  3,
		2499:  3,
		2500:  4,
		4999:  4,
		5000:  5,
		90000: 5,
	}
	for xp, want := range cases {
		assert.Equal(t, want, LevelFor(xp), "xp=%d", xp)
	}
}

func TestLevelForIsMonotonic(t *testing.T) {
	prev := LevelFor(0)
	for xp := int64(1); xp <= 6000; xp += 7 {
		l := LevelFor(xp)
		assert.GreaterOrEqual(t, l, prev, "xp=%d", xp)
		assert.LessOrEqual(t, l, MaxLevel)
		prev = l
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "Newcomer", LevelName(0))
	assert.Equal(t, "Explorer", LevelName(1))
	assert.Equal(t, "Pathfinder", LevelName(2))
	assert.Equal(t, "Navigator", LevelName(3))
	assert.Equal(t, "DeFi Native", LevelName(4))
	assert.Equal(t, "Injective OG", LevelName(5))
	assert.Equal(t, "Newcomer", LevelName(6))
	assert.Equal(t, "Newcomer", LevelName(-1))
}

func TestXPToNextLevel(t *testing.T) {
	left, ok := XPToNextLevel(0)
	assert.True(t, ok)
	assert.EqualValues(t, 100, left)

	left, ok = XPToNextLevel(550)
	assert.True(t, ok)
	assert.EqualValues(t, 450, left)

	_, ok = XPToNextLevel(5000)
	assert.False(t, ok)
}

func badgeIDs(bs []models.Badge) []string {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestBadgesEarned(t *testing.T) {
	all := DefaultBadges()

	assert.Empty(t, BadgesEarned(99, all, nil))
	assert.Equal(t, []string{"1", "2"}, badgeIDs(BadgesEarned(600, all, nil)))
	assert.Equal(t, []string{"2"}, badgeIDs(BadgesEarned(600, all, all[:1])))
	assert.Empty(t, BadgesEarned(600, all, all[:2]))
	assert.Len(t, BadgesEarned(5000, all, nil), 5)
}

func TestBadgesEarnedSkipsRepeatedCatalogIDs(t *testing.T) {
	all := append(DefaultBadges(), models.Badge{ID: "1", Name: "Explorer again", RequiredXP: 50})
	assert.Equal(t, []string{"1", "2"}, badgeIDs(BadgesEarned(600, all, nil)))
}

func TestNextBadge(t *testing.T) {
	all := DefaultBadges()

	b, ok := NextBadge(0, all)
	assert.True(t, ok)
	assert.Equal(t, "Explorer", b.Name)

	b, ok = NextBadge(600, all)
	assert.True(t, ok)
	assert.Equal(t, "Navigator", b.Name)

	_, ok = NextBadge(5000, all)
	assert.False(t, ok)
}
