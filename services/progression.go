package services

// LevelThresholds: XP needed to reach levels 1..5. Below the first threshold a user is level 0.
var LevelThresholds = [...]int64{100, 500, 1000, 2500, 5000}

var levelNames = [...]string{"Newcomer", "Explorer", "Pathfinder", "Navigator", "DeFi Native", "Injective OG"}

// MaxLevel is the highest reachable level.
const MaxLevel = len(LevelThresholds)

// LevelFor maps accumulated XP to a level in [0, MaxLevel]. Negative XP is treated as 0.
func LevelFor(totalXP int64) int {
	level := 0
	for _, threshold := range LevelThresholds {
		if totalXP < threshold {
			break
		}
		level++
	}
	return level
}

// LevelName returns the display label of a level; anything out of range is a Newcomer.
func LevelName(level int) string {
	if level < 0 || level >= len(levelNames) {
		return levelNames[0]
	}
	return levelNames[level]
}

// XPToNextLevel returns how much XP is missing for the next level, or false at MaxLevel.
func XPToNextLevel(totalXP int64) (int64, bool) {
	level := LevelFor(totalXP)
	if level >= MaxLevel {
		return 0, false
	}
	return LevelThresholds[level] - max(totalXP, 0), true
}
