package services

import (
	"strconv"

	"questchain/models"
)

const unsplash = "https://images.unsplash.com/"

// DefaultCatalog returns the launch catalog: three partner projects, eight quests and the badge ladder.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Projects: DefaultProjects(),
		Quests:   DefaultQuests(),
		Badges:   DefaultBadges(),
	}
}

func DefaultProjects() []models.Project {
	return []models.Project{
		{
			ID:            "1",
			Name:          "Helix",
			Description:   "The premier decentralized exchange on Injective",
			LogoURL:       unsplash + "photo-1639762681485-074b7f938ba0?w=200&h=200&fit=crop",
			Website:       "https://helixapp.com",
			TwitterHandle: "@helixapp",
			CreatedBy:     "inj1...",
		},
		{
			ID:            "2",
			Name:          "Mito Finance",
			Description:   "Advanced DeFi vaults and strategies",
			LogoURL:       unsplash + "photo-1621761191319-c6fb62004040?w=200&h=200&fit=crop",
			Website:       "https://mito.fi",
			TwitterHandle: "@mitofinance",
			CreatedBy:     "inj2...",
		},
		{
			ID:            "3",
			Name:          "Hydro Protocol",
			Description:   "Liquid staking on Injective",
			LogoURL:       unsplash + "photo-1559827260-dc66d52bef19?w=200&h=200&fit=crop",
			Website:       "https://hydro.com",
			TwitterHandle: "@hydroprotocol",
			CreatedBy:     "inj3...",
		},
	}
}

func quest(id, projectID, title, short, detailed string, xp int64, d models.QuestDifficulty, t models.QuestType, link, image string) models.Quest {
	return models.Quest{
		ID:                  id,
		ProjectID:           projectID,
		Title:               title,
		ShortDescription:    short,
		DetailedDescription: detailed,
		XPReward:            xp,
		Difficulty:          d,
		QuestType:           t,
		Status:              models.QuestStatusActive,
		ExternalLink:        link,
		ImageURL:            unsplash + image + "?w=800&h=400&fit=crop",
	}
}

func DefaultQuests() []models.Quest {
	return []models.Quest{
		quest("1", "1", "Make Your First Swap on Helix",
			"Complete your first token swap on Helix DEX",
			"Navigate to Helix DEX and complete a token swap of any amount. This will help you understand how decentralized trading works on Injective.",
			100, models.DifficultyEasy, models.QuestTypeOnchain,
			"https://helixapp.com", "photo-1611974789855-9c2a0a7236a3"),
		quest("2", "1", "Provide Liquidity on Helix",
			"Add liquidity to any trading pair",
			"Become a liquidity provider by adding tokens to a liquidity pool. Earn trading fees while supporting the ecosystem.",
			250, models.DifficultyMedium, models.QuestTypeOnchain,
			"https://helixapp.com/pools", "photo-1642790106117-e829e14a795f"),
		quest("3", "2", "Deposit into a Mito Vault",
			"Start earning with automated strategies",
			"Deposit assets into any Mito vault to start earning yield through automated DeFi strategies.",
			200, models.DifficultyMedium, models.QuestTypeOnchain,
			"https://mito.fi", "photo-1621761191319-c6fb62004040"),
		quest("4", "3", "Stake INJ with Hydro",
			"Liquid stake your INJ tokens",
			"Stake your INJ tokens through Hydro Protocol and receive liquid staking tokens that can be used across DeFi.",
			300, models.DifficultyMedium, models.QuestTypeOnchain,
			"https://hydro.com", "photo-1559827260-dc66d52bef19"),
		quest("5", "1", "Follow Helix on Twitter",
			"Join the Helix community",
			"Follow @helixapp on Twitter to stay updated with the latest features and announcements.",
			50, models.DifficultyEasy, models.QuestTypeOffchain,
			"https://twitter.com/helixapp", "photo-1611605698335-8b1569810432"),
		quest("6", "2", "Complete the Mito Tutorial",
			"Learn about vault strategies",
			"Go through the interactive tutorial on Mito Finance to understand how automated vault strategies work.",
			75, models.DifficultyEasy, models.QuestTypeOffchain,
			"https://mito.fi/tutorial", "photo-1633356122544-f134324a6cee"),
		quest("7", "3", "Participate in Hydro Governance",
			"Vote on a governance proposal",
			"Exercise your voting rights by participating in Hydro Protocol governance. Vote on any active proposal.",
			150, models.DifficultyHard, models.QuestTypeHybrid,
			"https://hydro.com/governance", "photo-1540910419892-4a36d2c3266c"),
		quest("8", "1", "Trade 10+ Times on Helix",
			"Become an active trader",
			"Complete at least 10 trades on Helix DEX to demonstrate your trading activity and commitment.",
			500, models.DifficultyHard, models.QuestTypeOnchain,
			"https://helixapp.com", "photo-1642790106117-e829e14a795f"),
	}
}

// DefaultBadges is the XP ladder, ordered by RequiredXP.
func DefaultBadges() []models.Badge {
	badge := func(id, name string, xp int64, image string) models.Badge {
		return models.Badge{
			ID:          id,
			Name:        name,
			Description: "Reached " + strconv.FormatInt(xp, 10) + " XP",
			RequiredXP:  xp,
			ImageURL:    unsplash + image + "?w=200&h=200&fit=crop",
		}
	}
	return []models.Badge{
		badge("1", "Explorer", 100, "photo-1614680376593-902f74cf0d41"),
		badge("2", "Pathfinder", 500, "photo-1614680376408-81e91ffe3db7"),
		badge("3", "Navigator", 1000, "photo-1614680376739-414d95ff43df"),
		badge("4", "DeFi Native", 2500, "photo-1614680376573-df3480f0c6ff"),
		badge("5", "Injective OG", 5000, "photo-1614680376593-902f74cf0d41"),
	}
}

// Placeholders used when a submission carries no logo or image.
const (
	DefaultProjectLogo = unsplash + "photo-1639762681485-074b7f938ba0?w=200&h=200&fit=crop"
	DefaultQuestImage  = unsplash + "photo-1639762681485-074b7f938ba0?w=800&h=400&fit=crop"
)
