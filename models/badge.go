package models

// Badge: static catalog entry unlocked once a user's XP reaches RequiredXP.
type Badge struct {
	ID          string `gorm:"primaryKey" json:"id" yaml:"id"`
	Name        string `gorm:"not null" json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	RequiredXP  int64  `gorm:"not null;index" json:"required_xp" yaml:"required_xp"`
	ImageURL    string `gorm:"type:text" json:"image_url" yaml:"image_url"`
}
