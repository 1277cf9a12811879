package models

// Project is a partner publishing quests. CreatedBy is the wallet address that submitted it.
type Project struct {
	ID            string `gorm:"primaryKey" json:"id" yaml:"id"`
	Name          string `gorm:"not null" json:"name" yaml:"name"`
	Description   string `gorm:"type:text" json:"description" yaml:"description"`
	LogoURL       string `gorm:"type:text" json:"logo_url" yaml:"logo_url"`
	Website       string `json:"website" yaml:"website"`
	TwitterHandle string `json:"twitter_handle" yaml:"twitter_handle"`
	CreatedBy     string `gorm:"index" json:"created_by" yaml:"created_by"`
}
