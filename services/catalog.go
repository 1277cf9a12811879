// services/catalog.go
package services

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"questchain/models"
)

// Catalog is the static data a store starts from.
type Catalog struct {
	Projects []models.Project `json:"projects" yaml:"projects"`
	Quests   []models.Quest   `json:"quests" yaml:"quests"`
	Badges   []models.Badge   `json:"badges" yaml:"badges"`
}

// CatalogSource loads a catalog from wherever it is kept.
type CatalogSource interface {
	Load(ctx context.Context) (*Catalog, error)
}

// SeedCatalog serves the built-in launch catalog.
type SeedCatalog struct{}

func (SeedCatalog) Load(context.Context) (*Catalog, error) {
	return DefaultCatalog(), nil
}

// FileCatalog reads a YAML catalog. Badges fall back to the default ladder when the file has none.
type FileCatalog struct {
	Path string
}

func (f FileCatalog) Load(context.Context) (*Catalog, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", f.Path, err)
	}
	for i := range c.Quests {
		if c.Quests[i].Status == "" {
			c.Quests[i].Status = models.QuestStatusActive
		}
	}
	if len(c.Badges) == 0 {
		c.Badges = DefaultBadges()
	}
	return &c, nil
}

// DBCatalog reads a partner-maintained catalog from Postgres. It only ever reads.
type DBCatalog struct {
	DB *gorm.DB
}

func (d DBCatalog) Load(ctx context.Context) (*Catalog, error) {
	db := d.DB.WithContext(ctx)
	var c Catalog
	if err := db.Order("id").Find(&c.Projects).Error; err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	if err := db.Order("id").Find(&c.Quests).Error; err != nil {
		return nil, fmt.Errorf("load quests: %w", err)
	}
	if err := db.Order("required_xp").Find(&c.Badges).Error; err != nil {
		return nil, fmt.Errorf("load badges: %w", err)
	}
	if len(c.Badges) == 0 {
		c.Badges = DefaultBadges()
	}
	return &c, nil
}

// MigrateCatalog creates the catalog tables. Used by local setups and tests.
func MigrateCatalog(db *gorm.DB) error {
	return db.AutoMigrate(&models.Project{}, &models.Quest{}, &models.Badge{})
}
