package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/inkstudio/inkstudio/pkg/concepts"
	"github.com/inkstudio/inkstudio/pkg/files"
	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a new command context
func NewCommandContext() (*CommandContext, error) {
	return &CommandContext{
		ProjectPath: files.InkStudioDir,
	}, nil
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no .inkstudio directory found. Run 'inkstudio init' first")
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error.
// Environment overrides are applied either way.
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		PrintWarning("Using default settings: %v", err)
		settings = models.DefaultSettings()
	}
	files.ApplyEnv(settings)

	c.Settings = settings
	return settings
}

// Provider builds the element provider selected by the settings.
func (c *CommandContext) Provider() provider.ElementProvider {
	settings := c.LoadSettingsWithDefault()
	if settings.Provider.Offline {
		return provider.NewStaticProvider("")
	}
	return provider.NewHTTPProvider(settings.Provider, files.APIKey(settings))
}

// ConceptStore is an open concept repository and its database.
type ConceptStore struct {
	*concepts.Repository
	db *sql.DB
}

// Close closes the underlying database.
func (s *ConceptStore) Close() error {
	return s.db.Close()
}

// OpenConcepts opens and initializes the concept database.
func (c *CommandContext) OpenConcepts(ctx context.Context) (*ConceptStore, error) {
	settings := c.LoadSettingsWithDefault()
	db, err := concepts.OpenSQLite(settings.Storage.ConceptsDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open concepts database: %w", err)
	}

	repo := concepts.New(db)
	if err := repo.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &ConceptStore{Repository: repo, db: db}, nil
}

// ResolveBaseImage returns the base image for an editing session, either from
// a saved concept or from an image argument.
func (c *CommandContext) ResolveBaseImage(ctx context.Context, imageRef, conceptID string) (string, error) {
	if conceptID != "" {
		store, err := c.OpenConcepts(ctx)
		if err != nil {
			return "", err
		}
		defer store.Close()

		concept, err := store.Get(ctx, conceptID)
		if err != nil {
			return "", fmt.Errorf("failed to load concept %s: %w", conceptID, err)
		}
		return concept.Image, nil
	}

	if err := ValidateImageRef(imageRef); err != nil {
		return "", err
	}
	return provider.LoadImageRef(imageRef)
}
