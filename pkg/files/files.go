package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/inkstudio/inkstudio/pkg/models"
)

const (
	InkStudioDir = ".inkstudio"
	ExportsDir   = "exports"
	SettingsFile = "settings.yaml"
)

func InitProjectStructure() error {
	dirs := []string{
		InkStudioDir,
		filepath.Join(InkStudioDir, ExportsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	settingsPath := SettingsPath()
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

// SettingsPath returns the location of the project settings file.
func SettingsPath() string {
	return filepath.Join(InkStudioDir, SettingsFile)
}

// ReadSettings loads the project settings. A missing file yields the defaults;
// fields absent from the file keep their default values.
func ReadSettings() (*models.Settings, error) {
	settings := models.DefaultSettings()

	content, err := os.ReadFile(SettingsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(InkStudioDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(SettingsPath(), content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
