package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

// ValidateImageRef accepts data URIs, http(s) URLs and existing files.
func ValidateImageRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("image reference cannot be empty")
	}
	if strings.HasPrefix(ref, "data:") {
		_, _, err := provider.ParseDataURI(ref)
		return err
	}
	if provider.IsRemoteRef(ref) {
		return nil
	}
	return ValidateFilePath(ref)
}

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	for _, valid := range []OutputFormat{FormatText, FormatJSON, FormatYAML} {
		if OutputFormat(format) == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateStyle resolves a style name, allowing an empty value.
func ValidateStyle(style string) (models.TattooStyle, error) {
	if strings.TrimSpace(style) == "" {
		return "", nil
	}
	st, ok := models.ParseStyle(style)
	if !ok {
		names := make([]string, len(models.Styles))
		for i, s := range models.Styles {
			names[i] = string(s)
		}
		return "", fmt.Errorf("invalid style: %s (must be one of: %s)", style, strings.Join(names, ", "))
	}
	return st, nil
}

// ValidateConceptName validates a concept name
func ValidateConceptName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ErrEmptyConceptName
	}
	if len(name) > 80 {
		return models.ErrConceptNameTooLong
	}
	return nil
}
