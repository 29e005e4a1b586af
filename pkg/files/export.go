package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/h2non/filetype"

	"github.com/inkstudio/inkstudio/pkg/provider"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	repeatDashes = regexp.MustCompile(`-+`)
)

// Slugify converts a display name to a valid filename
// Examples:
//
//	"Koi Sleeve" → "koi-sleeve"
//	"Mom's Rose!" → "mom-s-rose"
func Slugify(displayName string) string {
	slug := strings.ToLower(displayName)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = repeatDashes.ReplaceAllString(slug, "-")

	if slug == "" {
		slug = "unnamed"
	}
	return slug
}

// ExportImage decodes an inline image and writes it to the exports directory
// as <slug>.<ext>, returning the written path. Existing files are not
// overwritten; a numeric suffix is added instead.
func ExportImage(name, dataURI string) (string, error) {
	_, data, err := provider.ParseDataURI(dataURI)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return "", provider.ErrNotAnImage
	}

	dir := filepath.Join(InkStudioDir, ExportsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create exports directory: %w", err)
	}

	base := Slugify(name)
	path := filepath.Join(dir, base+"."+kind.Extension)
	for i := 2; fileExists(path); i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.%s", base, i, kind.Extension))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
