package provider

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/h2non/filetype"
)

var (
	ErrInvalidDataURI = errors.New("invalid base64 image format")
	ErrNotAnImage     = errors.New("file is not a recognised image")
)

var dataURIPattern = regexp.MustCompile(`^data:(image/[^;,]+);base64,(.+)$`)

// ParseDataURI splits an image data URI into its MIME type and decoded bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	m := dataURIPattern.FindStringSubmatch(strings.TrimSpace(uri))
	if m == nil {
		return "", nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return m[1], data, nil
}

// EncodeDataURI builds a base64 data URI.
func EncodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// IsRemoteRef reports whether ref is already usable as an image reference
// without reading the filesystem.
func IsRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://")
}

// LoadImageRef turns a user supplied base image into a layer image reference.
// Data URIs and URLs pass through; local files are sniffed and inlined as a
// data URI.
func LoadImageRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("no image given")
	}
	if IsRemoteRef(ref) {
		return ref, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", ref, err)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return "", fmt.Errorf("%s: %w", ref, ErrNotAnImage)
	}

	return EncodeDataURI(kind.MIME.Value, data), nil
}

// placeholderPNG is a 1x1 white PNG.
const placeholderPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mP8/x8AAwMCAO+ip1sAAAAASUVORK5CYII="

// PlaceholderImage returns a tiny white PNG data URI.
func PlaceholderImage() string {
	return "data:image/png;base64," + placeholderPNG
}
