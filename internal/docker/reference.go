package docker

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

// NormalizeImageName validates a user-supplied image name and returns it in
// familiar form with an explicit tag or digest:
//   - "redis" -> "redis:latest"
//   - "ghcr.io/org/app" -> "ghcr.io/org/app:latest"
//   - "alpine@sha256:..." is returned unchanged
func NormalizeImageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("image name is required")
	}
	named, err := reference.ParseNormalizedNamed(name)
	if err != nil {
		return "", fmt.Errorf("invalid image name %q: %w", name, err)
	}
	if _, ok := named.(reference.Canonical); !ok {
		named = reference.TagNameOnly(named)
	}
	return reference.FamiliarString(named), nil
}
