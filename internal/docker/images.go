package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"

	"wharf/internal/httpwire"
	"wharf/internal/logging"
)

const shortIDLength = 12

// Image is one entry of GET /images/json.
type Image struct {
	ID          string            `json:"Id"`
	ParentID    string            `json:"ParentId,omitempty"`
	RepoTags    []string          `json:"RepoTags"`
	RepoDigests []string          `json:"RepoDigests,omitempty"`
	Created     int64             `json:"Created"`
	Size        int64             `json:"Size"`
	SharedSize  int64             `json:"SharedSize,omitempty"`
	Containers  int64             `json:"Containers"`
	Labels      map[string]string `json:"Labels,omitempty"`
}

// CreatedAt returns the creation time.
func (i Image) CreatedAt() time.Time {
	return time.Unix(i.Created, 0)
}

// ShortID returns the first 12 hex characters of the image digest, the way
// the docker CLI abbreviates IDs. Non-digest IDs are truncated as is.
func (i Image) ShortID() string {
	id := i.ID
	if d, err := digest.Parse(i.ID); err == nil {
		id = d.Encoded()
	}
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// Tags returns the repo:tag references, skipping dangling placeholders.
func (i Image) Tags() []string {
	tags := make([]string, 0, len(i.RepoTags))
	for _, tag := range i.RepoTags {
		if tag == "" || tag == "<none>:<none>" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// Images lists local images. Any status other than 200 fails with
// *httpwire.StatusError without reading the body. The body is read to EOF
// as one block and decoded as a single JSON array.
func (c *Client) Images(ctx context.Context) ([]Image, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/images/json")
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer resp.Body.Close()

	if err := httpwire.ExpectStatus(resp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("list images: read body: %w", err)
	}

	images, err := decodeImages(data)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	logging.WithContext(ctx, c.logger).Debug("images listed", slog.Int("count", len(images)))
	return images, nil
}

func decodeImages(data []byte) ([]Image, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &DecodeError{Subject: "image list", Err: io.ErrUnexpectedEOF}
	}
	var images []Image
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, &DecodeError{Subject: "image list", Err: err}
	}
	return images, nil
}
