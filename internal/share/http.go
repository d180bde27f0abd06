package share

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/skillnav/internal/pathway"
)

// APIPrefix is the route prefix of the share server.
const APIPrefix = "/api/pathways"

// HTTPResolver talks to a share server.
type HTTPResolver struct {
	base   string
	client *http.Client
}

// NewHTTPResolver creates a resolver and publisher for the share server at
// base. A nil client gets a default with a 15 second timeout.
func NewHTTPResolver(base string, client *http.Client) *HTTPResolver {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPResolver{base: strings.TrimRight(base, "/"), client: client}
}

// FetchPublic implements Resolver.
func (r *HTTPResolver) FetchPublic(ctx context.Context, id string) (*pathway.Pathway, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base+APIPrefix+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch shared pathway: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch shared pathway: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch shared pathway: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read shared pathway: %w", err)
	}
	return decode(data)
}

// PublishResponse is the body the share server returns for a publish.
type PublishResponse struct {
	ID string `json:"id"`
}

// Publish implements Publisher.
func (r *HTTPResolver) Publish(ctx context.Context, p *pathway.Pathway) (string, error) {
	_, data, err := encode(p, ShareID(p))
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+APIPrefix, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("publish pathway: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("publish pathway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("publish pathway: unexpected status %d", resp.StatusCode)
	}
	var out PublishResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode publish response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("publish pathway: server returned no id")
	}
	return out.ID, nil
}
