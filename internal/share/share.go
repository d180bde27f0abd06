// Package share publishes pathways for read-only access by identifier and
// resolves shared identifiers back into pathways.
package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/store"
)

// ErrNotFound is returned when no pathway is published under an id.
var ErrNotFound = errors.New("shared pathway not found")

// Resolver fetches publicly shared pathways.
type Resolver interface {
	FetchPublic(ctx context.Context, id string) (*pathway.Pathway, error)
}

// Publisher makes a pathway publicly readable and returns its share id.
type Publisher interface {
	Publish(ctx context.Context, p *pathway.Pathway) (string, error)
}

// StoreResolver serves shared pathways from the local database.
type StoreResolver struct {
	repo store.SharedPathwayRepo
}

// NewStoreResolver creates a resolver and publisher over repo.
func NewStoreResolver(repo store.SharedPathwayRepo) *StoreResolver {
	return &StoreResolver{repo: repo}
}

// FetchPublic implements Resolver.
func (r *StoreResolver) FetchPublic(ctx context.Context, id string) (*pathway.Pathway, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	sp, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch shared pathway: %w", err)
	}
	if sp == nil {
		return nil, ErrNotFound
	}
	return decode(sp.Data)
}

// Publish implements Publisher. The share id is the pathway id, so
// publishing the same pathway twice yields the same link. Published content
// is never replaced: when the id already holds different content, p is
// published under a fresh id instead.
func (r *StoreResolver) Publish(ctx context.Context, p *pathway.Pathway) (string, error) {
	id, data, err := encode(p, ShareID(p))
	if err != nil {
		return "", err
	}
	err = r.repo.Publish(ctx, id, data)
	if errors.Is(err, store.ErrConflict) {
		if id, data, err = encode(p, pathway.NewID()); err != nil {
			return "", err
		}
		err = r.repo.Publish(ctx, id, data)
	}
	if err != nil {
		return "", fmt.Errorf("publish pathway: %w", err)
	}
	return id, nil
}

// ShareID returns the id p is published under, assigning a fresh one when
// p has none.
func ShareID(p *pathway.Pathway) string {
	if p.ID != "" {
		return p.ID
	}
	return pathway.NewID()
}

func encode(p *pathway.Pathway, id string) (string, []byte, error) {
	if p == nil {
		return "", nil, fmt.Errorf("publish pathway: nothing to publish")
	}
	if err := p.Validate(); err != nil {
		return "", nil, fmt.Errorf("publish pathway: %w", err)
	}
	cp := *p
	cp.ID = id
	data, err := json.Marshal(&cp)
	if err != nil {
		return "", nil, fmt.Errorf("encode pathway: %w", err)
	}
	return cp.ID, data, nil
}

func decode(data []byte) (*pathway.Pathway, error) {
	var p pathway.Pathway
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode shared pathway: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("shared pathway: %w", err)
	}
	return &p, nil
}
