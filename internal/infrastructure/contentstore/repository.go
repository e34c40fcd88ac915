package contentstore

import (
	"context"
	"fmt"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/domain/repositories"
)

// RepositoryStore is the authoritative accessor backed by the section repository.
type RepositoryStore struct {
	repo repositories.SectionRepository
}

func NewRepositoryStore(repo repositories.SectionRepository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

func (s *RepositoryStore) Get(ctx context.Context, name string) (content.Section, bool, error) {
	if !content.IsKnownSection(name) {
		return nil, false, nil
	}
	rec, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if rec == nil {
		return nil, false, nil
	}
	return rec.Data, true, nil
}

func (s *RepositoryStore) Set(ctx context.Context, name string, data content.Section) error {
	if err := checkSection(name); err != nil {
		return err
	}
	if _, err := s.repo.Upsert(ctx, name, data); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}
