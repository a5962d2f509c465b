package records

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List trae hasta PageSize registros, más nuevos primero.
// Se respeta el orden que devuelve el CRM tal cual.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	items, err := s.repo.Search(ctx, DefaultSearchQuery())
	if err != nil {
		return nil, AsRemoteError(err)
	}
	if items == nil {
		items = []Record{}
	}
	return items, nil
}

type CreateInput struct {
	Name    string
	Bio     string
	Species string
}

// Create valida (name no vacío tras trim) y crea exactamente un registro
// con los tres campos recortados.
func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Record{}, &ValidationError{Field: PropName, Message: "Name is required."}
	}

	rec, err := s.repo.Create(ctx, Properties{
		Name:    name,
		Bio:     strings.TrimSpace(in.Bio),
		Species: strings.TrimSpace(in.Species),
	})
	if err != nil {
		return Record{}, AsRemoteError(err)
	}
	return rec, nil
}
