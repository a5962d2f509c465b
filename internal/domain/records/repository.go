package records

import "context"

// Repository es el puerto hacia el CRM remoto (única fuente de verdad).
type Repository interface {
	Search(ctx context.Context, q SearchQuery) ([]Record, error)
	Create(ctx context.Context, p Properties) (Record, error)
}
