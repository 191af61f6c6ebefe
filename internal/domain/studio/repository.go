package studio

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

// Repository handles studio database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new studio repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// FindByIDs returns the studios matching the given ids. Ids without a
// matching row are simply absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]Studio, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT * FROM studios WHERE id = ANY($1)`
	var studios []Studio
	err := r.db.SelectContext(ctx, &studios, query, pq.Array(ids))
	return studios, err
}

// List returns all studios ordered by id.
func (r *Repository) List(ctx context.Context) ([]Studio, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT * FROM studios ORDER BY id`
	var studios []Studio
	err := r.db.SelectContext(ctx, &studios, query)
	return studios, err
}
