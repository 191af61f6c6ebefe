package studio

import (
	"context"
	"sort"
)

// Catalog is the read-only studio lookup used by the booking engines.
type Catalog interface {
	FindByIDs(ctx context.Context, ids []string) ([]Studio, error)
	List(ctx context.Context) ([]Studio, error)
}

// Resolve fetches the studios for the given ids in one batched lookup and
// returns them keyed by id. Duplicate ids are allowed (several slots may
// reference the same studio). If any id is missing from the catalog the
// whole call fails with an UnknownStudiosError naming every missing id.
func Resolve(ctx context.Context, catalog Catalog, ids []string) (map[string]Studio, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	studios, err := catalog.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Studio, len(studios))
	for _, s := range studios {
		byID[s.ID] = s
	}

	var missing []string
	for _, id := range unique {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &UnknownStudiosError{IDs: missing}
	}

	return byID, nil
}
