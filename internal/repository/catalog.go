package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pokedex/catalog/internal/client"
	"pokedex/catalog/internal/domain"
	"pokedex/catalog/internal/store"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize matches the upstream API default page length.
const DefaultPageSize = 20

// CatalogRepository is the single entry point for catalog data. Page reads go
// through the store first and fall back to the network; searches try an exact
// server lookup before scanning whatever is cached locally.
type CatalogRepository interface {
	FetchPage(ctx context.Context, limit, offset int) ([]domain.Pokemon, error)
	Search(ctx context.Context, query string) ([]domain.Pokemon, error)
	FetchDetail(ctx context.Context, idOrName string) (*domain.PokemonDetail, error)
	TotalCount() (int, bool)
	ClearCache()
}

type catalogRepository struct {
	client   client.PokeAPIClient
	store    store.PageStore
	pageSize int
}

// NewCatalogRepository wires the repository over one API client and one page
// store. pageSize controls the proactive fetches that seed an empty cache
// before a local search scan.
func NewCatalogRepository(apiClient client.PokeAPIClient, pageStore store.PageStore, pageSize int) CatalogRepository {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &catalogRepository{
		client:   apiClient,
		store:    pageStore,
		pageSize: pageSize,
	}
}

func (r *catalogRepository) FetchPage(ctx context.Context, limit, offset int) ([]domain.Pokemon, error) {
	if items, ok := r.store.GetPage(offset); ok {
		log.Debugf("Cache hit for offset %d (%d records)", offset, len(items))
		return items, nil
	}

	page, err := r.client.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page at offset %d: %w", offset, err)
	}

	items := make([]domain.Pokemon, 0, len(page.Results))
	for _, result := range page.Results {
		items = append(items, result.ToPokemon())
	}
	r.store.PutPage(offset, items, &page.Count)

	return items, nil
}

func (r *catalogRepository) Search(ctx context.Context, query string) ([]domain.Pokemon, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []domain.Pokemon{}, nil
	}

	// Exact lookup first: the server resolves it against the whole catalog,
	// not just what happens to be cached. Numeric queries address by id,
	// everything else by (lowercased) name.
	lookup := strings.ToLower(q)
	if number, err := strconv.Atoi(q); err == nil {
		lookup = strconv.Itoa(number)
	}

	detail, err := r.client.Detail(ctx, lookup)
	switch {
	case err == nil:
		return []domain.Pokemon{detail.ToPokemon()}, nil
	case client.IsNotFound(err):
		log.Debugf("No exact match for %q, scanning cached records", q)
	default:
		return nil, fmt.Errorf("search for %q failed: %w", q, err)
	}

	// Substring scan over everything fetched so far. An empty cache is
	// seeded with the first two pages so the scan has something to chew on.
	items := r.store.AllItems()
	if len(items) == 0 {
		if err := r.seedCache(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed cache for search %q: %w", q, err)
		}
		items = r.store.AllItems()
	}

	return filterRecords(items, q), nil
}

// FetchDetail is a passthrough to the API. Details are not cached.
func (r *catalogRepository) FetchDetail(ctx context.Context, idOrName string) (*domain.PokemonDetail, error) {
	detail, err := r.client.Detail(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for %q: %w", idOrName, err)
	}
	return detail, nil
}

func (r *catalogRepository) TotalCount() (int, bool) {
	return r.store.TotalCount()
}

func (r *catalogRepository) ClearCache() {
	r.store.Clear()
}

func (r *catalogRepository) seedCache(ctx context.Context) error {
	log.Debugf("Seeding cache with pages at offsets 0 and %d", r.pageSize)

	g, gctx := errgroup.WithContext(ctx)
	for _, offset := range []int{0, r.pageSize} {
		g.Go(func() error {
			_, err := r.FetchPage(gctx, r.pageSize, offset)
			return err
		})
	}
	return g.Wait()
}

// filterRecords keeps records whose display name contains the query
// (case-insensitive) or whose number contains it as a decimal substring.
func filterRecords(items []domain.Pokemon, query string) []domain.Pokemon {
	needle := strings.ToLower(query)

	matched := make([]domain.Pokemon, 0)
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.DisplayName), needle) {
			matched = append(matched, p)
			continue
		}
		if p.Number != nil && strings.Contains(strconv.Itoa(*p.Number), query) {
			matched = append(matched, p)
		}
	}
	return matched
}
