package container

import (
	"fmt"

	"pokedex/catalog/internal/client"
	"pokedex/catalog/internal/config"
	"pokedex/catalog/internal/repository"
	"pokedex/catalog/internal/store"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.PokeAPIClient
	Store      store.PageStore
	Repository repository.CatalogRepository
}

// New creates a new container with all dependencies initialized: one API
// client and one page store feeding one repository. The cache snapshot is
// loaded from disk exactly once, here.
func New(cfg *config.Config) *Container {
	apiClient := client.NewPokeAPIClient(cfg.API)

	pageStore := store.NewPageStore(cfg.Cache.CachePath())
	pageStore.LoadFromDisk()

	catalogRepo := repository.NewCatalogRepository(apiClient, pageStore, cfg.API.PageSize)

	return &Container{
		Config:     cfg,
		Client:     apiClient,
		Store:      pageStore,
		Repository: catalogRepo,
	}
}

// Close performs cleanup when shutting down. It blocks until pending cache
// writes have reached disk.
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if err := c.Store.Close(); err != nil {
		return fmt.Errorf("failed to close page store: %w", err)
	}

	log.Info("Container shut down successfully")
	return nil
}
