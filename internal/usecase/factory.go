package usecase

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/random"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/rps"
)

type seeder interface {
	Uint64() uint64
}

// SessionFactory builds sessions that share a catalog but own their random source,
// so sessions on different connections never share generator state.
type SessionFactory struct {
	logger  *slog.Logger
	catalog *entity.Catalog

	mu    sync.Mutex
	seeds seeder
}

func NewSessionFactory(logger *slog.Logger, catalog *entity.Catalog, seeds seeder) *SessionFactory {
	return &SessionFactory{
		logger:  logger,
		catalog: catalog,
		seeds:   seeds,
	}
}

func (that *SessionFactory) Catalog() *entity.Catalog {
	return that.catalog
}

func (that *SessionFactory) NewSession(presenters ...Presenter) *Session {
	that.mu.Lock()
	seed := that.seeds.Uint64()
	that.mu.Unlock()

	engine := rps.NewEngine(that.catalog, random.NewSource(seed))

	return NewSession(that.logger, engine, presenters...)
}
