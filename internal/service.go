package internal

import (
	"context"
	"errors"
	"sync"

	"github.com/ogero/ghibli-films/internal/catalog"
	"github.com/ogero/ghibli-films/internal/common"
	"github.com/ogero/ghibli-films/pkg/ghibli"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrLoadFailedMessage is the only failure text ever shown to users.
const ErrLoadFailedMessage = common.LoadFailedMessage

var (
	// ErrNotReady is returned while the films are still being fetched.
	ErrNotReady = errors.New("films are still loading")
	// ErrLoadFailed is returned after the single fetch failed.
	ErrLoadFailed = errors.New(ErrLoadFailedMessage)
	// ErrFilmNotFound is returned when no fetched film has the requested ID.
	ErrFilmNotFound = errors.New("film not found")
)

// Status is a snapshot of the films store.
type Status struct {
	// Loading is true until the single fetch settles, whatever its outcome.
	Loading bool
	// Err is the user-facing message after a failed fetch, empty otherwise.
	Err string
	// Films is the fetched collection, in fetch order.
	Films []*ghibli.Film
}

// FilmsService holds the fetched films and derives grid pages from them.
type FilmsService interface {
	// Load performs the one and only fetch. Calls after the first are no-ops.
	Load(ctx context.Context)
	// Status returns the current load status.
	Status() Status
	// Browse derives the grid page for q.
	Browse(ctx context.Context, q catalog.Query) (*catalog.Page, error)
	// GetFilm returns a fetched film by its ID.
	GetFilm(ctx context.Context, id string) (*ghibli.Film, error)
}

type filmsService struct {
	ghibli   ghibli.Ghibli
	pageSize int

	once  sync.Once
	mutex sync.RWMutex
	state Status
}

// NewFilmsService creates a FilmsService in the loading state. Nothing is fetched until Load.
func NewFilmsService(ghibli ghibli.Ghibli, pageSize int) FilmsService {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &filmsService{
		ghibli:   ghibli,
		pageSize: pageSize,
		state:    Status{Loading: true},
	}
}

// Load performs the one and only fetch. Calls after the first are no-ops.
func (s *filmsService) Load(ctx context.Context) {
	s.once.Do(func() {
		ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer("").Start(ctx, "internal.FilmsService.Load")
		defer span.End()

		films, err := s.ghibli.GetFilms(ctx)

		s.mutex.Lock()
		defer s.mutex.Unlock()

		s.state.Loading = false
		if err != nil {
			common.Log.ErrorContext(ctx, "Failed to ghibli.Ghibli.GetFilms", "err", err)
			common.FilmsLoadTotalIncr(ctx, "error")
			span.RecordError(err)
			s.state.Err = ErrLoadFailedMessage
			return
		}

		common.Log.InfoContext(ctx, "Loaded films", "count", len(films))
		common.FilmsLoadTotalIncr(ctx, "ok")
		span.SetAttributes(attribute.Int("films.count", len(films)))
		s.state.Films = films
	})
}

// Status returns the current load status.
func (s *filmsService) Status() Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

func (s *filmsService) ready() ([]*ghibli.Film, error) {
	st := s.Status()
	switch {
	case st.Loading:
		return nil, ErrNotReady
	case st.Err != "":
		return nil, ErrLoadFailed
	}
	return st.Films, nil
}

// Browse derives the grid page for q.
func (s *filmsService) Browse(ctx context.Context, q catalog.Query) (*catalog.Page, error) {

	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer("").Start(ctx, "internal.FilmsService.Browse")
	defer span.End()

	films, err := s.ready()
	if err != nil {
		return nil, err
	}

	page := catalog.Browse(films, q, s.pageSize)
	common.CatalogViewsTotalIncr(ctx, string(q.Sort))
	span.SetAttributes(
		attribute.String("catalog.search", q.Search),
		attribute.String("catalog.sort", string(q.Sort)),
		attribute.Int("catalog.page", page.CurrentPage),
		attribute.Int("catalog.total-films", page.TotalFilms),
	)

	return page, nil
}

// GetFilm returns a fetched film by its ID.
func (s *filmsService) GetFilm(ctx context.Context, id string) (*ghibli.Film, error) {
	films, err := s.ready()
	if err != nil {
		return nil, err
	}

	for _, f := range films {
		if f.ID == id {
			return f, nil
		}
	}

	return nil, ErrFilmNotFound
}
