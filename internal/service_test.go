package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ogero/ghibli-films/internal/catalog"
	"github.com/ogero/ghibli-films/pkg/ghibli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeGhibli struct {
	mutex sync.Mutex
	calls int
	films []*ghibli.Film
	err   error
	// block, when set, holds GetFilms until it is closed or the context ends.
	block chan struct{}
}

func (f *fakeGhibli) GetFilms(ctx context.Context) ([]*ghibli.Film, error) {
	f.mutex.Lock()
	f.calls++
	f.mutex.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.films, nil
}

func testFilms(n int) []*ghibli.Film {
	films := make([]*ghibli.Film, 0, n)
	for i := 1; i <= n; i++ {
		films = append(films, &ghibli.Film{
			ID:            fmt.Sprintf("00000000-0000-0000-0000-%012d", i),
			Title:         fmt.Sprintf("Film %02d", i),
			OriginalTitle: fmt.Sprintf("Original %02d", i),
			Director:      "Director",
			ReleaseDate:   fmt.Sprint(1980 + i),
		})
	}
	return films
}

func TestFilmsService_LoadSuccess(t *testing.T) {
	g := &fakeGhibli{films: testFilms(22)}
	svc := NewFilmsService(g, 6)

	assert.True(t, svc.Status().Loading)
	_, err := svc.Browse(context.Background(), catalog.Query{Page: 1})
	assert.ErrorIs(t, err, ErrNotReady)

	svc.Load(context.Background())

	st := svc.Status()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
	assert.Len(t, st.Films, 22)

	page, err := svc.Browse(context.Background(), catalog.Query{Page: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalPages)
	assert.Len(t, page.Films, 4)
}

func TestFilmsService_LoadFailure(t *testing.T) {
	g := &fakeGhibli{err: errors.New("boom")}
	svc := NewFilmsService(g, 6)

	svc.Load(context.Background())

	st := svc.Status()
	assert.False(t, st.Loading)
	assert.Equal(t, ErrLoadFailedMessage, st.Err)
	assert.Empty(t, st.Films)

	_, err := svc.Browse(context.Background(), catalog.Query{Page: 1})
	assert.ErrorIs(t, err, ErrLoadFailed)

	_, err = svc.GetFilm(context.Background(), "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestFilmsService_LoadOnce(t *testing.T) {
	g := &fakeGhibli{films: testFilms(3)}
	svc := NewFilmsService(g, 6)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Load(context.Background())
		}()
	}
	wg.Wait()
	svc.Load(context.Background())

	assert.Equal(t, 1, g.calls)
}

func TestFilmsService_LoadCanceled(t *testing.T) {
	g := &fakeGhibli{block: make(chan struct{})}
	svc := NewFilmsService(g, 6)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Load(ctx)
	}()

	cancel()
	<-done

	st := svc.Status()
	assert.False(t, st.Loading)
	assert.Equal(t, ErrLoadFailedMessage, st.Err)
}

func TestFilmsService_GetFilm(t *testing.T) {
	svc := NewFilmsService(&fakeGhibli{films: testFilms(3)}, 6)
	svc.Load(context.Background())

	film, err := svc.GetFilm(context.Background(), "00000000-0000-0000-0000-000000000002")
	require.NoError(t, err)
	assert.Equal(t, "Film 02", film.Title)

	_, err = svc.GetFilm(context.Background(), "00000000-0000-0000-0000-000000000009")
	assert.ErrorIs(t, err, ErrFilmNotFound)
}

func TestFilmsService_DefaultPageSize(t *testing.T) {
	svc := NewFilmsService(&fakeGhibli{films: testFilms(10)}, 0)
	svc.Load(context.Background())

	page, err := svc.Browse(context.Background(), catalog.Query{})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultPageSize, page.PageSize)
}
