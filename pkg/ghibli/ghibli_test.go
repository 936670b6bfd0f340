package ghibli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filmsJSON = `[
  {
    "id": "2baf70d1-42bb-4437-b551-e5fed5a87abe",
    "title": "Castle in the Sky",
    "original_title": "天空の城ラピュタ",
    "original_title_romanised": "Tenkū no shiro Rapyuta",
    "image": "https://image.tmdb.org/t/p/w600_and_h900_bestv2/npOnzAbLh6VOIu3naU5QaEcTepo.jpg",
    "description": "The orphan Sheeta inherited a mysterious crystal that links her to the mythical sky-kingdom of Laputa.",
    "director": "Hayao Miyazaki",
    "producer": "Isao Takahata",
    "release_date": "1986",
    "running_time": "124",
    "rt_score": "95",
    "people": ["https://ghibliapi.vercel.app/people/598f7048-74ff-41e0-92ef-87dc1ad980a9"]
  },
  {
    "id": "12cfb892-aac0-4c5b-94af-521852e46d6a",
    "title": "Grave of the Fireflies",
    "original_title": "火垂るの墓",
    "image": "https://image.tmdb.org/t/p/w600_and_h900_bestv2/qG3RYlIVpTYclR9TYIsy8p7m7AT.jpg",
    "description": "In the latter part of World War II, a boy and his sister, orphaned when their mother is killed in the firebombing of Tokyo, are left to survive on their own.",
    "director": "Isao Takahata",
    "release_date": "1988"
  }
]`

func newTestGhibli(url string) *ghibli {
	return &ghibli{
		httpClient: &http.Client{},
		endpoint:   url,
	}
}

func TestGetFilms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/films" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(filmsJSON))
	}))
	defer server.Close()

	films, err := newTestGhibli(server.URL + "/films").GetFilms(context.Background())
	require.NoError(t, err)
	require.Len(t, films, 2)

	assert.Equal(t, "2baf70d1-42bb-4437-b551-e5fed5a87abe", films[0].ID)
	assert.Equal(t, "Castle in the Sky", films[0].Title)
	assert.Equal(t, "天空の城ラピュタ", films[0].OriginalTitle)
	assert.Equal(t, "Hayao Miyazaki", films[0].Director)
	assert.Equal(t, "1986", films[0].ReleaseDate)
	assert.Equal(t, "95", films[0].RTScore)
	assert.Equal(t, "Isao Takahata", films[1].Director)
	assert.Empty(t, films[1].RunningTime)
}

func TestGetFilms_SendsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "ghibli-films")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	films, err := NewGhibli(server.URL).GetFilms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestGetFilms_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"`))
			},
		},
		{
			name: "object",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"x"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			films, err := newTestGhibli(server.URL).GetFilms(context.Background())
			assert.Error(t, err)
			assert.Nil(t, films)
		})
	}
}

func TestGetFilms_StatusErrorIsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestGhibli(server.URL).GetFilms(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.ErrorContains(t, err, "404")
}

func TestGetFilms_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestGhibli(url).GetFilms(context.Background())
	assert.Error(t, err)
}

func TestGetFilms_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGhibli(server.URL).GetFilms(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
