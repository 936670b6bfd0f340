package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ogero/ghibli-films/frontend"
	"github.com/ogero/ghibli-films/internal/catalog"
	"github.com/ogero/ghibli-films/internal/common"
	"github.com/ogero/ghibli-films/pkg/ghibli"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// App represents the main application structure that holds the films service and the parsed templates.
type App struct {
	FilmsService FilmsService
	PublicHost   string

	templates *template.Template
	static    fs.FS
}

type sortOption struct {
	Key      catalog.SortKey
	Label    string
	Selected bool
}

type indexData struct {
	Loading     bool
	Error       string
	Search      string
	Sort        string
	SortOptions []sortOption
	Page        *catalog.Page
	Selected    *ghibli.Film
}

/*
NewApp creates a new instance of the App struct.

Parameters:
  - filmsService: The service holding the fetched films.
  - publicHost: The public base URL of the site.

Returns:
  - A pointer to the newly created App instance, or an error if the embedded templates are broken.
*/
func NewApp(filmsService FilmsService, publicHost string) (*App, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"pageURL": pageURL,
		"filmURL": filmURL,
	}).ParseFS(frontend.Assets, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to template.ParseFS: %w", err)
	}

	static, err := fs.Sub(frontend.Assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to fs.Sub: %w", err)
	}

	return &App{
		FilmsService: filmsService,
		PublicHost:   publicHost,
		templates:    templates,
		static:       static,
	}, nil
}

// StaticHandler serves the embedded stylesheet and other assets.
func (a *App) StaticHandler() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(a.static)))
}

// HealthHandler reports liveness. It does not depend on the films having loaded.
func (a *App) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

/*
IndexHandler renders the films grid.

Query parameters q, sort and page shape the grid; film opens the detail modal.
While the films are loading the page refreshes itself; after a failed load only the error message is shown.
*/
func (a *App) IndexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	common.Log.DebugContext(ctx, "IndexHandler")

	q, err := parseQuery(r)
	if err != nil {
		// A hand-edited URL should not break the page: fall back to the defaults.
		common.Log.WarnContext(ctx, "Failed to parseQuery", "err", err)
		span.RecordError(err)
		q = catalog.Query{Search: r.URL.Query().Get("q"), Page: 1}
	}
	span.SetAttributes(attribute.String("params.q", q.Search), attribute.String("params.sort", string(q.Sort)))

	data := indexData{
		Search:      q.Search,
		Sort:        string(q.Sort),
		SortOptions: sortOptions(q.Sort),
	}

	page, err := a.FilmsService.Browse(ctx, q)
	switch {
	case errors.Is(err, ErrNotReady):
		data.Loading = true
	case errors.Is(err, ErrLoadFailed):
		data.Error = ErrLoadFailedMessage
	case err != nil:
		common.Log.ErrorContext(ctx, "Failed to FilmsService.Browse", "err", err)
		span.RecordError(err)
		data.Error = ErrLoadFailedMessage
	default:
		data.Page = page
	}

	if filmID := r.URL.Query().Get("film"); filmID != "" && data.Page != nil {
		film, err := a.FilmsService.GetFilm(ctx, filmID)
		if err != nil {
			common.Log.WarnContext(ctx, "Failed to FilmsService.GetFilm", "err", err, "id", filmID)
			span.RecordError(err)
		} else {
			data.Selected = film
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if err := a.templates.ExecuteTemplate(w, "index", data); err != nil {
		common.Log.ErrorContext(ctx, "Failed to write response", "err", err)
		span.RecordError(err)
		return
	}
}

/*
FilmsHandler serves the derived grid page as JSON.

It answers 503 while the films are loading and 502 after a failed load.
*/
func (a *App) FilmsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	common.Log.DebugContext(ctx, "FilmsHandler")

	q, err := parseQuery(r)
	if err != nil {
		common.Log.WarnContext(ctx, "Failed to parseQuery", "err", err)
		span.RecordError(err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := a.FilmsService.Browse(ctx, q)
	if err != nil {
		a.writeServiceError(w, r, "Failed to FilmsService.Browse", err)
		return
	}

	writeJSON(w, r, http.StatusOK, page)
}

// FilmHandler serves a single film as JSON.
func (a *App) FilmHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)

	common.Log.DebugContext(ctx, "FilmHandler")

	paramsID := chi.URLParam(r, "id")
	if err := common.ValidateFilmID(paramsID); err != nil {
		common.Log.WarnContext(ctx, "Failed to common.ValidateFilmID", "err", err)
		span.RecordError(err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.String("param.id", paramsID))

	film, err := a.FilmsService.GetFilm(ctx, paramsID)
	if err != nil {
		a.writeServiceError(w, r, "Failed to FilmsService.GetFilm", err)
		return
	}

	writeJSON(w, r, http.StatusOK, film)
}

func (a *App) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)

	switch {
	case errors.Is(err, ErrNotReady):
		common.Log.InfoContext(ctx, msg, "err", err)
		w.Header().Set("Retry-After", "2")
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ErrLoadFailed):
		common.Log.WarnContext(ctx, msg, "err", err)
		writeJSONError(w, http.StatusBadGateway, ErrLoadFailedMessage)
	case errors.Is(err, ErrFilmNotFound):
		common.Log.WarnContext(ctx, msg, "err", err)
		writeJSONError(w, http.StatusNotFound, err.Error())
	default:
		common.Log.ErrorContext(ctx, msg, "err", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseQuery(r *http.Request) (catalog.Query, error) {
	values := r.URL.Query()

	sortKey := values.Get("sort")
	if err := common.ValidateSortKey(sortKey); err != nil {
		return catalog.Query{}, err
	}

	page, err := common.ValidatePage(values.Get("page"))
	if err != nil {
		return catalog.Query{}, err
	}

	return catalog.Query{
		Search: values.Get("q"),
		Sort:   catalog.SortKey(sortKey),
		Page:   page,
	}, nil
}

func sortOptions(selected catalog.SortKey) []sortOption {
	options := make([]sortOption, 0, len(catalog.SortKeys))
	for _, k := range catalog.SortKeys {
		options = append(options, sortOption{Key: k, Label: k.Label(), Selected: k == selected})
	}
	return options
}

func gridValues(p *catalog.Page, page int) url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("q", p.Search)
	}
	if p.Sort != "" {
		v.Set("sort", string(p.Sort))
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

// pageURL links to another page of the same grid, closing any open modal.
func pageURL(p *catalog.Page, page int) string {
	if v := gridValues(p, page); len(v) > 0 {
		return "/?" + v.Encode()
	}
	return "/"
}

// filmURL links to the current grid with the film's modal open.
func filmURL(p *catalog.Page, id string) string {
	v := gridValues(p, p.CurrentPage)
	v.Set("film", id)
	return "/?" + v.Encode()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx := r.Context()
		common.Log.ErrorContext(ctx, "Failed to write response", "err", err)
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
