package ghibli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ogero/ghibli-films/pkg/transport"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultEndpoint is the public films collection.
const DefaultEndpoint = "https://ghibliapi.vercel.app/films"

// maxResponseSize caps the films payload. The full collection is well under 100KiB.
const maxResponseSize = 8 << 20

// ErrUnexpectedStatus is returned when the endpoint answers with anything but 200.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Film is a single film record as served by the films endpoint.
type Film struct {
	ID                     string `json:"id"`
	Title                  string `json:"title"`
	OriginalTitle          string `json:"original_title"`
	OriginalTitleRomanised string `json:"original_title_romanised,omitempty"`
	Image                  string `json:"image"`
	MovieBanner            string `json:"movie_banner,omitempty"`
	Description            string `json:"description"`
	Director               string `json:"director"`
	Producer               string `json:"producer,omitempty"`
	ReleaseDate            string `json:"release_date"`
	RunningTime            string `json:"running_time,omitempty"`
	RTScore                string `json:"rt_score,omitempty"`
}

// Ghibli defines the methods to interact with the films endpoint.
type Ghibli interface {
	// GetFilms fetches the whole films collection in a single request.
	GetFilms(ctx context.Context) ([]*Film, error)
}

type ghibli struct {
	httpClient *http.Client
	endpoint   string
}

// NewGhibli creates a client for the films collection served at endpoint.
// The client has no timeout of its own: the request lives as long as the context passed to GetFilms.
func NewGhibli(endpoint string) Ghibli {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4

	rt := transport.NewHeadersRoundTripper(otelhttp.NewTransport(t),
		transport.WithAccept("application/json"),
		transport.WithUserAgent("ghibli-films/1.0 (+https://github.com/ogero/ghibli-films)"),
	)

	return &ghibli{
		httpClient: &http.Client{
			Transport: rt,
		},
		endpoint: endpoint,
	}
}

// GetFilms fetches the whole films collection in a single request.
func (g *ghibli) GetFilms(ctx context.Context) ([]*Film, error) {

	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer("").Start(ctx, "ghibli.Ghibli.GetFilms")
	defer span.End()
	span.SetAttributes(attribute.String("ghibli.endpoint", g.endpoint))

	films, err := g.getFilms(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("ghibli.films-count", len(films)))

	return films, nil
}

func (g *ghibli) getFilms(ctx context.Context) ([]*Film, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to http.NewRequestWithContext: %w", err)
	}

	res, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to http.Client.Do: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	var films []*Film
	err = json.NewDecoder(newLimitedReader(res.Body, maxResponseSize)).Decode(&films)
	if err != nil {
		return nil, fmt.Errorf("failed to json.Decoder.Decode: %w", err)
	}

	// A literal null decodes into a nil slice; the collection is simply empty.
	if films == nil {
		films = []*Film{}
	}

	return films, nil
}
