package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pokedex/catalog/internal/config"
	"pokedex/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// PokeAPIClient performs exactly one HTTP GET per call and decodes the JSON
// response. Caching lives a layer up, in the repository.
type PokeAPIClient interface {
	ListPage(ctx context.Context, limit, offset int) (*domain.PageResponse, error)
	Detail(ctx context.Context, idOrName string) (*domain.PokemonDetail, error)
}

type pokeAPIClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	collection string
	httpClient *resty.Client
}

func NewPokeAPIClient(cfg config.APIConfig) PokeAPIClient {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "pokedex-catalog/1.0")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &pokeAPIClient{
		rl:         rl,
		baseURL:    cfg.BaseURL,
		collection: cfg.Collection,
		httpClient: httpClient,
	}
}

func (c *pokeAPIClient) ListPage(ctx context.Context, limit, offset int) (*domain.PageResponse, error) {
	endpoint := fmt.Sprintf("%s?limit=%d&offset=%d", c.collection, limit, offset)

	page, err := fetchAs[domain.PageResponse](ctx, c, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page at offset %d: %w", offset, err)
	}

	log.Debugf("Fetched catalog page offset=%d with %d entries", offset, len(page.Results))
	return page, nil
}

func (c *pokeAPIClient) Detail(ctx context.Context, idOrName string) (*domain.PokemonDetail, error) {
	endpoint := fmt.Sprintf("%s/%s", c.collection, idOrName)

	detail, err := fetchAs[domain.PokemonDetail](ctx, c, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for %q: %w", idOrName, err)
	}

	log.Debugf("Fetched details for %s", detail.Name)
	return detail, nil
}

// fetchAs performs one GET against the endpoint and decodes the body into T.
// A function rather than a method because methods cannot take type parameters.
func fetchAs[T any](ctx context.Context, c *pokeAPIClient, endpoint string) (*T, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := json.Unmarshal(body, out); err != nil {
		return nil, &DecodingError{Cause: err}
	}
	return out, nil
}

func (c *pokeAPIClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	requestURL, err := c.resolve(endpoint)
	if err != nil {
		return nil, err
	}

	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(requestURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &NetworkError{Cause: ctx.Err()}
		}
		return nil, &NetworkError{Cause: err}
	}
	if resp == nil {
		return nil, ErrUnknown
	}
	if resp.IsError() {
		return nil, &ServerError{StatusCode: resp.StatusCode()}
	}

	return []byte(resp.String()), nil
}

// resolve turns an endpoint into an absolute request URL. Absolute endpoints
// pass through verbatim so follow-up links from the API can be fetched as-is;
// relative ones are joined onto the configured base with the query re-encoded
// instead of concatenated.
func (c *pokeAPIClient) resolve(endpoint string) (string, error) {
	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		return endpoint, nil
	}

	base, err := url.Parse(c.baseURL)
	if err != nil || !base.IsAbs() {
		return "", fmt.Errorf("%w: base %q", ErrInvalidURL, c.baseURL)
	}

	pathPart, rawQuery, _ := strings.Cut(endpoint, "?")
	resolved := base.JoinPath(strings.TrimPrefix(pathPart, "/"))
	if rawQuery != "" {
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			return "", fmt.Errorf("%w: query %q", ErrInvalidURL, rawQuery)
		}
		resolved.RawQuery = values.Encode()
	}
	return resolved.String(), nil
}
