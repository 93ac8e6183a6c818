package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pokedex/catalog/internal/config"
)

func newTestClient(baseURL string) PokeAPIClient {
	return NewPokeAPIClient(config.APIConfig{
		BaseURL:    baseURL,
		Collection: "pokemon",
		Timeout:    5,
	})
}

func TestListPageDecodesResponse(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon" {
			t.Errorf("path = %q, want /pokemon", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 1302,
			"next": "https://pokeapi.co/api/v2/pokemon?offset=20&limit=20",
			"previous": null,
			"results": [
				{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
				{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"}
			]
		}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL).ListPage(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}

	if gotQuery != "limit=20&offset=0" {
		t.Errorf("query = %q, want limit=20&offset=0", gotQuery)
	}
	if page.Count != 1302 {
		t.Errorf("Count = %d, want 1302", page.Count)
	}
	if page.Next == nil || page.Previous != nil {
		t.Errorf("links = (%v, %v), want (set, nil)", page.Next, page.Previous)
	}
	if len(page.Results) != 2 || page.Results[0].Name != "bulbasaur" {
		t.Errorf("Results = %v, want bulbasaur first of two", page.Results)
	}
}

func TestDetailDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/pikachu" {
			t.Errorf("path = %q, want /pokemon/pikachu", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 25,
			"name": "pikachu",
			"height": 4,
			"weight": 60,
			"sprites": {"front_default": "https://example.com/25.png", "back_default": null},
			"types": [{"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}],
			"abilities": [{"ability": {"name": "static", "url": ""}, "is_hidden": false, "slot": 1}],
			"stats": [{"base_stat": 35, "effort": 0, "stat": {"name": "hp", "url": ""}}]
		}`))
	}))
	defer srv.Close()

	detail, err := newTestClient(srv.URL).Detail(context.Background(), "pikachu")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}

	if detail.ID != 25 || detail.Name != "pikachu" {
		t.Errorf("identity = (%d, %q), want (25, pikachu)", detail.ID, detail.Name)
	}
	if detail.Sprites.FrontDefault == nil || *detail.Sprites.FrontDefault != "https://example.com/25.png" {
		t.Errorf("FrontDefault = %v, want sprite URL", detail.Sprites.FrontDefault)
	}
	if len(detail.Types) != 1 || detail.Types[0].Type.Name != "electric" {
		t.Errorf("Types = %v, want electric", detail.Types)
	}
	if len(detail.Stats) != 1 || detail.Stats[0].BaseStat != 35 {
		t.Errorf("Stats = %v, want base_stat 35", detail.Stats)
	}
}

func TestServerErrorCarriesStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListPage(context.Background(), 20, 0)
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("error = %v, want *ServerError", err)
	}
	if serverErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", serverErr.StatusCode)
	}
	if IsNotFound(err) {
		t.Error("IsNotFound reported true for a 500")
	}
}

func TestNotFoundIsDetectable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Detail(context.Background(), "missingno")
	if err == nil {
		t.Fatal("Detail returned nil error for 404")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestMalformedBodyIsDecodingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListPage(context.Background(), 20, 0)
	var decodingErr *DecodingError
	if !errors.As(err, &decodingErr) {
		t.Fatalf("error = %v, want *DecodingError", err)
	}
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).ListPage(context.Background(), 20, 0)
	var networkErr *NetworkError
	if !errors.As(err, &networkErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
}

func TestCancelledContextIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).ListPage(ctx, 20, 0)
	var networkErr *NetworkError
	if !errors.As(err, &networkErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want wrapped context.Canceled", err)
	}
}

func TestUnresolvableBaseURL(t *testing.T) {
	_, err := newTestClient("not a url").ListPage(context.Background(), 20, 0)
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("error = %v, want ErrInvalidURL", err)
	}
}

func TestResolve(t *testing.T) {
	c := newTestClient("https://pokeapi.co/api/v2").(*pokeAPIClient)

	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{"collection with query", "pokemon?limit=20&offset=0", "https://pokeapi.co/api/v2/pokemon?limit=20&offset=0"},
		{"leading slash", "/pokemon/25", "https://pokeapi.co/api/v2/pokemon/25"},
		{"nested path", "pokemon/pikachu", "https://pokeapi.co/api/v2/pokemon/pikachu"},
		{"absolute passes through", "https://example.com/other?a=1", "https://example.com/other?a=1"},
		{"query is encoded", "pokemon?q=mew two", "https://pokeapi.co/api/v2/pokemon?q=mew+two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.resolve(tt.endpoint)
			if err != nil {
				t.Fatalf("resolve(%q): %v", tt.endpoint, err)
			}
			if got != tt.want {
				t.Errorf("resolve(%q) = %q, want %q", tt.endpoint, got, tt.want)
			}
		})
	}
}
