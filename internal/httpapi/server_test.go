package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhi017z/Movie-Recommender-System/internal/catalog"
	"github.com/abhi017z/Movie-Recommender-System/internal/engine"
)

type fixtureSource struct{ rows []catalog.Row }

func (s *fixtureSource) Name() string                 { return "fixture" }
func (s *fixtureSource) Rows() ([]catalog.Row, error) { return s.rows, nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	source := &fixtureSource{rows: []catalog.Row{
		{Title: "Alpha", Genres: "Action", Keywords: "heist getaway", Cast: "Ann Lee", Director: "Bo Chan"},
		{Title: "Beta", Genres: "Action", Keywords: "heist chase", Cast: "Cal Dunn", Director: "Dee East"},
		{Title: "Gamma", Genres: "Drama", Keywords: "wedding family", Cast: "Eve Frost", Director: "Gil Hart"},
	}}
	eng, err := engine.Build(zerolog.Nop(), []catalog.Source{source}, engine.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return NewServer(eng, zerolog.Nop(), Options{})
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e, err := s.buildEcho()
	if err != nil {
		t.Fatalf("buildEcho failed: %v", err)
	}

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echoContentType, "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func decodeJSend(t *testing.T, rec *httptest.ResponseRecorder) jsendResponse {
	t.Helper()

	var resp jsendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/v1/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeJSend(t, rec)
	if resp.Status != "success" {
		t.Fatalf("jsend status = %q", resp.Status)
	}
	data := resp.Data.(map[string]any)
	if data["service"] != "cinemaai" {
		t.Fatalf("unexpected health payload: %v", data)
	}
	if data["catalog_items"].(float64) != 3 {
		t.Fatalf("catalog_items = %v, want 3", data["catalog_items"])
	}
}

func TestHandleRecommend(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/recommend",
		`{"movieName":"Alphaa","numRecommendations":2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeJSend(t, rec)
	data := resp.Data.(map[string]any)
	if data["inputMovie"] != "Alpha" {
		t.Fatalf("inputMovie = %v, want Alpha", data["inputMovie"])
	}
	recs := data["recommendations"].([]any)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	first := recs[0].(map[string]any)
	if first["title"] != "Beta" {
		t.Fatalf("first recommendation = %v, want Beta", first["title"])
	}
	if _, ok := first["similarityScore"].(float64); !ok {
		t.Fatalf("similarityScore missing: %v", first)
	}
}

func TestHandleRecommendDefaultsCount(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/recommend", `{"movieName":"Alpha"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeJSend(t, rec)
	recs := resp.Data.(map[string]any)["recommendations"].([]any)
	// Only two neighbors exist in the three-item fixture.
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
}

func TestHandleRecommendBlankName(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/recommend", `{"movieName":"  "}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeJSend(t, rec)
	if resp.Status != "fail" || resp.Message == "" {
		t.Fatalf("unexpected failure envelope: %+v", resp)
	}
}

func TestHandleRecommendUnknownMovie(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/recommend", `{"movieName":"Zzzznotamovie"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	resp := decodeJSend(t, rec)
	if !strings.Contains(resp.Message, "Zzzznotamovie") {
		t.Fatalf("error should name the unmatched query: %q", resp.Message)
	}
}

func TestHandleRecommendMalformedBody(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/recommend", `{"movieName":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/search?q=al", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	items := decodeJSend(t, rec).Data.(map[string]any)["items"].([]any)
	if len(items) != 1 || items[0] != "Alpha" {
		t.Fatalf("search items = %v, want [Alpha]", items)
	}

	// Below the minimum query length the list is empty, not an error.
	rec = doRequest(t, s, http.MethodGet, "/api/v1/search?q=a", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	items = decodeJSend(t, rec).Data.(map[string]any)["items"].([]any)
	if len(items) != 0 {
		t.Fatalf("short query should yield empty list, got %v", items)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/v1/search?q=al&limit=0", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid limit: status = %d, want 400", rec.Code)
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "strips sentinel prefix", in: "invalid argument: movie name is required", want: "Movie name is required"},
		{name: "no prefix", in: "plain message", want: "Plain message"},
		{name: "trailing separator", in: "invalid argument: ", want: ""},
		{name: "multibyte leading rune", in: "fail: über limit", want: "Über limit"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := userMessage(errors.New(tc.in)); got != tc.want {
				t.Fatalf("userMessage(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIndexServed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CinemaAI") {
		t.Fatal("index page should be served from embedded assets")
	}
}
