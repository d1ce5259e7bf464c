package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const serperFixture = `{
	"searchParameters": {"q": "site:linkedin.com/in/ ml engineer"},
	"organic": [
		{"title": "Jane Doe - ML Engineer", "link": "https://www.linkedin.com/in/jane-doe?trk=srp", "snippet": "ML Engineer at Acme"},
		{"title": "Acme Careers", "link": "https://www.linkedin.com/company/acme", "snippet": "Jobs"},
		{"title": "John Smith", "link": "https://de.linkedin.com/in/john-smith/", "snippet": "Backend"}
	]
}`

func TestSerperClientSearch(t *testing.T) {
	var gotKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(serperFixture))
	}))
	defer server.Close()

	client := NewSerperClient("test-key", zap.NewNop())
	client.SetBaseURL(server.URL)

	hits, err := client.Search(context.Background(), "ml engineer", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "test-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if gotPath != "/search" {
		t.Fatalf("unexpected path: %q", gotPath)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 profile hits (company link dropped), got %d", len(hits))
	}
	if hits[0].Snippet != "ML Engineer at Acme" {
		t.Fatalf("unexpected snippet: %q", hits[0].Snippet)
	}
}

func TestSerperClientEmptyOrganic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"searchParameters": {}}`))
	}))
	defer server.Close()

	client := NewSerperClient("test-key", zap.NewNop())
	client.SetBaseURL(server.URL)

	hits, err := client.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("empty result set must not be an error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}

func TestSerperClientBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewSerperClient("bad-key", zap.NewNop())
	client.SetBaseURL(server.URL)

	if _, err := client.Search(context.Background(), "anything", 10); err == nil {
		t.Fatalf("expected error on bad status")
	}
}

func TestGoogleClientSearch(t *testing.T) {
	page := `<html><body>
		<a href="https://www.linkedin.com/in/jane-doe?trk=x">Jane</a>
		plain text https://de.linkedin.com/in/john-smith more text
		<a href="https://www.linkedin.com/in/jane-doe">dup</a>
		<a href="https://www.linkedin.com/pulse/article">not a profile</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	client := NewGoogleClient(zap.NewNop())
	client.SetBaseURL(server.URL)

	hits, err := client.Search(context.Background(), "backend developer", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 unique profile hits, got %d: %v", len(hits), hits)
	}
	if hits[0].URL != "https://www.linkedin.com/in/jane-doe" {
		t.Fatalf("unexpected first hit: %q", hits[0].URL)
	}
	if hits[1].URL != "https://www.linkedin.com/in/john-smith" {
		t.Fatalf("unexpected second hit: %q", hits[1].URL)
	}
}

func TestEnrichClientFetch(t *testing.T) {
	body := `{"data": {"full_name": "Jane Doe", "headline": "ML Engineer"}}`
	var gotURLParam, gotHost string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURLParam = r.URL.Query().Get("linkedin_url")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewEnrichClient("key", "example-host", zap.NewNop())
	client.SetBaseURL(server.URL)

	rec, err := client.Fetch(context.Background(), "https://www.linkedin.com/in/jane-doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotURLParam != "https://www.linkedin.com/in/jane-doe" {
		t.Fatalf("unexpected query param: %q", gotURLParam)
	}
	if gotHost != "example-host" {
		t.Fatalf("unexpected host header: %q", gotHost)
	}
	if string(rec.Body) != body {
		t.Fatalf("expected raw passthrough body, got %s", rec.Body)
	}
}
