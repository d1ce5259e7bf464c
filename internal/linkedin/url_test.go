package linkedin

import "testing"

func TestCanonicalProfileURL(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "plain", raw: "https://www.linkedin.com/in/andrewyng", want: "https://www.linkedin.com/in/andrewyng", ok: true},
		{name: "trailing slash", raw: "https://www.linkedin.com/in/andrewyng/", want: "https://www.linkedin.com/in/andrewyng", ok: true},
		{name: "query string stripped", raw: "https://linkedin.com/in/andrewyng?originalSubdomain=us&trk=x", want: "https://www.linkedin.com/in/andrewyng", ok: true},
		{name: "country subdomain", raw: "http://de.linkedin.com/in/jane-doe", want: "https://www.linkedin.com/in/jane-doe", ok: true},
		{name: "locale subpath", raw: "https://www.linkedin.com/in/jane-doe/en", want: "https://www.linkedin.com/in/jane-doe", ok: true},
		{name: "company page rejected", raw: "https://www.linkedin.com/company/acme", ok: false},
		{name: "other host rejected", raw: "https://example.com/in/jane", ok: false},
		{name: "malformed rejected", raw: "://not-a-url", ok: false},
		{name: "empty rejected", raw: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CanonicalProfileURL(tc.raw)
			if ok != tc.ok {
				t.Fatalf("CanonicalProfileURL(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("CanonicalProfileURL(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDedupeHitsPreservesFirstSeenOrder(t *testing.T) {
	hits := []SearchHit{
		{URL: "https://www.linkedin.com/in/alpha", Snippet: "first"},
		{URL: "https://linkedin.com/in/alpha?trk=dup", Snippet: "duplicate"},
		{URL: "https://www.linkedin.com/company/acme"},
		{URL: "https://www.linkedin.com/in/beta/"},
		{URL: "https://www.linkedin.com/in/gamma"},
	}

	out := DedupeHits(hits, 0)
	if len(out) != 3 {
		t.Fatalf("expected 3 unique hits, got %d", len(out))
	}

	wantOrder := []string{
		"https://www.linkedin.com/in/alpha",
		"https://www.linkedin.com/in/beta",
		"https://www.linkedin.com/in/gamma",
	}
	for i, want := range wantOrder {
		if out[i].URL != want {
			t.Fatalf("position %d: got %q, want %q", i, out[i].URL, want)
		}
	}

	if out[0].Snippet != "first" {
		t.Fatalf("expected first occurrence to win, got snippet %q", out[0].Snippet)
	}
}

func TestDedupeHitsCap(t *testing.T) {
	hits := []SearchHit{
		{URL: "https://www.linkedin.com/in/a"},
		{URL: "https://www.linkedin.com/in/b"},
		{URL: "https://www.linkedin.com/in/c"},
	}

	out := DedupeHits(hits, 2)
	if len(out) != 2 {
		t.Fatalf("expected cap at 2, got %d", len(out))
	}
}

func TestProfileSlug(t *testing.T) {
	if got := ProfileSlug("https://www.linkedin.com/in/jane-doe"); got != "jane-doe" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := ProfileSlug("https://example.com/nothing"); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
}
