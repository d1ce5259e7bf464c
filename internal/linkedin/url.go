package linkedin

import (
	"net/url"
	"regexp"
	"strings"
)

const profileHost = "www.linkedin.com"

var profilePathExpr = regexp.MustCompile(`^/in/[A-Za-z0-9_%-]+/?$`)

// CanonicalProfileURL normalizes a raw URL to the canonical profile form:
// https scheme, www.linkedin.com host, /in/<slug> path, no query string, no
// trailing slash. The second return value is false for malformed URLs and
// anything that is not a public profile link.
func CanonicalProfileURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return "", false
	}

	path := u.Path
	// Country subpaths like /in/slug/en keep only the slug.
	if parts := strings.Split(strings.Trim(path, "/"), "/"); len(parts) >= 2 && parts[0] == "in" {
		path = "/in/" + parts[1]
	}

	if !profilePathExpr.MatchString(path) {
		return "", false
	}

	return "https://" + profileHost + strings.TrimSuffix(path, "/"), true
}

// ProfileSlug returns the slug component of a canonical profile URL.
func ProfileSlug(canonical string) string {
	idx := strings.Index(canonical, "/in/")
	if idx < 0 {
		return ""
	}
	return strings.Trim(canonical[idx+len("/in/"):], "/")
}

// DedupeHits canonicalizes the given hits, drops non-profile and duplicate
// URLs keeping the first occurrence, and caps the result at max (no cap when
// max <= 0).
func DedupeHits(hits []SearchHit, max int) []SearchHit {
	seen := make(map[string]struct{}, len(hits))
	out := make([]SearchHit, 0, len(hits))

	for _, hit := range hits {
		canonical, ok := CanonicalProfileURL(hit.URL)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, SearchHit{URL: canonical, Snippet: hit.Snippet})
		if max > 0 && len(out) >= max {
			break
		}
	}

	return out
}
