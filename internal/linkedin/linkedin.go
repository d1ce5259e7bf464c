// Package linkedin holds the candidate domain: search hits, profile
// normalization and the provider clients that fetch raw profile data.
package linkedin

import "context"

// SearchHit is one discovered profile link in canonical form.
type SearchHit struct {
	URL     string
	Snippet string
}

// SearchProvider returns raw profile links for a query. An empty result set
// means "no candidates found" and is not an error.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
}

// RawRecord is one unparsed provider response for a profile URL.
type RawRecord struct {
	URL  string
	Body []byte
}

// ProfileSource fetches the raw record for a canonical profile URL.
type ProfileSource interface {
	Name() string
	Fetch(ctx context.Context, url string) (*RawRecord, error)
}
