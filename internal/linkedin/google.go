package linkedin

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const googleBaseURL = "https://www.google.com"

var profileLinkExpr = regexp.MustCompile(`https?://(?:[a-z]{2,3}\.)?linkedin\.com/in/[A-Za-z0-9_%-]+`)

// GoogleClient is the generic web-search fallback: it scrapes profile links
// out of the result page HTML, so it needs no API key but yields no snippets.
type GoogleClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewGoogleClient(logger *zap.Logger) *GoogleClient {
	return &GoogleClient{
		http: resty.New().
			SetBaseURL(googleBaseURL).
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", browserUserAgent),
		logger: logger,
	}
}

// SetBaseURL overrides the search endpoint, used in tests.
func (c *GoogleClient) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

func (c *GoogleClient) Name() string { return "google" }

func (c *GoogleClient) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", restrictToProfiles(query)).
		SetQueryParam("num", strconv.Itoa(limit*2)).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("google search request: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("google search: bad status: %s", resp.Status())
	}

	matches := profileLinkExpr.FindAllString(string(resp.Body()), -1)

	c.logger.Debug("google search response",
		zap.String("query", query),
		zap.Int("link_count", len(matches)),
	)

	seen := make(map[string]struct{}, len(matches))
	hits := make([]SearchHit, 0, len(matches))
	for _, link := range matches {
		canonical, ok := CanonicalProfileURL(link)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		hits = append(hits, SearchHit{URL: canonical})
		if len(hits) >= limit {
			break
		}
	}

	return hits, nil
}
