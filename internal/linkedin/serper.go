package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const serperBaseURL = "https://google.serper.dev"

// SerperClient discovers profile links through the Serper search API.
type SerperClient struct {
	http   *resty.Client
	apiKey string
	logger *zap.Logger
}

type serperOrganic struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

func NewSerperClient(apiKey string, logger *zap.Logger) *SerperClient {
	return &SerperClient{
		http: resty.New().
			SetBaseURL(serperBaseURL).
			SetTimeout(15 * time.Second),
		apiKey: apiKey,
		logger: logger,
	}
}

// SetBaseURL overrides the API endpoint, used in tests.
func (c *SerperClient) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

func (c *SerperClient) Name() string { return "serper" }

// Search posts the query with the profile site restriction and returns the
// organic results that point at candidate profiles.
func (c *SerperClient) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"q": restrictToProfiles(query),
			// Request more than needed, dedupe trims later.
			"num": limit * 2,
		}).
		Post("/search")
	if err != nil {
		return nil, fmt.Errorf("serper search request: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("serper search: bad status: %s", resp.Status())
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decode serper response: %w", err)
	}

	var organic []serperOrganic
	cfg := &mapstructure.DecoderConfig{
		Result:  &organic,
		TagName: "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(payload["organic"]); err != nil {
		return nil, fmt.Errorf("decode serper organic results: %w", err)
	}

	c.logger.Debug("serper search response",
		zap.String("query", query),
		zap.Int("organic_count", len(organic)),
	)

	hits := make([]SearchHit, 0, len(organic))
	for _, item := range organic {
		canonical, ok := CanonicalProfileURL(item.Link)
		if !ok {
			continue
		}
		hits = append(hits, SearchHit{URL: canonical, Snippet: item.Snippet})
		if len(hits) >= limit {
			break
		}
	}

	return hits, nil
}

func restrictToProfiles(query string) string {
	if strings.Contains(strings.ToLower(query), "site:linkedin.com/in") {
		return query
	}
	return "site:linkedin.com/in/ " + query
}
