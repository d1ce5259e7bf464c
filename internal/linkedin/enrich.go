package linkedin

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultEnrichHost = "fresh-linkedin-profile-data.p.rapidapi.com"

// EnrichClient fetches structured profile records from a RapidAPI-style
// enrichment provider. The response body is passed through untouched; shape
// differences are the normalizer's concern.
type EnrichClient struct {
	http   *resty.Client
	apiKey string
	host   string
	logger *zap.Logger
}

func NewEnrichClient(apiKey, host string, logger *zap.Logger) *EnrichClient {
	if host == "" {
		host = defaultEnrichHost
	}
	return &EnrichClient{
		http: resty.New().
			SetBaseURL("https://" + host).
			SetTimeout(20 * time.Second),
		apiKey: apiKey,
		host:   host,
		logger: logger,
	}
}

// SetBaseURL overrides the API endpoint, used in tests.
func (c *EnrichClient) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

func (c *EnrichClient) Name() string { return "enrich" }

func (c *EnrichClient) Fetch(ctx context.Context, url string) (*RawRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-RapidAPI-Key", c.apiKey).
		SetHeader("X-RapidAPI-Host", c.host).
		SetQueryParam("linkedin_url", url).
		Get("/get-linkedin-profile")
	if err != nil {
		return nil, fmt.Errorf("enrich request for %s: %w", url, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("enrich request for %s: bad status: %s", url, resp.Status())
	}

	c.logger.Debug("enrich response",
		zap.String("url", url),
		zap.Int("body_length", len(resp.Body())),
	)

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())

	return &RawRecord{URL: url, Body: body}, nil
}
