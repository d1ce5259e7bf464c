package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const browserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// HTMLSource scrapes the public profile page as a fallback when the
// enrichment API has no record. The page title carries "Name - Headline |
// LinkedIn" and the meta description ends with the location after a "·"
// separator. The extracted fields are synthesized into a RawRecord so the
// normalizer consumes every source uniformly.
type HTMLSource struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewHTMLSource(logger *zap.Logger) *HTMLSource {
	return &HTMLSource{
		http: resty.New().
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", browserUserAgent),
		logger: logger,
	}
}

func (s *HTMLSource) Name() string { return "html" }

func (s *HTMLSource) Fetch(ctx context.Context, url string) (*RawRecord, error) {
	resp, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("profile page request for %s: %w", url, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("profile page for %s: bad status: %s", url, resp.Status())
	}

	record, err := recordFromHTML(url, resp.Body())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scraped public profile page", zap.String("url", url))

	return record, nil
}

func recordFromHTML(url string, html []byte) (*RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse profile page for %s: %w", url, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	name, headline := splitPageTitle(title)
	if name == "" {
		return nil, fmt.Errorf("profile page for %s has no usable title", url)
	}

	var location string
	desc := doc.Find(`meta[name="description"]`).AttrOr("content", "")
	if idx := strings.LastIndex(desc, " · "); idx >= 0 {
		location = strings.TrimSpace(strings.SplitN(desc[idx+len(" · "):], " | ", 2)[0])
	}

	body, err := json.Marshal(map[string]string{
		"name":     name,
		"headline": headline,
		"location": location,
	})
	if err != nil {
		return nil, err
	}

	return &RawRecord{URL: url, Body: body}, nil
}

func splitPageTitle(title string) (name, headline string) {
	title = strings.TrimSuffix(title, "| LinkedIn")
	title = strings.TrimSpace(strings.TrimSuffix(title, "|"))
	parts := strings.SplitN(title, " - ", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		headline = strings.TrimSpace(parts[1])
	}
	return name, headline
}
