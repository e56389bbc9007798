package locator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const defaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider 는 키 없이 쓸 수 있는 DuckDuckGo HTML 결과 페이지를 긁는다.
type DuckDuckGoProvider struct {
	apiURL string
	client *http.Client
}

func NewDuckDuckGoProvider(apiURL, userAgent string) (*DuckDuckGoProvider, error) {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultDuckDuckGoURL
	}
	return &DuckDuckGoProvider{apiURL: apiURL, client: newSearchClient(userAgent)}, nil
}

func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	endpoint, err := url.Parse(p.apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo url: %w", err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	if region := duckDuckGoRegion(opts); region != "" {
		q.Set("kl", region)
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create duckduckgo request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("duckduckgo request failed with status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo response: %w", err)
	}

	results := make([]Result, 0)
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := unwrapDuckDuckGoLink(href)
		if target == "" {
			return true
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(link.Text()),
			URL:     target,
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
		return opts.Limit <= 0 || len(results) < opts.Limit
	})
	return results, nil
}

// unwrapDuckDuckGoLink 는 "//duckduckgo.com/l/?uddg=<encoded>" 형태의 리다이렉트 링크를 원래 주소로 푼다.
func unwrapDuckDuckGoLink(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return u.String()
	}
	return ""
}

// duckDuckGoRegion maps ("cn", "zh-cn") to DuckDuckGo's "cn-zh" region code.
func duckDuckGoRegion(opts SearchOptions) string {
	country := strings.ToLower(strings.TrimSpace(opts.Country))
	if country == "" {
		return ""
	}
	lang, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(opts.Language)), "-")
	if lang == "" {
		lang = "en"
	}
	return country + "-" + lang
}
