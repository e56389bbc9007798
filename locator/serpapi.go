package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultSerpAPIURL = "https://serpapi.com/search.json"

// SerpAPIProvider 는 SerpAPI 의 Google 엔진 organic_results 를 사용한다.
type SerpAPIProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewSerpAPIProvider(apiKey, apiURL string) (*SerpAPIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: serpapi api key is required", ErrNoCredential)
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultSerpAPIURL
	}
	return &SerpAPIProvider{
		apiKey: apiKey,
		apiURL: apiURL,
		client: newSearchClient(""),
	}, nil
}

type serpAPIResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

func (p *SerpAPIProvider) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	endpoint, err := url.Parse(p.apiURL)
	if err != nil {
		return nil, fmt.Errorf("parse serpapi url: %w", err)
	}
	q := endpoint.Query()
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("api_key", p.apiKey)
	if opts.Country != "" {
		q.Set("gl", opts.Country)
	}
	if opts.Language != "" {
		q.Set("hl", opts.Language)
	}
	if opts.Limit > 0 {
		q.Set("num", strconv.Itoa(opts.Limit))
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create serpapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("serpapi request failed with status %d", resp.StatusCode)
	}

	var decoded serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", err)
	}
	if decoded.Error != "" {
		// 결과 없음은 실패가 아니라 빈 목록이다.
		if strings.Contains(decoded.Error, "hasn't returned any results") {
			return []Result{}, nil
		}
		return nil, fmt.Errorf("serpapi error: %s", decoded.Error)
	}

	results := make([]Result, 0, len(decoded.OrganicResults))
	for _, item := range decoded.OrganicResults {
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: strings.TrimSpace(item.Snippet),
		})
	}
	return results, nil
}
