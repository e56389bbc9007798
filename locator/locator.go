package locator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libdb-finder/config"
)

// Located 는 기관명에 대해 찾아낸 후보 페이지다.
type Located struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Query    string `json:"query"`
	Provider string `json:"provider"`
}

// Locator 는 질의 변형을 순서대로 시도해 첫 번째 검색 결과를 후보로 삼는다.
type Locator struct {
	provider     Provider
	providerName string
	limiter      *QuotaLimiter
	templates    []string
	opts         SearchOptions
}

func New(provider Provider, cfg config.SearchConfig, limiter *QuotaLimiter) *Locator {
	templates := cfg.QueryTemplates
	if len(templates) == 0 {
		templates = config.Default().Search.QueryTemplates
	}
	return &Locator{
		provider:     provider,
		providerName: cfg.Provider,
		limiter:      limiter,
		templates:    templates,
		opts: SearchOptions{
			Limit:    cfg.ResultLimit,
			Country:  cfg.Country,
			Language: cfg.Language,
		},
	}
}

// Queries returns the query variants for organization in the order they are tried.
func (l *Locator) Queries(organization string) []string {
	queries := make([]string, 0, len(l.templates))
	for _, tpl := range l.templates {
		if strings.Contains(tpl, "%s") {
			queries = append(queries, fmt.Sprintf(tpl, organization))
		} else {
			queries = append(queries, strings.TrimSpace(tpl+" "+organization))
		}
	}
	return queries
}

// Locate 는 변형 중 하나라도 결과를 내면 그 첫 결과를 반환한다.
// 모든 변형이 호출 실패면 ErrSearchFailed, 그 외에는 ErrNotFound 이다.
func (l *Locator) Locate(ctx context.Context, organization string) (Located, error) {
	organization = strings.TrimSpace(organization)
	if organization == "" {
		return Located{}, ErrNotFound
	}

	queries := l.Queries(organization)
	var lastErr error
	failed := 0
	for _, query := range queries {
		ok, err := l.limiter.WaitAndReserve(ctx)
		if err != nil {
			return Located{}, err
		}
		if !ok {
			return Located{}, ErrQuotaExceeded
		}

		results, err := l.provider.Search(ctx, query, l.opts)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return Located{}, err
			}
			config.Logger.Warnf("locator: query %q failed: %v", query, err)
			lastErr = err
			failed++
			continue
		}

		for _, r := range results {
			if strings.TrimSpace(r.URL) == "" {
				continue
			}
			config.Logger.Infof("locator: %q -> %s", query, r.URL)
			return Located{URL: r.URL, Title: r.Title, Query: query, Provider: l.providerName}, nil
		}
		config.Logger.Debugf("locator: query %q returned no results", query)
	}

	if failed == len(queries) && lastErr != nil {
		return Located{}, fmt.Errorf("%w: %v", ErrSearchFailed, lastErr)
	}
	return Located{}, ErrNotFound
}
