package locator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"libdb-finder/config"
	"libdb-finder/httpclient"
)

const (
	ProviderSerpAPI    = "serpapi"
	ProviderBrave      = "brave"
	ProviderDuckDuckGo = "duckduckgo"
	ProviderGemini     = "gemini"
)

var (
	// ErrNoCredential 는 API 키가 필요한 검색 제공자에 키가 없을 때 반환된다.
	// 호출자는 수동 URL 입력으로 대체해야 한다.
	ErrNoCredential = errors.New("locator: search credential is not configured")
	// ErrNotFound 는 모든 질의 변형이 결과 없이 끝났을 때 반환된다.
	ErrNotFound = errors.New("locator: no candidate url found")
	// ErrSearchFailed 는 모든 질의 변형에서 검색 호출 자체가 실패했을 때 반환된다.
	ErrSearchFailed = errors.New("locator: search provider failed")
	// ErrQuotaExceeded 는 일일 검색 한도를 모두 사용했을 때 반환된다.
	ErrQuotaExceeded = errors.New("locator: daily search quota exhausted")
)

// Provider defines the interface for web search providers.
type Provider interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}

// Result is a single organic search result.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchOptions 는 제공자 공통 질의 옵션이다. Country/Language 는 지역화 힌트이며
// 제공자가 지원하지 않으면 무시된다.
type SearchOptions struct {
	Limit    int
	Country  string
	Language string
}

// APIKey returns the credential the given provider reads from the environment.
func APIKey(provider string) string {
	if strings.EqualFold(provider, ProviderGemini) {
		return config.GeminiAPIKey()
	}
	return config.SearchAPIKey()
}

// NewProvider 는 설정에 따라 검색 제공자를 만든다. duckduckgo 외에는 apiKey 가 필요하다.
func NewProvider(ctx context.Context, cfg config.AppConfig, apiKey string) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Search.Provider))
	if name != ProviderDuckDuckGo && strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: provider %s", ErrNoCredential, name)
	}

	switch name {
	case ProviderSerpAPI:
		return NewSerpAPIProvider(apiKey, cfg.Search.APIURL)
	case ProviderBrave:
		return NewBraveProvider(apiKey, cfg.Search.APIURL)
	case ProviderDuckDuckGo:
		return NewDuckDuckGoProvider(cfg.Search.APIURL, cfg.Fetch.UserAgent)
	case ProviderGemini:
		return NewGeminiProvider(ctx, apiKey, cfg.LLM.ModelName)
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Search.Provider)
	}
}

func newSearchClient(userAgent string) *http.Client {
	return httpclient.New(httpclient.Config{Timeout: 15 * time.Second, UserAgent: userAgent})
}
