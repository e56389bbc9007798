package locator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdb-finder/config"
	"libdb-finder/locator"
)

type scriptedProvider struct {
	responses map[string][]locator.Result
	errs      map[string]error
	queries   []string
	opts      locator.SearchOptions
}

func (p *scriptedProvider) Search(_ context.Context, query string, opts locator.SearchOptions) ([]locator.Result, error) {
	p.queries = append(p.queries, query)
	p.opts = opts
	if err := p.errs[query]; err != nil {
		return nil, err
	}
	return p.responses[query], nil
}

func searchConfig() config.SearchConfig {
	return config.SearchConfig{
		Provider:       "fake",
		Country:        "cn",
		Language:       "zh-cn",
		ResultLimit:    3,
		QueryTemplates: []string{"%s 图书馆 数据库", "%s library databases"},
	}
}

func TestLocateReturnsFirstResultOfFirstVariant(t *testing.T) {
	p := &scriptedProvider{responses: map[string][]locator.Result{
		"清华大学 图书馆 数据库": {
			{Title: "数据库导航", URL: "https://lib.tsinghua.edu.cn/db"},
			{Title: "其他", URL: "https://example.com"},
		},
	}}

	got, err := locator.New(p, searchConfig(), nil).Locate(context.Background(), "清华大学")
	require.NoError(t, err)
	assert.Equal(t, "https://lib.tsinghua.edu.cn/db", got.URL)
	assert.Equal(t, "清华大学 图书馆 数据库", got.Query)
	assert.Equal(t, "fake", got.Provider)
	assert.Len(t, p.queries, 1)
	assert.Equal(t, locator.SearchOptions{Limit: 3, Country: "cn", Language: "zh-cn"}, p.opts)
}

func TestLocateFallsThroughEmptyVariants(t *testing.T) {
	p := &scriptedProvider{
		responses: map[string][]locator.Result{
			"Peking University library databases": {{URL: "https://library.pku.edu.cn/databases"}},
		},
		errs: map[string]error{"Peking University 图书馆 数据库": errors.New("boom")},
	}

	got, err := locator.New(p, searchConfig(), nil).Locate(context.Background(), "Peking University")
	require.NoError(t, err)
	assert.Equal(t, "https://library.pku.edu.cn/databases", got.URL)
	assert.Len(t, p.queries, 2)
}

func TestLocateNotFound(t *testing.T) {
	p := &scriptedProvider{}

	_, err := locator.New(p, searchConfig(), nil).Locate(context.Background(), "无名大学")
	assert.ErrorIs(t, err, locator.ErrNotFound)
	assert.Len(t, p.queries, 2)
}

func TestLocateSkipsResultsWithoutURL(t *testing.T) {
	p := &scriptedProvider{responses: map[string][]locator.Result{
		"无名大学 图书馆 数据库": {{Title: "no link"}},
	}}

	_, err := locator.New(p, searchConfig(), nil).Locate(context.Background(), "无名大学")
	assert.ErrorIs(t, err, locator.ErrNotFound)
}

func TestLocateAllVariantsFailed(t *testing.T) {
	p := &scriptedProvider{errs: map[string]error{
		"X 图书馆 数据库":       errors.New("status 500"),
		"X library databases": errors.New("status 500"),
	}}

	_, err := locator.New(p, searchConfig(), nil).Locate(context.Background(), "X")
	assert.ErrorIs(t, err, locator.ErrSearchFailed)
}

func TestLocateEmptyOrganization(t *testing.T) {
	p := &scriptedProvider{}

	_, err := locator.New(p, searchConfig(), nil).Locate(context.Background(), "   ")
	assert.ErrorIs(t, err, locator.ErrNotFound)
	assert.Empty(t, p.queries)
}

func TestLocateQuotaExhausted(t *testing.T) {
	cfg := searchConfig()
	cfg.RequestsPerDay = 1
	limiter := locator.NewQuotaLimiter(cfg)
	p := &scriptedProvider{}

	_, err := locator.New(p, cfg, limiter).Locate(context.Background(), "X")
	assert.ErrorIs(t, err, locator.ErrQuotaExceeded)
	assert.Len(t, p.queries, 1)
}

func TestQueriesWithoutPlaceholder(t *testing.T) {
	cfg := searchConfig()
	cfg.QueryTemplates = []string{"图书馆 数据库"}

	assert.Equal(t, []string{"图书馆 数据库 复旦大学"}, locator.New(&scriptedProvider{}, cfg, nil).Queries("复旦大学"))
}

func TestQuotaLimiterCancelledWhileWaiting(t *testing.T) {
	limiter := locator.NewQuotaLimiter(config.SearchConfig{RequestsPerMinute: 1})

	ok, err := limiter.WaitAndReserve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err = limiter.WaitAndReserve(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProviderRequiresCredential(t *testing.T) {
	cfg := config.Default()

	for _, name := range []string{locator.ProviderSerpAPI, locator.ProviderBrave, locator.ProviderGemini} {
		cfg.Search.Provider = name
		_, err := locator.NewProvider(context.Background(), cfg, "")
		assert.ErrorIs(t, err, locator.ErrNoCredential, name)
	}

	cfg.Search.Provider = locator.ProviderDuckDuckGo
	p, err := locator.NewProvider(context.Background(), cfg, "")
	require.NoError(t, err)
	assert.IsType(t, &locator.DuckDuckGoProvider{}, p)

	cfg.Search.Provider = "altavista"
	_, err = locator.NewProvider(context.Background(), cfg, "key")
	assert.Error(t, err)
}
