package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdb-finder/api/router"
	"libdb-finder/config"
	"libdb-finder/dto"
	"libdb-finder/fetcher"
	"libdb-finder/locator"
	"libdb-finder/services"
)

const listingPage = `<html><head><title>数据库导航</title></head><body><ul>
<li><a href="/1">中国知网</a></li>
<li><a href="/2">万方数据知识服务平台</a></li>
<li><a href="/3">超星数字图书馆</a></li>
<li><a href="/4">Web of Science</a></li>
<li><a href="/5">ScienceDirect</a></li>
<li><a href="/6">SpringerLink</a></li>
</ul></body></html>`

type pageSession struct {
	url  string
	html string
}

func (s *pageSession) URL() string                                   { return s.url }
func (s *pageSession) HTML(context.Context) (string, error)          { return s.html, nil }
func (s *pageSession) Probe(context.Context, []string) (bool, error) { return false, nil }
func (s *pageSession) Close() error                                  { return nil }

type pageFetcher struct {
	pages map[string]string
}

func (f *pageFetcher) Open(_ context.Context, rawURL string) (fetcher.Session, error) {
	html, ok := f.pages[rawURL]
	if !ok {
		return nil, &fetcher.FetchError{Kind: fetcher.KindBlocked, URL: rawURL, Reason: "verification page"}
	}
	return &pageSession{url: rawURL, html: html}, nil
}

type stubLocator struct {
	located locator.Located
	err     error
}

func (l stubLocator) Locate(context.Context, string) (locator.Located, error) {
	return l.located, l.err
}

func newEngine(loc services.URLLocator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	f := &pageFetcher{pages: map[string]string{"https://lib.example.edu.cn/db": listingPage}}
	svc := services.NewAnalysisService(config.Default(), services.Deps{
		Locator:  loc,
		Fetchers: func(fetcher.Mode) (fetcher.Fetcher, error) { return f, nil },
	})
	return router.New(svc, config.Default().Server)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := serve(newEngine(nil), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "disabled", body.Search)
	assert.Equal(t, "disabled", body.RunLog)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestAnalyzeAPI(t *testing.T) {
	r := newEngine(stubLocator{located: locator.Located{URL: "https://lib.example.edu.cn/db"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"organization":"某大学"}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var report services.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, services.OutcomeOK, report.Outcome)
	assert.Equal(t, 3, report.ChineseCount)
	assert.Equal(t, 3, report.OtherCount)
	assert.Equal(t, "https://lib.example.edu.cn/db", report.FinalURL)
}

func TestAnalyzeAPIUsesRequestIDAsRunID(t *testing.T) {
	r := newEngine(stubLocator{located: locator.Located{URL: "https://lib.example.edu.cn/db"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"organization":"某大学"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-from-client")

	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-from-client", w.Header().Get("X-Request-Id"))

	var report services.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "req-from-client", report.RunID)
}

func TestAnalyzeAPIReportsFailuresInBody(t *testing.T) {
	r := newEngine(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{"url":"https://blocked.example.edu.cn/"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	var report services.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, services.OutcomeFetchFailed, report.Outcome)
	assert.Equal(t, "blocked", report.Reason)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/analyses", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractAPI(t *testing.T) {
	r := newEngine(nil)

	body, _ := json.Marshal(dto.ExtractRequest{HTML: listingPage})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract?raw=true", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Total)
	assert.Contains(t, resp.Chinese, "中国知网")
	assert.Len(t, resp.Candidates, 6)
	assert.Equal(t, "dense:ul", resp.Candidates[0].Source)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(listingPage))
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	resp = dto.ExtractResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Other, "SpringerLink")
	assert.Empty(t, resp.Candidates)
}

func TestLocateAPI(t *testing.T) {
	w := serve(newEngine(nil), httptest.NewRequest(http.MethodGet, "/api/v1/locate?organization=某大学", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(newEngine(stubLocator{err: locator.ErrNotFound}), httptest.NewRequest(http.MethodGet, "/api/v1/locate?organization=x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(newEngine(stubLocator{err: locator.ErrQuotaExceeded}), httptest.NewRequest(http.MethodGet, "/api/v1/locate?organization=x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = serve(newEngine(nil), httptest.NewRequest(http.MethodGet, "/api/v1/locate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r := newEngine(stubLocator{located: locator.Located{URL: "https://lib.example.edu.cn/db", Provider: "brave"}})
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/locate?organization="+url.QueryEscape("某大学"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LocateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "某大学", resp.Organization)
	assert.Equal(t, "brave", resp.Provider)
}

func TestListRunsDisabled(t *testing.T) {
	w := serve(newEngine(nil), httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIndexPage(t *testing.T) {
	w := serve(newEngine(nil), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="organization"`)
	assert.Contains(t, w.Body.String(), `name="url"`)
	assert.Contains(t, w.Body.String(), "未配置检索服务")
}

func postForm(r http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(r, req)
}

func TestAnalyzePageShowsTables(t *testing.T) {
	w := postForm(newEngine(nil), url.Values{"url": {"https://lib.example.edu.cn/db"}, "mode": {"static"}})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "中文数据库")
	assert.Contains(t, body, "<td>中国知网</td>")
	assert.Contains(t, body, "<td>Web of Science</td>")
	assert.Contains(t, body, "数据来源")
	assert.Contains(t, body, "https://lib.example.edu.cn/db")
}

func TestAnalyzePageOffersManualURLOnFailure(t *testing.T) {
	w := postForm(newEngine(stubLocator{err: locator.ErrNotFound}), url.Values{"organization": {"某大学"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "未能找到该机构的数据库列表页面")
	assert.Contains(t, w.Body.String(), `name="url"`)

	w = postForm(newEngine(nil), url.Values{"url": {"https://blocked.example.edu.cn/"}})
	assert.Contains(t, w.Body.String(), "拦截")
}

func TestAnalyzePageZeroResultsMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := &pageFetcher{pages: map[string]string{"https://lib.example.edu.cn/": "<html><body><p>欢迎</p></body></html>"}}
	svc := services.NewAnalysisService(config.Default(), services.Deps{
		Fetchers: func(fetcher.Mode) (fetcher.Fetcher, error) { return f, nil },
	})

	w := postForm(router.New(svc, config.ServerConfig{}), url.Values{"url": {"https://lib.example.edu.cn/"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "未识别出数据库名称")
	assert.NotContains(t, w.Body.String(), "<td>")
}
