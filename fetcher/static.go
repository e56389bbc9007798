package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"libdb-finder/extractor"
	"libdb-finder/httpclient"
)

type StaticOptions struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	// Transport 는 테스트에서 교체할 때만 지정한다.
	Transport http.RoundTripper
}

// StaticFetcher 는 한 번의 HTTP GET 으로 페이지를 가져온다.
type StaticFetcher struct {
	client  *http.Client
	maxBody int64
}

func NewStatic(opts StaticOptions) *StaticFetcher {
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 8 << 20
	}
	return &StaticFetcher{
		client: httpclient.New(httpclient.Config{
			Timeout:   opts.Timeout,
			UserAgent: opts.UserAgent,
			Transport: opts.Transport,
		}),
		maxBody: maxBody,
	}
}

func (f *StaticFetcher) Open(ctx context.Context, rawURL string) (Session, error) {
	body, finalURL, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if err := checkBody(rawURL, body); err != nil {
		return nil, err
	}
	return &staticSession{fetcher: f, url: finalURL, html: body}, nil
}

func validURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, &FetchError{Kind: KindInvalidURL, URL: rawURL, Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &FetchError{Kind: KindInvalidURL, URL: rawURL, Reason: "url must be absolute http(s)"}
	}
	return u, nil
}

// get 은 본문을 선언된(Content-Type) 또는 감지된(meta 태그) 인코딩에서 UTF-8 로 변환해 반환한다.
func (f *StaticFetcher) get(ctx context.Context, rawURL string) (string, string, error) {
	u, err := validURL(rawURL)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", "", &FetchError{Kind: KindInvalidURL, URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", wrap(rawURL, KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", "", &FetchError{Kind: KindHTTPStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBody), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", "", wrap(rawURL, KindNetwork, fmt.Errorf("decode body: %w", err))
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", "", wrap(rawURL, KindNetwork, fmt.Errorf("read body: %w", err))
	}
	return string(body), resp.Request.URL.String(), nil
}

type staticSession struct {
	fetcher *StaticFetcher
	url     string
	html    string
}

func (s *staticSession) URL() string { return s.url }

func (s *staticSession) HTML(context.Context) (string, error) { return s.html, nil }

// Probe 는 브라우저 클릭 대신 일치하는 링크의 href 를 한 번 더 GET 한다.
// 실패하면 현재 페이지를 그대로 유지한다.
func (s *staticSession) Probe(ctx context.Context, phrases []string) (bool, error) {
	href, ok := extractor.FindProbeLink(s.html, phrases)
	if !ok {
		return false, nil
	}
	base, err := url.Parse(s.url)
	if err != nil {
		return false, &FetchError{Kind: KindInvalidURL, URL: s.url, Err: err}
	}
	ref, err := url.Parse(href)
	if err != nil {
		return false, &FetchError{Kind: KindInvalidURL, URL: href, Err: err}
	}
	target := base.ResolveReference(ref).String()

	body, finalURL, err := s.fetcher.get(ctx, target)
	if err != nil {
		return false, err
	}
	if err := checkBody(target, body); err != nil {
		return false, err
	}
	s.url, s.html = finalURL, body
	return true, nil
}

func (s *staticSession) Close() error { return nil }
