package httpclient

import (
	"net/http"
	"time"

	"libdb-finder/config"
	"libdb-finder/trace"
)

// Config는 HTTP 클라이언트 공통 설정을 캡슐화한다.
type Config struct {
	Timeout time.Duration
	// UserAgent 가 비어 있지 않으면 요청에 User-Agent 헤더가 없을 때 채워 넣는다.
	UserAgent string
	// Transport 가 nil 이면 http.DefaultTransport 를 사용한다.
	Transport http.RoundTripper
}

// loggingRoundTripper는 모든 아웃바운드 HTTP 호출(검색 API, 정적 페이지 수집)에 대해
// 공통 로깅과 run id 헤더 전파를 수행한다.
type loggingRoundTripper struct {
	inner     http.RoundTripper
	userAgent string
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	runID, step := trace.NextStep(req.Context())
	if runID == "" {
		runID = req.Header.Get(trace.HeaderRunID)
		if runID == "" {
			runID = trace.NewRunID()
		}
		step = "1"
	}

	// RoundTripper 는 원본 요청을 수정하면 안 되므로 복제본에 헤더를 붙인다.
	out := req.Clone(req.Context())
	out.Header.Set(trace.HeaderRunID, runID)
	out.Header.Set(trace.HeaderStep, step)
	if l.userAgent != "" && out.Header.Get("User-Agent") == "" {
		out.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.inner.RoundTrip(out)
	duration := time.Since(start)
	if err != nil {
		config.ErrorWithFields("httpclient request failed", config.Fields{
			"method":     req.Method,
			"url":        redact(req),
			"duration":   duration.String(),
			"run_id":     runID,
			"step":       step,
			"error":      err.Error(),
		})
		return nil, err
	}

	config.DebugWithFields("httpclient request success", config.Fields{
		"method":     req.Method,
		"url":        redact(req),
		"status":     resp.StatusCode,
		"duration":   duration.String(),
		"run_id":     runID,
		"step":       step,
	})
	return resp, nil
}

// redact 는 검색 API 키가 로그에 남지 않도록 쿼리 문자열의 자격 증명 파라미터를 가린다.
func redact(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	u := *req.URL
	q := u.Query()
	for _, key := range []string{"api_key", "key", "token"} {
		if q.Has(key) {
			q.Set(key, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// New는 주어진 설정으로 http.Client를 생성한다.
// Timeout이 0이면 기본값 10초를 사용한다.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport, userAgent: cfg.UserAgent},
	}
}
