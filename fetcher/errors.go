package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind 는 수집 실패의 원인 분류다. 호출자는 이를 보고 "차단됨"과 "네트워크 오류"를 구분해 안내한다.
type Kind string

const (
	KindInvalidURL Kind = "invalid_url"
	KindTimeout    Kind = "timeout"
	KindNetwork    Kind = "network"
	KindHTTPStatus Kind = "http_status"
	KindBlocked    Kind = "blocked"
	KindNavigation Kind = "navigation"
	KindEmpty      Kind = "empty"
)

// FetchError is the typed failure returned by every Fetcher.
type FetchError struct {
	Kind       Kind
	URL        string
	StatusCode int
	// Reason 은 사람이 읽을 수 있는 부가 설명이다 (예: 차단 페이지 종류).
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or "" when err is not a FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// checkBody 는 본문이 비었거나 차단 페이지면 해당 종류의 FetchError 를 반환한다.
func checkBody(rawURL, body string) error {
	if strings.TrimSpace(body) == "" {
		return &FetchError{Kind: KindEmpty, URL: rawURL, Reason: "empty response body"}
	}
	if blocked, reason := IsBlocked(body); blocked {
		return &FetchError{Kind: KindBlocked, URL: rawURL, Reason: reason}
	}
	return nil
}

// wrap 은 하위 라이브러리 에러를 타임아웃/네트워크/기본 종류로 분류한다.
func wrap(rawURL string, fallback Kind, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	kind := fallback
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &FetchError{Kind: kind, URL: rawURL, Err: err}
}
