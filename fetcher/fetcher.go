package fetcher

import (
	"context"
	"fmt"
	"strings"

	"libdb-finder/config"
	"libdb-finder/renderer"
)

// Mode 는 페이지 수집 방식이다.
type Mode string

const (
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
	ModeAuto    Mode = "auto"
)

// ParseMode returns the mode for s; empty input selects auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeStatic:
		return ModeStatic, nil
	case ModeDynamic:
		return ModeDynamic, nil
	default:
		return "", fmt.Errorf("unsupported fetch mode: %s", s)
	}
}

// Session 은 열린 페이지 하나다. 분석 상태 머신이 landing -> probe -> final 단계 동안 붙잡고 있다.
type Session interface {
	// URL 은 현재 페이지의 주소다 (리다이렉트나 probe 이동 이후 값).
	URL() string
	HTML(ctx context.Context) (string, error)
	// Probe 는 phrases 와 일치하는 하위 목록 링크로 최대 한 번 이동한다. 이동했으면 true.
	Probe(ctx context.Context, phrases []string) (bool, error)
	Close() error
}

// Fetcher opens a Session for a URL.
type Fetcher interface {
	Open(ctx context.Context, url string) (Session, error)
}

// New 는 설정의 수집 방식에 맞는 Fetcher 를 만든다. mode 가 비어 있지 않으면 설정보다 우선한다.
func New(cfg config.FetchConfig, mode Mode) (Fetcher, error) {
	if mode == "" {
		m, err := ParseMode(cfg.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	static := NewStatic(StaticOptions{
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.StaticTimeout,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	dynamic := NewDynamic(renderer.Options{
		ChromePath:        cfg.ChromePath,
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
		SettleDelay:       cfg.SettleDelay,
		ProbeDelay:        cfg.ProbeDelay,
	})

	switch mode {
	case ModeStatic:
		return static, nil
	case ModeDynamic:
		return dynamic, nil
	case ModeAuto:
		return NewAuto(static, dynamic, NewHeuristic(cfg.PromoteBodyThreshold)), nil
	default:
		return nil, fmt.Errorf("unsupported fetch mode: %s", mode)
	}
}
