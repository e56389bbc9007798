package fetcher

import (
	"context"

	"libdb-finder/config"
)

// AutoFetcher 는 정적 수집을 먼저 시도하고, 결과가 스크립트 렌더링을 필요로 하거나
// 차단/실패한 것으로 보이면 브라우저 수집으로 승격한다.
type AutoFetcher struct {
	static    Fetcher
	dynamic   Fetcher
	heuristic Heuristic
}

func NewAuto(static, dynamic Fetcher, heuristic Heuristic) *AutoFetcher {
	return &AutoFetcher{static: static, dynamic: dynamic, heuristic: heuristic}
}

func (f *AutoFetcher) Open(ctx context.Context, rawURL string) (Session, error) {
	s, err := f.static.Open(ctx, rawURL)
	if err == nil {
		html, herr := s.HTML(ctx)
		if herr == nil && !f.heuristic.ShouldPromote(html) {
			return s, nil
		}
		s.Close()
		config.Logger.Infof("fetcher: promoting %s to headless browser", rawURL)
	} else {
		if KindOf(err) == KindInvalidURL {
			return nil, err
		}
		config.Logger.Infof("fetcher: static fetch failed (%v), retrying %s with headless browser", err, rawURL)
	}
	return f.dynamic.Open(ctx, rawURL)
}
