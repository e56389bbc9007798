package fetcher

import (
	"context"

	"libdb-finder/config"
	"libdb-finder/renderer"
)

// DynamicFetcher 는 헤드리스 브라우저로 스크립트 실행이 끝난 문서를 가져온다.
type DynamicFetcher struct {
	opts renderer.Options
}

func NewDynamic(opts renderer.Options) *DynamicFetcher {
	return &DynamicFetcher{opts: opts}
}

func (f *DynamicFetcher) Open(ctx context.Context, rawURL string) (Session, error) {
	if _, err := validURL(rawURL); err != nil {
		return nil, err
	}

	page, err := renderer.Open(ctx, rawURL, f.opts)
	if err != nil {
		return nil, wrap(rawURL, KindNavigation, err)
	}

	s := &dynamicSession{page: page, url: rawURL}
	html, err := page.HTML(ctx)
	if err != nil {
		page.Close()
		return nil, wrap(rawURL, KindNavigation, err)
	}
	if err := checkBody(rawURL, html); err != nil {
		page.Close()
		return nil, err
	}
	s.refreshURL(ctx)
	return s, nil
}

type dynamicSession struct {
	page *renderer.Page
	url  string
}

func (s *dynamicSession) URL() string { return s.url }

func (s *dynamicSession) HTML(ctx context.Context) (string, error) {
	html, err := s.page.HTML(ctx)
	if err != nil {
		return "", wrap(s.url, KindNavigation, err)
	}
	return html, nil
}

func (s *dynamicSession) Probe(ctx context.Context, phrases []string) (bool, error) {
	matched, err := s.page.ClickFirstMatching(ctx, phrases)
	if matched != "" {
		s.refreshURL(ctx)
	}
	if err != nil {
		return matched != "", wrap(s.url, KindNavigation, err)
	}
	return matched != "", nil
}

func (s *dynamicSession) refreshURL(ctx context.Context) {
	loc, err := s.page.Location(ctx)
	if err != nil {
		config.Logger.Debugf("fetcher: could not read location: %v", err)
		return
	}
	if loc != "" {
		s.url = loc
	}
}

func (s *dynamicSession) Close() error {
	return s.page.Close()
}
