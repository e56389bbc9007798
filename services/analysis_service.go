package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"libdb-finder/classifier"
	"libdb-finder/config"
	"libdb-finder/eventbus"
	"libdb-finder/events"
	"libdb-finder/extractor"
	"libdb-finder/fetcher"
	"libdb-finder/locator"
	"libdb-finder/models"
	"libdb-finder/parser"
	"libdb-finder/trace"
)

// Outcome 은 분석 한 건의 최종 상태다. "결과 0건"은 수집 실패와 구분되는 정상 종료다.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeZeroResults  Outcome = "zero_results"
	OutcomeNoURL        Outcome = "no_url"
	OutcomeFetchFailed  Outcome = "fetch_failed"
	OutcomeInvalidInput Outcome = "invalid_input"
)

// ErrRunLogDisabled 는 감사 로그 저장소가 설정되지 않았을 때 반환된다.
var ErrRunLogDisabled = errors.New("analysis run log is not configured")

// URLLocator resolves an organization name to a candidate listing page.
type URLLocator interface {
	Locate(ctx context.Context, organization string) (locator.Located, error)
}

// FetcherFactory returns the fetcher for a collection mode.
type FetcherFactory func(mode fetcher.Mode) (fetcher.Fetcher, error)

// RunStore 는 분석 실행 기록 저장소다 (MongoDB 구현: repositories.AnalysisRunRepository).
type RunStore interface {
	Insert(ctx context.Context, run *models.AnalysisRun) error
	ListRecent(ctx context.Context, limit int) ([]models.AnalysisRun, error)
}

type AnalyzeInput struct {
	Organization string
	// URL 이 있으면 검색을 건너뛰고 그대로 사용한다 (수동 입력).
	URL  string
	Mode string
}

// Report 는 분석 한 건의 결과다. Chinese/Other 는 항상 nil 이 아닌 슬라이스다.
type Report struct {
	RunID        string    `json:"run_id"`
	Organization string    `json:"organization,omitempty"`
	SourceURL    string    `json:"source_url,omitempty"`
	FinalURL     string    `json:"final_url,omitempty"`
	PageTitle    string    `json:"page_title,omitempty"`
	SiteName     string    `json:"site_name,omitempty"`
	Query        string    `json:"query,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	Mode         string    `json:"mode"`
	Probed       bool      `json:"probed"`
	Outcome      Outcome   `json:"outcome"`
	Reason       string    `json:"reason,omitempty"`
	Detail       string    `json:"detail,omitempty"`
	Chinese      []string  `json:"chinese"`
	Other        []string  `json:"other"`
	ChineseCount int       `json:"chinese_count"`
	OtherCount   int       `json:"other_count"`
	Total        int       `json:"total"`
	StartedAt    time.Time `json:"started_at"`
	DurationMs   int64     `json:"duration_ms"`
}

// Failed reports whether the run ended before any page was analysed.
func (r *Report) Failed() bool {
	return r.Outcome == OutcomeNoURL || r.Outcome == OutcomeFetchFailed || r.Outcome == OutcomeInvalidInput
}

func (r *Report) setResult(res classifier.Result) {
	r.Chinese, r.Other = res.Chinese, res.Other
	r.ChineseCount, r.OtherCount, r.Total = len(res.Chinese), len(res.Other), res.Total()
}

type Deps struct {
	// Locator 가 nil 이면 LocatorErr 가 이유로 쓰인다 (보통 locator.ErrNoCredential).
	Locator    URLLocator
	LocatorErr error
	Fetchers   FetcherFactory
	Runs       RunStore
	Bus        eventbus.EventBus
	Topic      eventbus.Topic
}

// AnalysisService 는 landing 추출 -> (필요 시) 하위 목록 페이지 탐색 -> 최종 추출을 수행한다.
type AnalysisService struct {
	locator    URLLocator
	locatorErr error
	fetchers   FetcherFactory
	runs       RunStore
	bus        eventbus.EventBus
	topic      eventbus.Topic

	opts           extractor.Options
	probePhrases   []string
	minBeforeProbe int
	defaultMode    fetcher.Mode
}

func NewAnalysisService(cfg config.AppConfig, deps Deps) *AnalysisService {
	mode, err := fetcher.ParseMode(cfg.Fetch.Mode)
	if err != nil {
		config.Logger.Warnf("analysis: %v, falling back to %s", err, fetcher.ModeAuto)
		mode = fetcher.ModeAuto
	}
	locatorErr := deps.LocatorErr
	if deps.Locator == nil && locatorErr == nil {
		locatorErr = locator.ErrNoCredential
	}
	topic := deps.Topic
	if topic.Base() == "" {
		topic = eventbus.AnalysisTopic(cfg.EventBus)
	}
	return &AnalysisService{
		locator:        deps.Locator,
		locatorErr:     locatorErr,
		fetchers:       deps.Fetchers,
		runs:           deps.Runs,
		bus:            deps.Bus,
		topic:          topic,
		opts:           ExtractOptions(cfg.Extract),
		probePhrases:   ProbePhrases(cfg.Extract),
		minBeforeProbe: cfg.Extract.MinResultsBeforeProbe,
		defaultMode:    mode,
	}
}

// Analyze 는 실패를 에러로 돌려주지 않고 Report.Outcome/Reason 에 담는다.
// ctx 에 trace run 이 있으면 그 id 를 RunID 로 쓰고, 없으면 새 run 을 시작해
// 검색/수집 호출이 같은 id 를 헤더로 전달하게 한다.
func (s *AnalysisService) Analyze(ctx context.Context, in AnalyzeInput) *Report {
	started := time.Now()
	ctx, runID := trace.Ensure(ctx)
	report := &Report{
		RunID:        runID,
		Organization: strings.TrimSpace(in.Organization),
		SourceURL:    strings.TrimSpace(in.URL),
		Chinese:      []string{},
		Other:        []string{},
		StartedAt:    started.UTC(),
	}
	s.run(ctx, in, report)
	report.DurationMs = time.Since(started).Milliseconds()

	config.Logger.Infof("analysis %s finished: org=%q url=%s outcome=%s reason=%s chinese=%d other=%d (%dms)",
		report.RunID, report.Organization, report.FinalURL, report.Outcome, report.Reason,
		report.ChineseCount, report.OtherCount, report.DurationMs)
	s.emit(ctx, report)
	return report
}

func (s *AnalysisService) run(ctx context.Context, in AnalyzeInput, report *Report) {
	mode := s.defaultMode
	if strings.TrimSpace(in.Mode) != "" {
		m, err := fetcher.ParseMode(in.Mode)
		if err != nil {
			report.Mode = in.Mode
			report.Outcome, report.Reason, report.Detail = OutcomeInvalidInput, "unsupported_mode", err.Error()
			return
		}
		mode = m
	}
	report.Mode = string(mode)

	if report.Organization == "" && report.SourceURL == "" {
		report.Outcome, report.Reason = OutcomeInvalidInput, "organization_or_url_required"
		return
	}

	if report.SourceURL == "" {
		located, err := s.Locate(ctx, report.Organization)
		if err != nil {
			report.Outcome, report.Reason, report.Detail = OutcomeNoURL, locateReason(err), err.Error()
			return
		}
		report.SourceURL, report.Query, report.Provider = located.URL, located.Query, located.Provider
	}

	if s.fetchers == nil {
		report.Outcome, report.Reason = OutcomeFetchFailed, "fetcher_unavailable"
		return
	}
	f, err := s.fetchers(mode)
	if err != nil {
		report.Outcome, report.Reason, report.Detail = OutcomeFetchFailed, "fetcher_unavailable", err.Error()
		return
	}

	session, err := f.Open(ctx, report.SourceURL)
	if err != nil {
		report.Outcome, report.Reason, report.Detail = fetchOutcome(err), fetchReason(err), err.Error()
		return
	}
	defer func() {
		if err := session.Close(); err != nil {
			config.Logger.Warnf("analysis %s: closing session: %v", report.RunID, err)
		}
	}()

	html, err := session.HTML(ctx)
	if err != nil {
		report.Outcome, report.Reason, report.Detail = fetchOutcome(err), fetchReason(err), err.Error()
		return
	}
	result := extractor.Extract(html, s.opts)
	report.FinalURL = session.URL()

	if result.Total() < s.minBeforeProbe && len(s.probePhrases) > 0 {
		html, result = s.probe(ctx, session, report, html, result)
	}

	meta := parser.ParsePageMeta(html, report.FinalURL)
	report.PageTitle, report.SiteName = meta.Title, meta.SiteName

	report.setResult(result)
	if result.Empty() {
		report.Outcome = OutcomeZeroResults
		return
	}
	report.Outcome = OutcomeOK
}

// probe 는 하위 목록 페이지로 최대 한 번 이동한다. 이동한 페이지의 결과가 landing 보다
// 적으면 landing 결과를 유지한다. 탐색 실패는 landing 결과로 마무리한다.
func (s *AnalysisService) probe(ctx context.Context, session fetcher.Session, report *Report, landingHTML string, landing classifier.Result) (string, classifier.Result) {
	moved, err := session.Probe(ctx, s.probePhrases)
	if err != nil {
		config.Logger.Warnf("analysis %s: probe navigation failed: %v", report.RunID, err)
	}
	if !moved {
		return landingHTML, landing
	}
	report.Probed = true

	probedHTML, err := session.HTML(ctx)
	if err != nil {
		config.Logger.Warnf("analysis %s: reading probed page: %v", report.RunID, err)
		return landingHTML, landing
	}
	probed := extractor.Extract(probedHTML, s.opts)
	if probed.Total() < landing.Total() {
		config.Logger.Debugf("analysis %s: probed page has fewer names (%d < %d), keeping landing page",
			report.RunID, probed.Total(), landing.Total())
		return landingHTML, landing
	}
	report.FinalURL = session.URL()
	return probedHTML, probed
}

// Extract 는 이미 가지고 있는 HTML 에 대해 추출/분류만 수행한다.
func (s *AnalysisService) Extract(html string) classifier.Result {
	return extractor.Extract(html, s.opts)
}

// Candidates exposes the raw candidate strings of html for diagnostics.
func (s *AnalysisService) Candidates(html string) []extractor.Candidate {
	return extractor.Candidates(html, s.opts)
}

func (s *AnalysisService) Locate(ctx context.Context, organization string) (locator.Located, error) {
	if s.locator == nil {
		return locator.Located{}, s.locatorErr
	}
	return s.locator.Locate(ctx, organization)
}

// RecentRuns returns the newest audit log entries.
func (s *AnalysisService) RecentRuns(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	if s.runs == nil {
		return nil, ErrRunLogDisabled
	}
	return s.runs.ListRecent(ctx, limit)
}

// emit 은 감사 로그와 이벤트 버스에 결과를 남긴다. 실패는 로그만 남기고 응답에 영향을 주지 않는다.
func (s *AnalysisService) emit(ctx context.Context, report *Report) {
	if s.runs == nil && s.bus == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if s.runs != nil {
		if err := s.runs.Insert(ctx, toRun(report)); err != nil {
			config.Logger.Errorf("analysis %s: saving run: %v", report.RunID, err)
		}
	}

	if s.bus != nil {
		evt := events.NewAnalysisCompletedEvent(report.RunID)
		evt.Organization = report.Organization
		evt.SourceURL = report.SourceURL
		evt.FinalURL = report.FinalURL
		evt.Mode = report.Mode
		evt.Probed = report.Probed
		evt.Outcome = string(report.Outcome)
		evt.Reason = report.Reason
		evt.ChineseCount = report.ChineseCount
		evt.OtherCount = report.OtherCount
		evt.DurationMs = report.DurationMs

		msg, err := eventbus.NewJSONEvent(evt.ID, string(evt.Type), evt)
		if err != nil {
			config.Logger.Errorf("analysis %s: encoding event: %v", report.RunID, err)
			return
		}
		if err := s.bus.Publish(ctx, s.topic.Base(), msg); err != nil {
			config.Logger.Errorf("analysis %s: publishing event: %v", report.RunID, err)
		}
	}
}

func toRun(r *Report) *models.AnalysisRun {
	return &models.AnalysisRun{
		RunID:        r.RunID,
		CreatedAt:    r.StartedAt,
		Organization: r.Organization,
		SourceURL:    r.SourceURL,
		FinalURL:     r.FinalURL,
		PageTitle:    r.PageTitle,
		Mode:         r.Mode,
		Probed:       r.Probed,
		Outcome:      string(r.Outcome),
		Reason:       r.Reason,
		Chinese:      r.Chinese,
		Other:        r.Other,
		ChineseCount: r.ChineseCount,
		OtherCount:   r.OtherCount,
		DurationMs:   r.DurationMs,
	}
}

func locateReason(err error) string {
	switch {
	case errors.Is(err, locator.ErrNoCredential):
		return "no_credential"
	case errors.Is(err, locator.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, locator.ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "search_failed"
	}
}

func fetchOutcome(err error) Outcome {
	if fetcher.KindOf(err) == fetcher.KindInvalidURL {
		return OutcomeInvalidInput
	}
	return OutcomeFetchFailed
}

func fetchReason(err error) string {
	if kind := fetcher.KindOf(err); kind != "" {
		return string(kind)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return string(fetcher.KindTimeout)
	}
	return string(fetcher.KindNetwork)
}

// SearchEnabled reports whether organization names can be resolved automatically.
func (s *AnalysisService) SearchEnabled() bool { return s.locator != nil }

// RunLogEnabled reports whether finished runs are persisted.
func (s *AnalysisService) RunLogEnabled() bool { return s.runs != nil }
