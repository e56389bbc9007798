// Package trace carries the analysis run id through a request.
//
// 하나의 run id 가 inbound 요청(X-Request-Id), 실행 기록(run_id),
// analysis.completed 이벤트, 외부 호출(검색 API, 페이지 수집) 헤더에 함께 쓰인다.
package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	HeaderRunID = "X-Request-Id"
	HeaderStep  = "X-Span-Id"
)

type runKey struct{}

// Run 은 분석 실행 하나다. step 은 외부 호출마다 1,2,3,... 증가하고 inbound 는 0 이다.
type Run struct {
	ID    string
	steps atomic.Int64
}

// NewRunID returns a fresh run id.
func NewRunID() string {
	return uuid.NewString()
}

// WithRun 은 id 로 새 Run 을 시작한 컨텍스트를 반환한다. id 가 비어 있으면 새로 만든다.
func WithRun(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRunID()
	}
	return context.WithValue(ctx, runKey{}, &Run{ID: id})
}

// Ensure 는 컨텍스트에 Run 이 있으면 그대로, 없으면 새 Run 을 붙여 반환한다.
func Ensure(ctx context.Context) (context.Context, string) {
	if r := from(ctx); r != nil {
		return ctx, r.ID
	}
	ctx = WithRun(ctx, "")
	return ctx, from(ctx).ID
}

func from(ctx context.Context) *Run {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(runKey{}).(*Run)
	return r
}

// RunID returns the run id stored in ctx, or "".
func RunID(ctx context.Context) string {
	if r := from(ctx); r != nil {
		return r.ID
	}
	return ""
}

// CurrentStep 은 현재 step 번호를 증가 없이 반환한다.
func CurrentStep(ctx context.Context) string {
	r := from(ctx)
	if r == nil {
		return "0"
	}
	return strconv.FormatInt(r.steps.Load(), 10)
}

// NextStep 은 외부 호출 하나를 기록하고 (run id, step) 을 반환한다.
// Run 이 없으면 둘 다 빈 문자열이다.
func NextStep(ctx context.Context) (string, string) {
	r := from(ctx)
	if r == nil {
		return "", ""
	}
	return r.ID, strconv.FormatInt(r.steps.Add(1), 10)
}
