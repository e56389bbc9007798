package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libdb-finder/config"
	"libdb-finder/trace"
)

const (
	// 분석 대상 HTML 이 통째로 올라올 수 있어 로그에는 앞부분만 남긴다.
	maxBodyLog = 512
)

// RequestTrace는 모든 inbound HTTP 요청에 run id 를 보장한다.
// 클라이언트가 X-Request-Id 를 보내면 그 값이 분석 실행의 run id 가 된다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		// inbound 로그는 step 0, 외부 호출(검색 API, 페이지 수집)은 1,2,3,...
		ctx := trace.WithRun(req.Context(), req.Header.Get(trace.HeaderRunID))
		c.Request = req.WithContext(ctx)
		req = c.Request

		runID := trace.RunID(ctx)
		c.Request.Header.Set(trace.HeaderRunID, runID)
		c.Writer.Header().Set(trace.HeaderRunID, runID)
		c.Writer.Header().Set(trace.HeaderStep, trace.CurrentStep(ctx))

		queryParams := map[string][]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				queryParams[key] = values
			}
		}
		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 && req.Method == http.MethodPost {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				if len(bodyBytes) > maxBodyLog {
					bodySnippet = string(bodyBytes[:maxBodyLog])
				} else {
					bodySnippet = string(bodyBytes)
				}
				// 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		c.Next()

		fields := config.Fields{
			"method":       req.Method,
			"path":         req.URL.Path,
			"query_params": queryParams,
			"status":       c.Writer.Status(),
			"duration":     time.Since(start).String(),
			"run_id":       runID,
			"steps":        trace.CurrentStep(c.Request.Context()),
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		config.InfoWithFields("completed request", fields)
	}
}
