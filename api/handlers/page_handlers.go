package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libdb-finder/dto"
	"libdb-finder/services"
)

type modeOption struct {
	Value string
	Label string
}

var modeOptions = []modeOption{
	{Value: "auto", Label: "自动（推荐）"},
	{Value: "static", Label: "直接请求"},
	{Value: "dynamic", Label: "浏览器渲染"},
}

type pageData struct {
	Form          dto.AnalyzeRequest
	Report        *services.Report
	Message       string
	ShowURL       bool
	SearchEnabled bool
	Modes         []modeOption
}

// IndexPage renders the empty analysis form.
func IndexPage(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.tmpl", pageData{
			Form:          dto.AnalyzeRequest{Mode: "auto"},
			ShowURL:       true,
			SearchEnabled: svc.SearchEnabled(),
			Modes:         modeOptions,
		})
	}
}

// AnalyzePage 는 폼 제출을 분석하고 결과 화면을 그린다.
// 검색/수집에 실패하면 수동 URL 입력란을 함께 보여준다.
func AnalyzePage(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form dto.AnalyzeRequest
		if err := c.ShouldBind(&form); err != nil {
			c.HTML(http.StatusBadRequest, "result.tmpl", pageData{
				Form:    form,
				Message: "请求格式不正确。",
				ShowURL: true,
				Modes:   modeOptions,
			})
			return
		}

		report := svc.Analyze(c.Request.Context(), services.AnalyzeInput{
			Organization: form.Organization,
			URL:          form.URL,
			Mode:         form.Mode,
		})

		status := http.StatusOK
		if report.Outcome == services.OutcomeInvalidInput {
			status = http.StatusBadRequest
		}
		c.HTML(status, "result.tmpl", pageData{
			Form:          form,
			Report:        report,
			Message:       outcomeMessage(report),
			ShowURL:       report.Outcome != services.OutcomeOK || form.URL != "",
			SearchEnabled: svc.SearchEnabled(),
			Modes:         modeOptions,
		})
	}
}
