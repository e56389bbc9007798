package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"libdb-finder/dto"
	"libdb-finder/locator"
	"libdb-finder/services"
)

const maxHTMLBytes = 8 << 20

// AnalyzeHandler godoc
// @Summary      Analyze a library database listing
// @Description  Locate (or use the given URL), fetch, extract and classify database names. Failures are reported in outcome/reason, not as HTTP errors.
// @Tags         analyses
// @Accept       json
// @Param        request  body  dto.AnalyzeRequest  true  "organization and/or url"
// @Produce      json
// @Success      200  {object}  services.Report
// @Failure      400  {object}  services.Report
// @Router       /analyses [post]
func AnalyzeHandler(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		report := svc.Analyze(c.Request.Context(), services.AnalyzeInput{
			Organization: req.Organization,
			URL:          req.URL,
			Mode:         req.Mode,
		})
		if report.Outcome == services.OutcomeInvalidInput {
			c.JSON(http.StatusBadRequest, report)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// ExtractHandler godoc
// @Summary      Extract database names from HTML
// @Description  Accepts {"html": "..."} as JSON, or the raw document as text/html.
// @Tags         analyses
// @Accept       json
// @Accept       html
// @Param        raw      query  bool                false  "include raw candidate strings"
// @Param        request  body   dto.ExtractRequest  true   "html document"
// @Produce      json
// @Success      200  {object}  dto.ExtractResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /extract [post]
func ExtractHandler(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxHTMLBytes)

		var html string
		if strings.HasPrefix(c.ContentType(), "application/json") {
			var req dto.ExtractRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
				return
			}
			html = req.HTML
		} else {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
				return
			}
			html = string(body)
		}

		res := svc.Extract(html)
		resp := dto.ExtractResponse{
			Chinese:      res.Chinese,
			Other:        res.Other,
			ChineseCount: len(res.Chinese),
			OtherCount:   len(res.Other),
			Total:        res.Total(),
		}
		if raw, _ := strconv.ParseBool(c.Query("raw")); raw {
			resp.Candidates = svc.Candidates(html)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// LocateHandler godoc
// @Summary      Locate the database listing page of an organization
// @Tags         analyses
// @Param        organization  query  string  true  "organization name"
// @Produce      json
// @Success      200  {object}  dto.LocateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /locate [get]
func LocateHandler(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		org := strings.TrimSpace(c.Query("organization"))
		if org == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "organization is required"})
			return
		}

		located, err := svc.Locate(c.Request.Context(), org)
		if err != nil {
			c.JSON(locateStatus(err), dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.LocateResponse{
			Organization: org,
			URL:          located.URL,
			Title:        located.Title,
			Query:        located.Query,
			Provider:     located.Provider,
		})
	}
}

func locateStatus(err error) int {
	switch {
	case errors.Is(err, locator.ErrNoCredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, locator.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, locator.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// ListRunsHandler godoc
// @Summary      List recent analyses
// @Description  Newest first. Requires the MongoDB run log.
// @Tags         analyses
// @Param        limit  query  int  false  "max items (<=100)"
// @Produce      json
// @Success      200  {object}  dto.AnalysisRunListDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /analyses [get]
func ListRunsHandler(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		runs, err := svc.RecentRuns(c.Request.Context(), limit)
		if err != nil {
			if errors.Is(err, services.ErrRunLogDisabled) {
				c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
			return
		}
		out := make([]dto.AnalysisRunDTO, 0, len(runs))
		for _, r := range runs {
			out = append(out, dto.NewAnalysisRunDTO(r))
		}
		c.JSON(http.StatusOK, dto.AnalysisRunListDTO{Data: out, Limit: limit})
	}
}

// HealthHandler reports which optional collaborators are wired.
func HealthHandler(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status: "ok",
			Search: enabled(svc.SearchEnabled()),
			RunLog: enabled(svc.RunLogEnabled()),
		})
	}
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
