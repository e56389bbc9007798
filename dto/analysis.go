package dto

import (
	"time"

	"libdb-finder/extractor"
	"libdb-finder/models"
)

// AnalyzeRequest 는 JSON API 와 HTML 폼이 함께 쓰는 분석 요청이다.
type AnalyzeRequest struct {
	Organization string `json:"organization" form:"organization" example:"复旦大学"`
	URL          string `json:"url" form:"url" example:"https://library.fudan.edu.cn/"`
	Mode         string `json:"mode" form:"mode" enums:"static,dynamic,auto" example:"auto"`
}

// ExtractRequest carries an HTML document for extraction-only requests.
type ExtractRequest struct {
	HTML string `json:"html" binding:"required"`
}

type ExtractResponse struct {
	Chinese      []string              `json:"chinese"`
	Other        []string              `json:"other"`
	ChineseCount int                   `json:"chinese_count"`
	OtherCount   int                   `json:"other_count"`
	Total        int                   `json:"total"`
	Candidates   []extractor.Candidate `json:"candidates,omitempty"`
}

type LocateResponse struct {
	Organization string `json:"organization"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Query        string `json:"query"`
	Provider     string `json:"provider"`
}

// AnalysisRunDTO 는 감사 로그 한 건이다. 이름 목록은 목록 응답에서 제외한다.
type AnalysisRunDTO struct {
	ID           string    `json:"id"`
	RunID        string    `json:"run_id"`
	CreatedAt    time.Time `json:"created_at"`
	Organization string    `json:"organization"`
	SourceURL    string    `json:"source_url"`
	FinalURL     string    `json:"final_url"`
	PageTitle    string    `json:"page_title"`
	Mode         string    `json:"mode"`
	Probed       bool      `json:"probed"`
	Outcome      string    `json:"outcome"`
	Reason       string    `json:"reason,omitempty"`
	ChineseCount int       `json:"chinese_count"`
	OtherCount   int       `json:"other_count"`
	DurationMs   int64     `json:"duration_ms"`
}

func NewAnalysisRunDTO(r models.AnalysisRun) AnalysisRunDTO {
	return AnalysisRunDTO{
		ID:           r.ID.Hex(),
		RunID:        r.RunID,
		CreatedAt:    r.CreatedAt,
		Organization: r.Organization,
		SourceURL:    r.SourceURL,
		FinalURL:     r.FinalURL,
		PageTitle:    r.PageTitle,
		Mode:         r.Mode,
		Probed:       r.Probed,
		Outcome:      r.Outcome,
		Reason:       r.Reason,
		ChineseCount: r.ChineseCount,
		OtherCount:   r.OtherCount,
		DurationMs:   r.DurationMs,
	}
}

// AnalysisRunListDTO is a concrete swagger-friendly type for the recent runs response
// swagger:model AnalysisRunListDTO
type AnalysisRunListDTO struct {
	Data  []AnalysisRunDTO `json:"data"`
	Limit int              `json:"limit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Search string `json:"search"`
	RunLog string `json:"run_log"`
}
