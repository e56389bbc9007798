package fetcher

import (
	"bytes"
	"strings"
)

// IsBlocked checks whether the HTML is an anti-bot interstitial rather than real content.
func IsBlocked(html string) (bool, string) {
	if strings.Contains(html, "unusual traffic from your computer") || strings.Contains(html, "detected unusual traffic") {
		return true, "Google CAPTCHA"
	}
	if strings.Contains(html, "recaptcha") && len(html) < 10000 {
		return true, "reCAPTCHA challenge"
	}
	if strings.Contains(html, "Just a moment...") || strings.Contains(html, "Checking your browser") ||
		strings.Contains(html, "cf-browser-verification") {
		return true, "Cloudflare challenge"
	}
	if strings.Contains(html, "captcha-delivery.com") || strings.Contains(html, "DataDome") {
		return true, "DataDome bot protection"
	}
	if strings.Contains(html, "perimeterx") || strings.Contains(html, "px-captcha") {
		return true, "PerimeterX bot protection"
	}
	// 국내 WAF 류 안내 페이지는 짧다. 본문이 긴 페이지의 우연한 문구는 무시한다.
	if len(html) < 20000 {
		for _, marker := range []string{"安全验证", "人机验证", "访问过于频繁", "请完成验证"} {
			if strings.Contains(html, marker) {
				return true, "verification page"
			}
		}
	}
	return false, ""
}

// Heuristic decides when a static fetch should be promoted to the headless browser.
type Heuristic struct {
	BodyLengthThreshold int
}

// NewHeuristic creates a new promotion heuristic.
func NewHeuristic(threshold int) Heuristic {
	if threshold == 0 {
		threshold = 2048
	}
	return Heuristic{BodyLengthThreshold: threshold}
}

var spaMarkers = [][]byte{
	[]byte("__next"),
	[]byte(`id="root"`),
	[]byte(`id="app"`),
	[]byte("data-reactroot"),
	[]byte("ng-version"),
	[]byte("v-cloak"),
}

// ShouldPromote 는 정적 HTML 만으로는 목록이 비어 있을 가능성이 높을 때 true 를 반환한다.
func (h Heuristic) ShouldPromote(html string) bool {
	body := []byte(html)
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if blocked, _ := IsBlocked(html); blocked {
		return true
	}
	if len(body) < h.BodyLengthThreshold && scriptDensityHigh(body) {
		return true
	}
	for _, marker := range spaMarkers {
		if bytes.Contains(body, marker) {
			return true
		}
	}
	return false
}

func scriptDensityHigh(body []byte) bool {
	lower := strings.ToLower(string(body))
	total := len(lower)
	if total == 0 {
		return false
	}
	scriptCount := strings.Count(lower, "<script")
	return scriptCount*100/total > 3
}
