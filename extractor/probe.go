package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"libdb-finder/classifier"
)

// FindProbeLink returns the href of the first anchor whose visible text contains
// one of the phrases. Phrases are tried in priority order.
func FindProbeLink(htmlStr string, phrases []string) (string, bool) {
	if strings.TrimSpace(htmlStr) == "" || len(phrases) == 0 {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", false
	}

	anchors := doc.Find("a[href]")
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		var href string
		anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if !strings.Contains(classifier.Normalize(a.Text()), phrase) {
				return true
			}
			h := strings.TrimSpace(a.AttrOr("href", ""))
			if !navigable(h) {
				return true
			}
			href = h
			return false
		})
		if href != "" {
			return href, true
		}
	}
	return "", false
}

func navigable(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	lower := strings.ToLower(href)
	return !strings.HasPrefix(lower, "javascript:") && !strings.HasPrefix(lower, "mailto:")
}
