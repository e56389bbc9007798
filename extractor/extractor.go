package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"libdb-finder/classifier"
	"libdb-finder/config"
)

const (
	SourceTable    = "table"
	SourceDense    = "dense"
	SourceDocument = "document"
)

// Candidate 는 분류 전에 수집된 원시 문자열과 그 출처 컨테이너다.
type Candidate struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Extract parses an HTML document and returns the classified database names.
// Empty or unparsable input yields an empty result; it never panics.
func Extract(htmlStr string, opts Options) (res classifier.Result) {
	defer func() {
		if r := recover(); r != nil {
			config.Logger.Warnf("extractor: recovered from panic: %v", r)
			res = classifier.Classify(nil)
		}
	}()

	cands := Candidates(htmlStr, opts)
	texts := make([]string, 0, len(cands))
	for _, c := range cands {
		texts = append(texts, c.Text)
	}
	return classifier.Run(texts, opts.Policy)
}

// Candidates 는 블랙리스트/분류 이전 단계의 후보 문자열을 반환한다.
// 1) 표 우선 2) 밀집 컨테이너 3) 문서 전체 순으로 범위를 정한다.
func Candidates(htmlStr string, opts Options) []Candidate {
	if strings.TrimSpace(htmlStr) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		config.Logger.Debugf("extractor: failed to parse html: %v", err)
		return nil
	}

	stripBoilerplate(doc, opts.StripTags)

	// 헤더 문구만 있는 표(스크립트가 목록을 따로 채우는 페이지)는 건너뛴다.
	if cands := tableCandidates(doc, opts); anyAccepted(cands, opts.Policy) {
		return cands
	}

	scope, source := denseContainer(doc, opts)
	return scopeCandidates(scope, source, opts)
}

func stripBoilerplate(doc *goquery.Document, tags []string) {
	if len(tags) == 0 {
		return
	}
	doc.Find(strings.Join(tags, ", ")).Remove()
}

// accept 는 수집 단계의 조건(길이 경계, 숫자 전용 제외)만 확인한다. 블랙리스트는 분류 단계에서 적용된다.
func accept(text string, policy classifier.Policy) bool {
	return policy.InBounds(text) && !classifier.IsNumeric(text)
}

func anyAccepted(cands []Candidate, policy classifier.Policy) bool {
	for _, c := range cands {
		if policy.Accept(c.Text) {
			return true
		}
	}
	return false
}

func keywordHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		hits += strings.Count(text, kw)
	}
	return hits
}

func tableCandidates(doc *goquery.Document, opts Options) []Candidate {
	if len(opts.TableKeywords) == 0 || opts.TableKeywordMin <= 0 {
		return nil
	}

	var out []Candidate
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if keywordHits(table.Text(), opts.TableKeywords) < opts.TableKeywordMin {
			return
		}
		table.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			out = append(out, cellCandidates(cell, SourceTable, opts.Policy)...)
		})
	})
	return out
}

// cellCandidates 는 셀 안에 링크가 있으면 링크 텍스트를, 없으면 셀 텍스트를 후보로 삼는다.
func cellCandidates(cell *goquery.Selection, source string, policy classifier.Policy) []Candidate {
	var out []Candidate
	anchors := cell.Find("a")
	if anchors.Length() > 0 {
		anchors.Each(func(_ int, a *goquery.Selection) {
			if text := classifier.Normalize(a.Text()); accept(text, policy) {
				out = append(out, Candidate{Text: text, Source: source})
			}
		})
		return out
	}
	if text := classifier.Normalize(cell.Text()); accept(text, policy) {
		out = append(out, Candidate{Text: text, Source: source})
	}
	return out
}

// denseContainer 는 길이 조건을 만족하는 링크들의 가장 가까운 컨테이너별로 표를 모아
// 가장 많은 링크를 가진 컨테이너를 고른다. 임계값을 넘지 못하면 문서 전체를 반환한다.
func denseContainer(doc *goquery.Document, opts Options) (*goquery.Selection, string) {
	counts := make(map[*html.Node]int)
	var order []*html.Node

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		if !opts.Policy.InBounds(classifier.Normalize(a.Text())) {
			return
		}
		parent := a.Closest("ul, ol, table, div, section")
		if parent.Length() == 0 {
			return
		}
		node := parent.Get(0)
		if _, ok := counts[node]; !ok {
			order = append(order, node)
		}
		counts[node]++
	})

	var best *html.Node
	bestCount := 0
	for _, n := range order {
		if counts[n] > bestCount {
			best, bestCount = n, counts[n]
		}
	}

	if best != nil && bestCount > opts.DenseThreshold {
		config.Logger.Debugf("extractor: dense container <%s> with %d links", best.Data, bestCount)
		return doc.FindNodes(best), SourceDense + ":" + best.Data
	}
	return doc.Selection, SourceDocument
}

func scopeCandidates(scope *goquery.Selection, source string, opts Options) []Candidate {
	var out []Candidate
	anchors := scope.Find("a")
	if anchors.Length() > 0 {
		anchors.Each(func(_ int, a *goquery.Selection) {
			if text := classifier.Normalize(a.Text()); accept(text, opts.Policy) {
				out = append(out, Candidate{Text: text, Source: source})
			}
		})
		return out
	}
	scope.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		if text := classifier.Normalize(cell.Text()); accept(text, opts.Policy) {
			out = append(out, Candidate{Text: text, Source: source})
		}
	})
	return out
}
