package parser

import (
	"net/url"
	"strings"

	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"libdb-finder/config"
)

// PageMeta 는 결과 화면의 출처 표기에 쓰는 페이지 제목과 사이트 이름이다.
type PageMeta struct {
	Title    string `json:"title,omitempty"`
	SiteName string `json:"site_name,omitempty"`
}

// fallbackSteps 는 readability 와 원시 <title> 로도 제목을 못 찾았을 때만 실행한다.
// 사이트 이름은 og:site_name 이 없으면 비워 둔다.
var fallbackSteps = []func(m *PageMeta, htmlStr, pageURL string){
	fromTrafilatura,
	fromGoose,
}

// ParsePageMeta 는 readability -> 원시 <title>/og:site_name -> trafilatura -> GoOse 순서로
// 비어 있는 필드만 채운다. 어떤 파서가 실패해도 에러 없이 가능한 만큼 반환한다.
func ParsePageMeta(htmlStr string, pageURL string) PageMeta {
	var meta PageMeta
	if strings.TrimSpace(htmlStr) == "" {
		return meta
	}

	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return meta
	}

	var baseURL *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			baseURL = u
		}
	}

	safely(&meta, func(m *PageMeta) { fromReadability(m, doc, baseURL) })
	safely(&meta, func(m *PageMeta) { fromRawDocument(m, doc) })

	for _, step := range fallbackSteps {
		if meta.Title != "" {
			break
		}
		safely(&meta, func(m *PageMeta) { step(m, htmlStr, pageURL) })
	}
	return meta
}

// safely 는 서드파티 파서가 이상한 마크업에서 panic 하더라도 분석을 멈추지 않게 한다.
func safely(m *PageMeta, step func(*PageMeta)) {
	defer func() {
		if r := recover(); r != nil {
			config.Logger.Warnf("parser: page meta step panicked: %v", r)
		}
	}()
	step(m)
}

func fill(m *PageMeta, title, siteName string) {
	if m.Title == "" {
		m.Title = clean(title)
	}
	if m.SiteName == "" {
		m.SiteName = clean(siteName)
	}
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func fromReadability(m *PageMeta, doc *html.Node, baseURL *url.URL) {
	article, err := readability.FromDocument(doc, baseURL)
	if err != nil {
		return
	}
	fill(m, article.Title, article.SiteName)
}

func fromTrafilatura(m *PageMeta, htmlStr, _ string) {
	result, err := trafilatura.Extract(strings.NewReader(htmlStr), trafilatura.Options{})
	if err != nil || result == nil {
		return
	}
	fill(m, result.Metadata.Title, result.Metadata.Sitename)
}

func fromGoose(m *PageMeta, htmlStr, pageURL string) {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, pageURL)
	if err != nil || article == nil {
		return
	}
	fill(m, article.Title, "")
}

func fromRawDocument(m *PageMeta, doc *html.Node) {
	fill(m, findTitle(doc), findMetaContent(doc, "property", "og:site_name"))
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return n.FirstChild.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findMetaContent(n *html.Node, key, value string) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var matched bool
		var content string
		for _, attr := range n.Attr {
			switch strings.ToLower(attr.Key) {
			case key:
				matched = strings.EqualFold(strings.TrimSpace(attr.Val), value)
			case "content":
				content = attr.Val
			}
		}
		if matched && content != "" {
			return content
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findMetaContent(c, key, value); v != "" {
			return v
		}
	}
	return ""
}
