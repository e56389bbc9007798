package extractor_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdb-finder/extractor"
)

const keywordTableHTML = `<html><body>
<header><a href="/">首页</a><a href="/login">登录</a></header>
<table>
  <caption>已购数据库 · 数据库导航</caption>
  <tr><td>中国知网</td></tr>
  <tr><td>Web of Science</td></tr>
  <tr><td>首页</td></tr>
  <tr><td>123</td></tr>
</table>
</body></html>`

func TestExtractKeywordTable(t *testing.T) {
	res := extractor.Extract(keywordTableHTML, extractor.DefaultOptions())

	assert.Equal(t, []string{"中国知网"}, res.Chinese)
	assert.Equal(t, []string{"Web of Science"}, res.Other)
}

func TestExtractEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		res := extractor.Extract(in, extractor.DefaultOptions())
		assert.Empty(t, res.Chinese)
		assert.Empty(t, res.Other)
		assert.True(t, res.Empty())
	}
}

func TestExtractMalformedMarkup(t *testing.T) {
	assert.NotPanics(t, func() {
		res := extractor.Extract("<table><tr><td><a>中国知网</td></div></span>", extractor.DefaultOptions())
		assert.True(t, res.Total() <= 1)
	})
}

func TestExtractTableCellPrefersAnchors(t *testing.T) {
	doc := `<table>
	<tr><th>序号</th><th>数据库名称</th><th>操作</th></tr>
	<tr><td>1</td><td><a href="https://kns.cnki.net">中国知网</a> (镜像)</td><td><a href="#">访问</a></td></tr>
	<tr><td>2</td><td><a href="https://www.wanfangdata.com.cn">万方数据知识服务平台</a></td><td><a href="#">访问</a></td></tr>
	<tr><td>3</td><td><a href="https://ieeexplore.ieee.org">IEEE Xplore</a></td><td><a href="#">访问</a></td></tr>
	</table>`

	res := extractor.Extract(doc, extractor.DefaultOptions())

	assert.Equal(t, []string{"中国知网", "万方数据知识服务平台"}, res.Chinese)
	assert.Equal(t, []string{"IEEE Xplore"}, res.Other)
}

func TestExtractTableBelowKeywordThresholdIsIgnored(t *testing.T) {
	doc := `<table><tr><td>数据库</td></tr><tr><td>Scopus</td></tr></table>
	<p><a href="/x">ProQuest</a></p>`

	cands := extractor.Candidates(doc, extractor.DefaultOptions())
	require.NotEmpty(t, cands)
	for _, c := range cands {
		assert.Equal(t, extractor.SourceDocument, c.Source)
	}
	assert.Equal(t, "ProQuest", cands[0].Text)
}

func denseListHTML(n int) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="sidebar"><a href="/a">新闻中心链接</a><a href="/b">规章制度链接</a></div><ul class="db-list">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<li><a href="/db/%d">Database %c</a></li>`, i, 'A'+i)
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}

func TestExtractDenseContainer(t *testing.T) {
	res := extractor.Extract(denseListHTML(6), extractor.DefaultOptions())

	assert.Empty(t, res.Chinese, "links outside the dense container are not collected")
	assert.Len(t, res.Other, 6)
	assert.Equal(t, "Database A", res.Other[0])

	cands := extractor.Candidates(denseListHTML(6), extractor.DefaultOptions())
	require.NotEmpty(t, cands)
	assert.Equal(t, "dense:ul", cands[0].Source)
}

func TestExtractHeaderOnlyTableFallsBackToDenseList(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><table><tr><th>数据库名称</th><th>数据库简介</th></tr></table><ul>`)
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, `<li><a href="/db/%d">Database %c</a></li>`, i, 'A'+i)
	}
	b.WriteString(`</ul></body></html>`)

	res := extractor.Extract(b.String(), extractor.DefaultOptions())

	assert.Empty(t, res.Chinese)
	assert.Len(t, res.Other, 8)

	cands := extractor.Candidates(b.String(), extractor.DefaultOptions())
	require.NotEmpty(t, cands)
	assert.Equal(t, "dense:ul", cands[0].Source)
}

func TestExtractDenseThresholdMustBeExceeded(t *testing.T) {
	// 링크 5개는 임계값(5)을 넘지 못하므로 문서 전체를 스캔한다.
	res := extractor.Extract(denseListHTML(5), extractor.DefaultOptions())

	assert.Equal(t, []string{"新闻中心链接", "规章制度链接"}, res.Chinese)
	assert.Len(t, res.Other, 5)
}

func TestExtractStripsBoilerplate(t *testing.T) {
	doc := `<html><body>
	<nav><a href="/">Library Portal</a></nav>
	<script>var x = "<a>Injected Name</a>";</script>
	<form><a href="/s">Search Helper</a></form>
	<footer><a href="/c">Contact Office</a></footer>
	<p><a href="/db">SpringerLink</a></p>
	</body></html>`

	res := extractor.Extract(doc, extractor.DefaultOptions())

	assert.Equal(t, []string{"SpringerLink"}, res.Other)
}

func TestExtractDeduplicates(t *testing.T) {
	doc := `<p><a href="/1">EBSCOhost</a><a href="/2">EBSCOhost</a><a href="/3">  EBSCOhost </a><a href="/4">超星数字图书馆</a><a href="/5">超星数字图书馆</a></p>`

	res := extractor.Extract(doc, extractor.DefaultOptions())

	assert.Equal(t, []string{"EBSCOhost"}, res.Other)
	assert.Equal(t, []string{"超星数字图书馆"}, res.Chinese)
}

func TestExtractScopeWithoutAnchorsUsesCells(t *testing.T) {
	opts := extractor.DefaultOptions()
	opts.TableKeywords = nil

	doc := `<table><tr><td>Nature Journals</td><td>42</td></tr></table>`
	res := extractor.Extract(doc, opts)

	assert.Equal(t, []string{"Nature Journals"}, res.Other)
}

func TestExtractOutputsAreDisjoint(t *testing.T) {
	docs := []string{keywordTableHTML, denseListHTML(8), `<a>中文 Mixed</a><a>Mixed</a>`}
	for _, doc := range docs {
		res := extractor.Extract(doc, extractor.DefaultOptions())
		chinese := map[string]bool{}
		for _, n := range res.Chinese {
			chinese[n] = true
		}
		for _, n := range res.Other {
			assert.False(t, chinese[n])
		}
	}
}

func TestFindProbeLink(t *testing.T) {
	doc := `<nav>
	<a href="javascript:void(0)">全部数据库</a>
	<a href="/resources">电子资源</a>
	<a href="/dbs?type=all">全部数据库 (128)</a>
	</nav>`

	href, ok := extractor.FindProbeLink(doc, extractor.DefaultProbePhrases)
	require.True(t, ok)
	assert.Equal(t, "/dbs?type=all", href, "higher priority phrase wins and javascript links are skipped")

	_, ok = extractor.FindProbeLink(`<a href="/about">About</a>`, extractor.DefaultProbePhrases)
	assert.False(t, ok)

	_, ok = extractor.FindProbeLink("", extractor.DefaultProbePhrases)
	assert.False(t, ok)
}
