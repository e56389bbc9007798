package renderer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdb-finder/renderer"
)

const scriptedPage = `<html><body><ul id="list"></ul>
<a href="/all">全部数据库</a>
<script>
setTimeout(function() {
	var ul = document.getElementById('list');
	['中国知网', 'Web of Science'].forEach(function(n) {
		var li = document.createElement('li');
		li.innerHTML = '<a href="#">' + n + '</a>';
		ul.appendChild(li);
	});
}, 100);
</script></body></html>`

const allPage = `<html><body><p>Scopus</p></body></html>`

func requireChrome(t *testing.T) {
	t.Helper()
	if os.Getenv("CHROME_PATH") == "" {
		t.Skip("CHROME_PATH not set; skipping headless browser test")
	}
}

func newSite() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(scriptedPage))
	})
	mux.HandleFunc("/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(allPage))
	})
	return httptest.NewServer(mux)
}

func TestPageHTMLWaitsForScripts(t *testing.T) {
	requireChrome(t)
	site := newSite()
	defer site.Close()

	page, err := renderer.Open(context.Background(), site.URL, renderer.Options{
		SettleDelay: 500 * time.Millisecond,
	})
	require.NoError(t, err)
	defer page.Close()

	html, err := page.HTML(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, "中国知网")
	assert.Contains(t, html, "Web of Science")
}

func TestClickFirstMatching(t *testing.T) {
	requireChrome(t)
	site := newSite()
	defer site.Close()

	page, err := renderer.Open(context.Background(), site.URL, renderer.Options{
		SettleDelay: 200 * time.Millisecond,
		ProbeDelay:  300 * time.Millisecond,
	})
	require.NoError(t, err)
	defer page.Close()

	matched, err := page.ClickFirstMatching(context.Background(), []string{"不存在的链接", "全部数据库"})
	require.NoError(t, err)
	assert.Equal(t, "全部数据库", matched)

	html, err := page.HTML(context.Background())
	require.NoError(t, err)
	assert.Contains(t, html, "Scopus")

	loc, err := page.Location(context.Background())
	require.NoError(t, err)
	assert.Equal(t, site.URL+"/all", loc)
}

func TestOpenUnreachable(t *testing.T) {
	requireChrome(t)

	_, err := renderer.Open(context.Background(), "http://127.0.0.1:1/", renderer.Options{
		NavigationTimeout: 5 * time.Second,
	})
	assert.Error(t, err)
}
