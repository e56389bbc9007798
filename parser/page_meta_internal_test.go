package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func countingFallbacks(t *testing.T, title string) *int {
	t.Helper()
	calls := 0
	saved := fallbackSteps
	fallbackSteps = []func(*PageMeta, string, string){
		func(m *PageMeta, _, _ string) {
			calls++
			fill(m, title, "")
		},
		func(*PageMeta, string, string) { calls++ },
	}
	t.Cleanup(func() { fallbackSteps = saved })
	return &calls
}

func TestFallbacksSkippedWhenTitleFound(t *testing.T) {
	calls := countingFallbacks(t, "unused")

	meta := ParsePageMeta(`<html><head><title>电子资源</title></head><body><p>中国知网</p></body></html>`, "")

	assert.Equal(t, "电子资源", meta.Title)
	assert.Empty(t, meta.SiteName)
	assert.Equal(t, 0, *calls)
}

func TestFallbacksRunUntilTitleFound(t *testing.T) {
	calls := countingFallbacks(t, "数据库列表")

	meta := ParsePageMeta(`<ul><li><a href="/a">中国知网</a></li></ul>`, "")

	assert.Equal(t, "数据库列表", meta.Title)
	assert.Equal(t, 1, *calls)
}
