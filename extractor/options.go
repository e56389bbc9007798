package extractor

import "libdb-finder/classifier"

// Options 는 추출 휴리스틱에 쓰이는 모든 상수를 담는다.
// 설정 파일에서 값을 바꿔 파싱 로직과 분리해 조정/테스트할 수 있다.
type Options struct {
	Policy classifier.Policy

	// StripTags 는 후보 수집 전에 통째로 제거할 태그 목록이다.
	StripTags []string

	// TableKeywords 의 출현 횟수 합이 TableKeywordMin 이상인 표만 표 우선 단계에서 사용한다.
	TableKeywords   []string
	TableKeywordMin int

	// DenseThreshold 는 밀집 컨테이너로 인정되기 위해 넘어야 하는 링크 수다.
	DenseThreshold int
}

var (
	DefaultStripTags = []string{
		"nav", "header", "footer", "script", "style", "noscript", "iframe", "form", "img",
	}
	DefaultTableKeywords = []string{
		"数据库", "资源", "题名", "名称", "已购", "订购", "中文", "外文",
		"database", "resource", "title", "subscribed", "purchased",
	}
	DefaultProbePhrases = []string{
		"全部数据库", "数据库列表", "数据库导航", "中文数据库", "外文数据库",
		"更多数据库", "电子资源", "数字资源", "资源导航", "A-Z", "Databases",
	}
)

// DefaultOptions returns the stock heuristic constants.
func DefaultOptions() Options {
	return Options{
		Policy:          classifier.DefaultPolicy(),
		StripTags:       append([]string(nil), DefaultStripTags...),
		TableKeywords:   append([]string(nil), DefaultTableKeywords...),
		TableKeywordMin: 2,
		DenseThreshold:  5,
	}
}
