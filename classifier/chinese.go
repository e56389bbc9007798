package classifier

// CJK 통합 한자 기본 블록 범위 (U+4E00 ~ U+9FA5)
const (
	cjkStart = '\u4e00'
	cjkEnd   = '\u9fa5'
)

// IsChinese 는 문자열에 CJK 통합 한자가 하나라도 포함되어 있으면 true 를 반환한다.
// 빈 문자열은 false 다.
func IsChinese(s string) bool {
	for _, r := range s {
		if r >= cjkStart && r <= cjkEnd {
			return true
		}
	}
	return false
}
