package classifier

import (
	"strings"
	"unicode/utf8"
)

// Policy 는 후보 문자열을 걸러내는 기준을 묶어 둔 것이다.
// 길이는 rune 기준이며 MinLength < len < MaxLength 인 경우만 통과한다.
type Policy struct {
	MinLength int
	MaxLength int
	// Blacklist 항목이 후보 문자열 어디에든 포함되면 제외한다 (대소문자 구분).
	Blacklist []string
}

// DefaultBlacklist 는 내비게이션, 로그인 안내, 사이트 공통 문구, 표 헤더 등
// 데이터베이스 이름이 아닌 것으로 알려진 문구 목록이다.
var DefaultBlacklist = []string{
	"首页", "主页", "返回", "更多", "登录", "登陆", "注册", "退出", "帮助",
	"访问", "联系我们", "关于我们", "网站地图", "版权所有", "Copyright",
	"上一页", "下一页", "尾页", "末页", "当前位置", "本馆概况", "读者服务",
	"馆藏目录", "开放时间", "通知公告", "新闻动态", "English", "设为首页", "加入收藏",
	"序号", "名称", "操作", "简介", "使用指南", "name", "operation", "Login", "Sign in",
}

// DefaultPolicy returns the bounds and blacklist used when nothing is configured.
func DefaultPolicy() Policy {
	bl := make([]string, len(DefaultBlacklist))
	copy(bl, DefaultBlacklist)
	return Policy{
		MinLength: 2,
		MaxLength: 60,
		Blacklist: bl,
	}
}

// InBounds 는 문자열 길이(rune 수)가 두 경계 사이에 있는지 확인한다.
func (p Policy) InBounds(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > p.MinLength && n < p.MaxLength
}

// Blacklisted 는 블랙리스트 문구가 부분 문자열로 포함되어 있으면 true 를 반환한다.
// 정상적인 이름이 블랙리스트 문구를 조각으로 포함하는 경우에도 제외된다.
func (p Policy) Blacklisted(s string) bool {
	for _, phrase := range p.Blacklist {
		if phrase == "" {
			continue
		}
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

// Accept 는 길이 경계, 숫자 전용 여부, 블랙리스트를 모두 통과한 경우에만 true 다.
func (p Policy) Accept(s string) bool {
	return p.InBounds(s) && !IsNumeric(s) && !p.Blacklisted(s)
}
