package classifier

// Result 는 한 번의 분석에서 나온 중문/기타 데이터베이스 이름 목록이다.
// 두 목록은 서로소이며 각 목록 안에 같은 문자열은 한 번만 나온다.
type Result struct {
	Chinese []string `json:"chinese"`
	Other   []string `json:"other"`
}

// Total returns the number of names across both buckets.
func (r Result) Total() int {
	return len(r.Chinese) + len(r.Other)
}

// Empty reports whether no names were found.
func (r Result) Empty() bool {
	return r.Total() == 0
}

// Filter keeps the candidates accepted by the policy, in input order.
func Filter(candidates []string, policy Policy) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if policy.Accept(c) {
			out = append(out, c)
		}
	}
	return out
}

// Dedupe 는 정확히 같은 문자열을 하나로 합친다. 처음 등장한 순서를 유지한다.
func Dedupe(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Classify 는 이름 목록을 중문/기타로 나눈다. 입력은 이미 중복 제거된 것으로 가정하지 않는다.
func Classify(names []string) Result {
	res := Result{Chinese: []string{}, Other: []string{}}
	for _, name := range Dedupe(names) {
		if IsChinese(name) {
			res.Chinese = append(res.Chinese, name)
		} else {
			res.Other = append(res.Other, name)
		}
	}
	return res
}

// Run normalizes, filters, deduplicates and classifies raw candidate strings.
func Run(candidates []string, policy Policy) Result {
	normalized := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if n := Normalize(c); n != "" {
			normalized = append(normalized, n)
		}
	}
	return Classify(Filter(normalized, policy))
}
