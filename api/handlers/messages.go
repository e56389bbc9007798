package handlers

import (
	"fmt"

	"libdb-finder/services"
)

// outcomeMessage 는 결과 화면 상단 안내 문구다. 정상 결과에는 문구가 없다.
func outcomeMessage(r *services.Report) string {
	switch r.Outcome {
	case services.OutcomeZeroResults:
		return "页面已成功获取，但未识别出数据库名称。该页面可能不是数据库列表页，可以手动输入列表页面的网址再试。"
	case services.OutcomeNoURL:
		switch r.Reason {
		case "no_credential":
			return "未配置检索服务，无法自动查找。请手动输入数据库列表页面的网址。"
		case "quota_exceeded":
			return "今日检索次数已用完。请手动输入数据库列表页面的网址。"
		case "not_found":
			return "未能找到该机构的数据库列表页面。请手动输入网址。"
		default:
			return "检索服务暂时不可用。请稍后重试或手动输入网址。"
		}
	case services.OutcomeFetchFailed:
		switch r.Reason {
		case "blocked":
			return "目标网站拦截了自动访问（如验证码或安全验证）。请稍后重试，或手动输入其他网址。"
		case "timeout":
			return "页面加载超时。可以切换获取方式或稍后重试。"
		case "http_status":
			return "目标网站返回了错误状态。请确认网址是否正确。"
		case "empty":
			return "目标网站返回了空白页面。可以切换为浏览器获取方式再试。"
		default:
			return "页面获取失败。请检查网址或稍后重试。"
		}
	case services.OutcomeInvalidInput:
		switch r.Reason {
		case "invalid_url":
			return "网址格式不正确，请输入以 http:// 或 https:// 开头的完整网址。"
		case "unsupported_mode":
			return fmt.Sprintf("不支持的获取方式：%s", r.Mode)
		default:
			return "请输入学校 / 机构名称或数据库列表网址。"
		}
	}
	return ""
}
