package eventbus

import "libdb-finder/config"

// AnalysisTopic 은 분석 완료 이벤트 토픽이다. 설정이 비어 있으면 기본 이름을 쓴다.
func AnalysisTopic(cfg config.EventBusConfig) Topic {
	if cfg.Topic == "" {
		return NewTopic(config.Default().EventBus.Topic)
	}
	return NewTopic(cfg.Topic)
}
