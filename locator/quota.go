package locator

import (
	"context"
	"sync"
	"time"

	"libdb-finder/config"
)

// QuotaLimiter 는 검색 API 호출에 대한 분당/일일 한도를 관리한다.
// 프로세스 하나를 전제로 인메모리로 동작하며, 재시작되면 카운터가 초기화된다.
// nil 이면 제한이 없다.
type QuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time
}

// NewQuotaLimiter 는 search 설정의 한도로 QuotaLimiter 를 생성한다.
// 값이 0 이하인 방향으로는 제한을 두지 않는다.
func NewQuotaLimiter(cfg config.SearchConfig) *QuotaLimiter {
	requestsPerDay := cfg.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	var interval time.Duration
	if cfg.RequestsPerMinute > 0 {
		interval = time.Minute / time.Duration(cfg.RequestsPerMinute)
	}

	return &QuotaLimiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
	}
}

// WaitAndReserve 는 검색 호출 전에 한도를 적용한다.
// - 일일 한도 초과: (false, nil). 호출자는 검색을 건너뛴다.
// - 컨텍스트 취소: (false, error).
func (l *QuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	if l == nil {
		return true, nil
	}
	for {
		l.mu.Lock()

		now := time.Now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			delay = time.Until(l.lastCall.Add(l.interval))
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		// 락을 풀고 기다린 뒤 상태를 다시 평가한다.
		l.mu.Unlock()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
