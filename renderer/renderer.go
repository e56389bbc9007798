package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"libdb-finder/config"
)

const USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// Options 는 브라우저 세션 한 번에 적용되는 설정이다.
type Options struct {
	ChromePath        string
	UserAgent         string
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	ProbeDelay        time.Duration
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = USER_AGENT
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = 30 * time.Second
	}
	if o.ChromePath == "" {
		o.ChromePath = os.Getenv("CHROME_PATH")
	}
	return o
}

// Page 는 하나의 헤드리스 브라우저와 그 안의 탭이다.
// Open 이 성공하면 호출자는 어떤 경로로 끝나든 반드시 Close 를 호출해야 한다.
type Page struct {
	ctx     context.Context
	cancels []context.CancelFunc
	opts    Options
	once    sync.Once
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(opts.UserAgent),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-crashpad", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	return allocOpts
}

// Open 은 브라우저를 띄우고 url 로 이동한 뒤 body 가 준비될 때까지 기다리고,
// 스크립트가 목록을 채울 수 있도록 SettleDelay 만큼 더 기다린다.
// 실패하면 브라우저를 닫고 에러를 반환한다.
func Open(ctx context.Context, url string, opts Options) (*Page, error) {
	opts = opts.withDefaults()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	p := &Page{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		opts:    opts,
	}

	// 첫 Run 이 브라우저를 띄운다. 타임아웃 컨텍스트로 띄우면 타임아웃과 함께 브라우저가 죽으므로 분리한다.
	if err := chromedp.Run(browserCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("renderer: start browser: %w", err)
	}

	navCtx, cancel := context.WithTimeout(browserCtx, opts.NavigationTimeout)
	defer cancel()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		p.Close()
		return nil, fmt.Errorf("renderer: navigate %s: %w", url, err)
	}

	if err := p.settle(opts.SettleDelay); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Page) settle(d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if err := chromedp.Run(p.ctx, chromedp.Sleep(d)); err != nil {
		return fmt.Errorf("renderer: settle: %w", err)
	}
	return nil
}

// HTML 은 현재 렌더링된 문서 전체를 반환한다.
func (p *Page) HTML(ctx context.Context) (string, error) {
	runCtx, cancel := p.runContext(ctx)
	defer cancel()

	var htmlContent string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("renderer: capture html: %w", err)
	}
	return htmlContent, nil
}

// Location returns the current page URL (after redirects or a probe click).
func (p *Page) Location(ctx context.Context) (string, error) {
	runCtx, cancel := p.runContext(ctx)
	defer cancel()

	var loc string
	if err := chromedp.Run(runCtx, chromedp.Location(&loc)); err != nil {
		return "", err
	}
	return loc, nil
}

const clickScript = `(function(phrases) {
	const anchors = Array.from(document.querySelectorAll('a'));
	for (const phrase of phrases) {
		for (const a of anchors) {
			const text = (a.innerText || a.textContent || '').replace(/\s+/g, ' ').trim();
			if (!phrase || text.indexOf(phrase) < 0) continue;
			const href = (a.getAttribute('href') || '').trim().toLowerCase();
			if (href.startsWith('mailto:')) continue;
			a.removeAttribute('target');
			a.click();
			return phrase;
		}
	}
	return '';
})(%s)`

// ClickFirstMatching 은 보이는 텍스트에 phrases 중 하나를 포함하는 첫 링크를 한 번 클릭하고
// ProbeDelay 만큼 기다린다. 클릭한 문구를 반환하며, 해당 링크가 없으면 빈 문자열이다.
func (p *Page) ClickFirstMatching(ctx context.Context, phrases []string) (string, error) {
	if len(phrases) == 0 {
		return "", nil
	}
	encoded, err := json.Marshal(phrases)
	if err != nil {
		return "", err
	}

	runCtx, cancel := p.runContext(ctx)
	defer cancel()

	var matched string
	if err := chromedp.Run(runCtx, chromedp.Evaluate(fmt.Sprintf(clickScript, encoded), &matched)); err != nil {
		return "", fmt.Errorf("renderer: probe click: %w", err)
	}
	if matched == "" {
		return "", nil
	}
	config.Logger.Debugf("renderer: clicked link matching %q", matched)

	if err := chromedp.Run(runCtx, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return matched, fmt.Errorf("renderer: wait after probe: %w", err)
	}
	if err := p.settle(p.opts.ProbeDelay); err != nil {
		return matched, err
	}
	return matched, nil
}

// runContext 는 브라우저 컨텍스트에 호출자의 취소와 NavigationTimeout 을 함께 건다.
func (p *Page) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(p.ctx, p.opts.NavigationTimeout)
	if ctx == nil {
		return runCtx, cancel
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Close 는 탭과 브라우저 프로세스를 정리한다. 여러 번 호출해도 안전하다.
func (p *Page) Close() error {
	p.once.Do(func() {
		for _, cancel := range p.cancels {
			cancel()
		}
	})
	return nil
}
