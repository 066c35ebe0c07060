package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserOptions configures the headless browser.
type BrowserOptions struct {
	Headless          bool
	UserAgent         string
	NavigationTimeout time.Duration
}

// BrowserPage is a Page rendered by Chrome through chromedp. Text extraction
// works on an HTML snapshot of the rendered DOM, refreshed after every action
// that can change it.
type BrowserPage struct {
	ctx        context.Context
	cancel     context.CancelFunc
	navTimeout time.Duration
	started    bool
	doc        *document
}

// NewBrowserPage starts a browser tab bound to parent. Cancelling parent or
// calling Close shuts the browser down.
func NewBrowserPage(parent context.Context, opts BrowserOptions) *BrowserPage {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = UserAgent
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1280, 2000),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancelTab := chromedp.NewContext(allocCtx)

	return &BrowserPage{
		ctx: ctx,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
		navTimeout: opts.NavigationTimeout,
	}
}

// start launches Chrome and opens the tab. chromedp binds the browser process
// to the context of the first Run, so it must be the long-lived tab context
// and never one carrying a per-call timeout.
func (p *BrowserPage) start() error {
	if p.started {
		return nil
	}
	if err := chromedp.Run(p.ctx); err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	p.started = true
	return nil
}

// run executes actions on the tab. The call is abandoned when ctx is done or
// timeout (if positive) elapses.
func (p *BrowserPage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := p.start(); err != nil {
		return err
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(p.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(p.ctx)
	}
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url and waits for the load event.
func (p *BrowserPage) Navigate(ctx context.Context, url string) error {
	p.doc = nil
	if err := p.run(ctx, p.navTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

const clickScript = `(() => {
	const labels = %s;
	const buttons = Array.from(document.querySelectorAll('button, [role="button"]'));
	for (const label of labels) {
		for (const b of buttons) {
			if ((b.innerText || '').trim().toLowerCase() === label) {
				b.click();
				return true;
			}
		}
	}
	return false;
})()`

// ClickButton clicks the first button whose trimmed label equals one of
// labels, trying labels in order. Any failure is reported as no click.
func (p *BrowserPage) ClickButton(ctx context.Context, labels []string) bool {
	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(strings.TrimSpace(l))
	}
	encoded, err := json.Marshal(lowered)
	if err != nil {
		return false
	}

	var clicked bool
	if err := p.run(ctx, 5*time.Second, chromedp.Evaluate(fmt.Sprintf(clickScript, encoded), &clicked)); err != nil {
		return false
	}
	if clicked {
		p.doc = nil
	}
	return clicked
}

// WaitFor waits until selector is present in the DOM.
func (p *BrowserPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	err := p.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery))
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %s: %w", ErrSelectorTimeout, selector, err)
}

// Scroll scrolls the window down by pixels.
func (p *BrowserPage) Scroll(ctx context.Context, pixels int) error {
	p.doc = nil
	return p.run(ctx, 0, chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", pixels), nil))
}

func (p *BrowserPage) snapshot(ctx context.Context) (*document, error) {
	if p.doc != nil {
		return p.doc, nil
	}

	var html string
	if err := p.run(ctx, 0, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("reading DOM: %w", err)
	}

	doc, err := parseDocument(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	p.doc = doc
	return doc, nil
}

// Count returns the number of elements matching selector.
func (p *BrowserPage) Count(ctx context.Context, selector string) (int, error) {
	doc, err := p.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return doc.count(selector), nil
}

// Texts returns the child texts of the index-th selector match.
func (p *BrowserPage) Texts(ctx context.Context, selector string, index int, child string) ([]string, error) {
	doc, err := p.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return doc.texts(selector, index, child)
}

// Capture writes a full-page PNG screenshot to base + ".png".
func (p *BrowserPage) Capture(ctx context.Context, base string) (string, error) {
	var buf []byte
	if err := p.run(ctx, 0, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return "", fmt.Errorf("taking screenshot: %w", err)
	}
	path := base + ".png"
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return "", fmt.Errorf("writing capture: %w", err)
	}
	return path, nil
}

// Close shuts the browser down.
func (p *BrowserPage) Close() error {
	p.cancel()
	return nil
}
