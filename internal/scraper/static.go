package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DocumentPage is a Page backed by a single HTTP GET. It runs no JavaScript:
// clicks and scrolls are no-ops, and WaitFor succeeds only if the selector is
// present in the fetched HTML.
type DocumentPage struct {
	client    *http.Client
	userAgent string
	html      []byte
	doc       *document
}

// NewDocumentPage creates a DocumentPage with the given request timeout.
func NewDocumentPage(timeout time.Duration) *DocumentPage {
	return &DocumentPage{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: UserAgent,
	}
}

// Navigate fetches url and parses the response body.
func (p *DocumentPage) Navigate(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}

	doc, err := parseDocument(bytes.NewReader(body))
	if err != nil {
		return err
	}

	p.html = body
	p.doc = doc
	return nil
}

// ClickButton always reports false: a static document has nothing to click.
func (p *DocumentPage) ClickButton(ctx context.Context, labels []string) bool {
	return false
}

// WaitFor checks the fetched document once; it never waits.
func (p *DocumentPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if p.doc == nil {
		return ErrNotLoaded
	}
	if p.doc.count(selector) == 0 {
		return fmt.Errorf("%w: %s", ErrSelectorTimeout, selector)
	}
	return nil
}

// Scroll is a no-op.
func (p *DocumentPage) Scroll(ctx context.Context, pixels int) error {
	return nil
}

// Count returns the number of elements matching selector.
func (p *DocumentPage) Count(ctx context.Context, selector string) (int, error) {
	if p.doc == nil {
		return 0, ErrNotLoaded
	}
	return p.doc.count(selector), nil
}

// Texts returns the child texts of the index-th selector match.
func (p *DocumentPage) Texts(ctx context.Context, selector string, index int, child string) ([]string, error) {
	if p.doc == nil {
		return nil, ErrNotLoaded
	}
	return p.doc.texts(selector, index, child)
}

// Capture writes the fetched HTML to base + ".html".
func (p *DocumentPage) Capture(ctx context.Context, base string) (string, error) {
	if p.html == nil {
		return "", ErrNotLoaded
	}
	path := base + ".html"
	if err := os.WriteFile(path, p.html, 0644); err != nil {
		return "", fmt.Errorf("writing capture: %w", err)
	}
	return path, nil
}

// Close is a no-op.
func (p *DocumentPage) Close() error {
	return nil
}
