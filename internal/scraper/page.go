package scraper

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is a rendered web page the scraper can drive.
type Page interface {
	// Navigate loads url and waits for its content.
	Navigate(ctx context.Context, url string) error
	// ClickButton clicks the first button whose label matches one of labels.
	// It is best effort and reports whether a click happened.
	ClickButton(ctx context.Context, labels []string) bool
	// WaitFor blocks until selector matches or timeout elapses, in which case
	// it returns an error wrapping ErrSelectorTimeout.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	// Scroll scrolls the page down by pixels to trigger lazy loading.
	Scroll(ctx context.Context, pixels int) error
	// Count returns the number of elements matching selector.
	Count(ctx context.Context, selector string) (int, error)
	// Texts returns the cleaned text of every element matching child inside
	// the index-th element matching selector, in document order.
	Texts(ctx context.Context, selector string, index int, child string) ([]string, error)
	// Capture writes a debug artifact next to base and returns its path.
	Capture(ctx context.Context, base string) (string, error)
	// Close releases the page.
	Close() error
}

// document wraps a parsed HTML snapshot.
type document struct {
	doc *goquery.Document
}

func parseDocument(r io.Reader) (*document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &document{doc: doc}, nil
}

func (d *document) count(selector string) int {
	return d.doc.Find(selector).Length()
}

func (d *document) texts(selector string, index int, child string) ([]string, error) {
	matches := d.doc.Find(selector)
	if index < 0 || index >= matches.Length() {
		return nil, fmt.Errorf("%w: %s[%d]", ErrNoSuchElement, selector, index)
	}

	texts := make([]string, 0)
	matches.Eq(index).Find(child).Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, cleanText(sel.Text()))
	})
	return texts, nil
}

// cleanText trims s and collapses whitespace runs, which rendered markup
// leaves behind from indentation and line breaks.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
