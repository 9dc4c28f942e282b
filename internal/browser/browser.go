// Package browser wraps a headless Chrome session used to visit conference
// websites. One exec allocator is shared for the whole run; each visit opens a
// fresh tab with its own deadline.
package browser

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single site visit when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Page holds everything captured from a single site visit.
type Page struct {
	StatusCode int
	FinalURL   string
	Title      string
	HTML       string
	Screenshot []byte
}

// Options configures a Browser.
type Options struct {
	// Timeout is the per-visit navigation deadline.
	Timeout time.Duration
	// CaptureScreenshots enables full-page PNG capture on each visit.
	CaptureScreenshots bool
}

// Browser owns the shared headless Chrome allocator.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	capture     bool
}

// New creates a Browser with a headless exec allocator. Chrome itself is
// launched lazily on the first visit.
func New(opts Options) *Browser {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), execOpts...)

	return &Browser{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		timeout:     timeout,
		capture:     opts.CaptureScreenshots,
	}
}

// Close shuts down the allocator and any Chrome process it launched.
func (b *Browser) Close() {
	if b.allocCancel != nil {
		b.allocCancel()
	}
}

// Visit navigates to url in a fresh tab and captures the document status
// code, final URL, title, rendered HTML, and (optionally) a full-page PNG
// screenshot. A navigation error or timeout is returned to the caller; it
// never aborts the rest of the run.
func (b *Browser) Visit(url string) (*Page, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	// The listener fires on a separate goroutine; record the first document
	// response atomically.
	var docStatus atomic.Int64
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument {
			return
		}
		docStatus.CompareAndSwap(0, resp.Response.Status)
	})

	page := &Page{}
	actions := []chromedp.Action{
		network.Enable(),
		chromedp.EmulateViewport(1440, 900),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&page.Title),
		chromedp.Location(&page.FinalURL),
		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
	}
	if b.capture {
		actions = append(actions, chromedp.FullScreenshot(&page.Screenshot, 100))
	}

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}

	page.StatusCode = int(docStatus.Load())
	return page, nil
}
