// Package playwright adapts a live Chromium page, driven through
// playwright-go, to the driver interfaces. It is the production
// counterpart of the in-memory driver: controls are real DOM elements
// and every mutation dispatches genuine browser events.
package playwright

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/fillforge/pkg/driver"
)

const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	defaultTimeout        = 30000 // milliseconds
)

// Options configures a browser session.
type Options struct {
	// Headless launches the browser without a window.
	Headless bool

	// ViewportWidth and ViewportHeight size the page viewport.
	// Zero values fall back to 1280x720.
	ViewportWidth  int
	ViewportHeight int

	// Timeout is the default timeout in milliseconds for page operations.
	Timeout float64
}

// Session owns one browser, context and page. Create one per fill session
// and Close it when done.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// NewSession installs the Playwright driver if needed, starts it, and
// launches a Chromium page.
func NewSession(opts Options) (*Session, error) {
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = defaultViewportWidth
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = defaultViewportHeight
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}

	// Discard installer output so it does not interleave with CLI output.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(opts.Timeout)

	return &Session{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
	}, nil
}

// Navigate loads the given URL and waits for the load event.
func (s *Session) Navigate(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Page exposes the session's current page as a fillable driver page.
func (s *Session) Page() driver.Page {
	return &livePage{page: s.page}
}

// Close tears down the page, context, browser and the Playwright driver.
// Resource close errors are ignored so cleanup always completes.
func (s *Session) Close() error {
	_ = s.page.Close()
	_ = s.context.Close()
	_ = s.browser.Close()
	if err := s.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
