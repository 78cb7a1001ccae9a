package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Manager owns one playwright runtime and one Chromium instance. A Manager is
// never shared across concurrent scrape sessions; each session acquires its
// own and releases it with Close on every exit path.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewManager(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-gpu",
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Manager{pw: pw, browser: browser}, nil
}

// NewPage creates a fresh page in its own context with a sampled browser
// identity, optional stored cookies and the automation mask applied.
func (m *Manager) NewPage(cookies []playwright.OptionalCookie) (playwright.Page, error) {
	ctx, err := m.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(RandomUserAgent()),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := ctx.AddCookies(cookies); err != nil {
			return nil, fmt.Errorf("failed to add cookies: %w", err)
		}
	}

	page, err := ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	//mask the webdriver flag before any site script runs
	if err := page.AddInitScript(playwright.Script{
		Content: playwright.String(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`),
	}); err != nil {
		return nil, fmt.Errorf("failed to add init script: %w", err)
	}

	return page, nil
}

func (m *Manager) Close() error {
	if m.browser != nil {
		m.browser.Close()
	}
	if m.pw != nil {
		return m.pw.Stop()
	}
	return nil
}
