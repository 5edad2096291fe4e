package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	log "github.com/sirupsen/logrus"
)

// Options configures the launched Chromium instance.
type Options struct {
	Headless bool
	Stealth  bool
	Proxy    string
}

// Driver owns one Chromium process and a single tab in it.
type Driver struct {
	launcher  *launcher.Launcher
	browser   *rod.Browser
	page      *rod.Page
	closeOnce sync.Once
	closeErr  error
}

// Launch starts Chromium and opens a blank tab.
func Launch(opts Options) (*Driver, error) {
	l := launcher.New().
		Headless(opts.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	if opts.Proxy != "" {
		l = l.Proxy(opts.Proxy)
		log.Infof("🔗 Using browser proxy: %s", opts.Proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	var page *rod.Page
	if opts.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, fmt.Errorf("open page: %w", err)
	}

	log.Debugf("Browser launched (headless=%t, stealth=%t)", opts.Headless, opts.Stealth)

	return &Driver{
		launcher: l,
		browser:  b,
		page:     page,
	}, nil
}

// Navigate loads url in the tab and waits for the load event.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	p := d.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

// WaitPresent blocks until an element matching selector is in the DOM or
// timeout elapses. On timeout the returned error wraps context.DeadlineExceeded.
func (d *Driver) WaitPresent(ctx context.Context, selector string, timeout time.Duration) error {
	p := d.page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	if _, err := p.Element(selector); err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

// HTML returns the serialized DOM of the current document.
func (d *Driver) HTML(ctx context.Context) (string, error) {
	html, err := d.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}
	return html, nil
}

// Close shuts the browser down and removes its profile directory. Calls
// after the first one return the first result.
func (d *Driver) Close() error {
	d.closeOnce.Do(func() {
		if err := d.browser.Close(); err != nil {
			d.closeErr = fmt.Errorf("close browser: %w", err)
		}
		d.launcher.Kill()
		d.launcher.Cleanup()
		log.Debug("Browser closed")
	})
	return d.closeErr
}
