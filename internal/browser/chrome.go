package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	browserconfig "github.com/jonesrussell/newsminer/internal/config/browser"
	"github.com/jonesrussell/newsminer/internal/logger"
)

// findTimeout bounds individual element lookups, which otherwise block until
// the surrounding context is done.
const findTimeout = 5 * time.Second

// Chrome is a Driver backed by headless Chrome via chromedp.
type Chrome struct {
	cfg *browserconfig.Config
	log logger.Interface

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChrome creates a Chrome driver. The browser process starts on Open.
func NewChrome(cfg *browserconfig.Config, log logger.Interface) *Chrome {
	return &Chrome{cfg: cfg, log: log}
}

// Open launches Chrome and loads the given URL.
func (c *Chrome) Open(ctx context.Context, url string) error {
	opts := append([]chromedp.ExecAllocatorOption{},
		chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", c.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("start-maximized", true),
		chromedp.UserAgent(c.cfg.UserAgent),
	)
	if c.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...any) {}))

	c.allocCancel = allocCancel
	c.browserCtx = browserCtx
	c.browserCancel = browserCancel

	c.log.Debug("launching browser", "url", url, "headless", c.cfg.Headless)
	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}

// Navigate loads the given URL in the open session.
func (c *Chrome) Navigate(ctx context.Context, url string) error {
	return c.run(ctx, chromedp.Navigate(url))
}

// Refresh reloads the current page.
func (c *Chrome) Refresh(ctx context.Context) error {
	return c.run(ctx, chromedp.Reload())
}

// Find returns the first element matching the CSS selector.
func (c *Chrome) Find(ctx context.Context, selector string) (Element, error) {
	nodes, err := c.nodes(ctx, selector, nil)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return &chromeElement{chrome: c, node: nodes[0]}, nil
}

// FindAll returns all elements matching the CSS selector.
func (c *Chrome) FindAll(ctx context.Context, selector string) ([]Element, error) {
	nodes, err := c.nodes(ctx, selector, nil)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &chromeElement{chrome: c, node: node})
	}
	return elements, nil
}

// Click clicks the first element matching the CSS selector.
func (c *Chrome) Click(ctx context.Context, selector string) error {
	return c.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

// Input types text into the first element matching the CSS selector.
func (c *Chrome) Input(ctx context.Context, selector, text string) error {
	return c.run(ctx, chromedp.SendKeys(selector, text, chromedp.ByQuery, chromedp.NodeVisible))
}

// SelectByText picks the option with the given visible label from the select
// element matching the CSS selector.
func (c *Chrome) SelectByText(ctx context.Context, selector, label string) error {
	js := fmt.Sprintf(`(() => {
		const sel = document.querySelector(%q);
		if (!sel) { return false; }
		for (const opt of sel.options) {
			if (opt.text.trim() === %q) {
				sel.value = opt.value;
				sel.dispatchEvent(new Event('change', {bubbles: true}));
				return true;
			}
		}
		return false;
	})()`, selector, label)

	var selected bool
	if err := c.run(ctx, chromedp.Evaluate(js, &selected)); err != nil {
		return err
	}
	if !selected {
		return fmt.Errorf("%w: option %q in %s", ErrElementNotFound, label, selector)
	}
	return nil
}

// WaitVisible blocks until the selector is visible or the timeout elapses.
func (c *Chrome) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	runCtx, cancel := context.WithTimeout(c.sessionCtx(ctx), timeout)
	defer cancel()

	err := chromedp.Run(runCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", ErrWaitTimeout, selector, timeout)
	}
	return err
}

// Close shuts the browser down.
func (c *Chrome) Close() error {
	if c.browserCancel != nil {
		c.browserCancel()
		c.browserCancel = nil
	}
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
	}
	return nil
}

// run executes chromedp actions against the session, honoring ctx.
func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	if c.browserCtx == nil {
		return errors.New("browser session not open")
	}
	return chromedp.Run(c.sessionCtx(ctx), actions...)
}

// nodes enumerates matching DOM nodes, scoped to from when non-nil.
func (c *Chrome) nodes(ctx context.Context, selector string, from *cdp.Node) ([]*cdp.Node, error) {
	runCtx, cancel := context.WithTimeout(c.sessionCtx(ctx), findTimeout)
	defer cancel()

	var nodes []*cdp.Node
	opts := []chromedp.QueryOption{chromedp.ByQueryAll, chromedp.AtLeast(0)}
	if from != nil {
		opts = append(opts, chromedp.FromNode(from))
	}
	if err := chromedp.Run(runCtx, chromedp.Nodes(selector, &nodes, opts...)); err != nil {
		return nil, fmt.Errorf("querying %s: %w", selector, err)
	}
	return nodes, nil
}

// sessionCtx derives a context tied to both the browser session and the
// caller's context.
func (c *Chrome) sessionCtx(ctx context.Context) context.Context {
	if ctx == nil || ctx == context.Background() {
		return c.browserCtx
	}
	merged, cancel := context.WithCancel(c.browserCtx)
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-merged.Done():
		}
	}()
	return merged
}

// chromeElement is an Element backed by a CDP node.
type chromeElement struct {
	chrome *Chrome
	node   *cdp.Node
}

// Find returns the first descendant matching the CSS selector.
func (e *chromeElement) Find(ctx context.Context, selector string) (Element, error) {
	nodes, err := e.chrome.nodes(ctx, selector, e.node)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return &chromeElement{chrome: e.chrome, node: nodes[0]}, nil
}

// FindAll returns all descendants matching the CSS selector.
func (e *chromeElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	nodes, err := e.chrome.nodes(ctx, selector, e.node)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &chromeElement{chrome: e.chrome, node: node})
	}
	return elements, nil
}

// Click clicks the element.
func (e *chromeElement) Click(ctx context.Context) error {
	return e.chrome.run(ctx, chromedp.MouseClickNode(e.node))
}

// Text returns the element's rendered text content.
func (e *chromeElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.chrome.run(ctx,
		chromedp.TextContent([]cdp.NodeID{e.node.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", err
	}
	return text, nil
}

// Attr returns the value of the named attribute.
func (e *chromeElement) Attr(ctx context.Context, name string) (string, error) {
	var value string
	var ok bool
	err := e.chrome.run(ctx,
		chromedp.AttributeValue([]cdp.NodeID{e.node.NodeID}, name, &value, &ok, chromedp.ByNodeID))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAttributeMissing, name)
	}
	return value, nil
}
