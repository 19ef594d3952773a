// Package browser implements a transport which loads documents in Chrome driven via DevTools protocol. It may be
// used for servers which refuse to serve non-browser clients.
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"slices"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/KonishchevDmitry/feedloader/pkg/transport"
	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

const (
	screenWidth, screenHeight     = 1728, 1117
	viewportWidth, viewportHeight = 1664, 992
)

// Configure starts the browser (or connects to the remote one) and returns a context bound to it. The returned
// function stops the browser.
func Configure(ctx context.Context, opts ...Option) (_ context.Context, _ func(), retErr error) {
	if chromedp.FromContext(ctx) != nil {
		return ctx, nil, errors.New("an attempt to configure browser when it's already configured")
	}

	var options options
	for _, opt := range opts {
		opt(&options)
	}

	logging.L(ctx).Debugf("Configuring the browser...")

	var closers []func()
	stop := func() {
		logging.L(ctx).Debugf("Stopping the browser...")
		for _, close := range slices.Backward(closers) {
			close()
		}
		logging.L(ctx).Debugf("The browser has stopped.")
	}
	defer func() {
		if retErr != nil {
			stop()
		}
	}()

	var (
		allocatorContext context.Context
		cancelAllocator  func()
	)

	if remote, ok := options.remote.Get(); ok {
		allocatorContext, cancelAllocator = chromedp.NewRemoteAllocator(ctx, remote)
		closers = append(closers, cancelAllocator)
	} else {
		userDataDir, err := os.MkdirTemp("", "feedloader-browser-*")
		if err != nil {
			return ctx, nil, err
		}
		closers = append(closers, func() {
			if err := os.RemoveAll(userDataDir); err != nil {
				logging.L(ctx).Errorf("Failed to delete browser data directory %q: %s.", userDataDir, err)
			}
		})

		execOptions := append(allocatorOptions(userDataDir, options.headful),
			chromedp.ModifyCmdFunc(func(cmd *exec.Cmd) {
				logging.L(ctx).Debugf("Starting the browser: %s", shellescape.QuoteCommand(
					append([]string{cmd.Path}, cmd.Args...)))
			}))

		allocatorContext, cancelAllocator = chromedp.NewExecAllocator(ctx, execOptions...)
		closers = append(closers, cancelAllocator)
	}

	browserCtx, cancelBrowser := chromedp.NewContext(allocatorContext, chromedp.WithLogf(func(format string, args ...any) {
		logging.L(ctx).Debugf("Browser: "+format, args...)
	}))
	closers = append(closers, cancelBrowser)

	// Start the browser, connect to it and initialize the context
	if err := chromedp.Run(browserCtx); err != nil {
		return ctx, nil, err
	}

	return browserCtx, stop, nil
}

// See https://peter.sh/experiments/chromium-command-line-switches/ for option docs.
//
// Don't use flag wrappers, because they may implicitly enable other flags (like chromedp.Headless does).
func allocatorOptions(userDataDir string, headful bool) []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("no-default-browser-check", true),

		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-background-networking", true),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),

		chromedp.Flag("use-mock-keychain", true),

		chromedp.Flag("user-data-dir", userDataDir),
		chromedp.Flag("headless", !headful),

		// https://developer.mozilla.org/en-US/docs/Web/API/Navigator/webdriver
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	}
}

// Client is a transport.Client which loads the documents in the browser configured by Configure.
type Client struct {
	ctx     context.Context
	timeout time.Duration
}

var _ transport.Client = &Client{}

func NewClient(ctx context.Context, timeout time.Duration) (*Client, error) {
	if context := chromedp.FromContext(ctx); context == nil || context.Browser == nil {
		return nil, errors.New("the browser is not configured")
	}
	return &Client{
		ctx:     ctx,
		timeout: timeout,
	}, nil
}

func (c *Client) Get(url *url.URL, completion transport.Completion) {
	go func() {
		completion(c.get(url))
	}()
}

func (c *Client) get(url *url.URL) transport.Outcome {
	ctx, cancelTimeout := context.WithTimeout(c.ctx, c.timeout)
	defer cancelTimeout()

	// We need to create a child context to be able to use browser concurrently
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	logging.L(ctx).Debugf("Fetching %s using the browser...", url)

	var text, html string
	response, err := chromedp.RunResponse(ctx,
		&emulation.SetDeviceMetricsOverrideParams{
			Width:  viewportWidth,
			Height: viewportHeight,

			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
		chromedp.Navigate(url.String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Chrome renders non-HTML documents inside <pre>
		chromedp.Evaluate(`(document.querySelector("body > pre") || document.body).innerText`, &text),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		logging.L(ctx).Warnf("Failed to fetch %s using the browser: %s.", url, err)
		return transport.Failure(fmt.Errorf("failed to fetch %s: %w", url, err))
	} else if response == nil {
		return transport.Failure(fmt.Errorf("failed to fetch %s: the browser got no response", url))
	}

	body := text
	if response.MimeType == "text/html" {
		body = html
	}

	logging.L(ctx).Debugf("%s: the server returned %d status code.", url, response.Status)
	return transport.Success(int(response.Status), []byte(body))
}
