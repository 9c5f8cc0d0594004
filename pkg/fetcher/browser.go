package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/dtnitsch/listing-optimizer/models"
)

// BrowserFetcher renders pages in headless Chrome, for listings whose
// content is filled in by scripts.
type BrowserFetcher struct {
	timeout   time.Duration
	settle    time.Duration
	userAgent string
	execPath  string
	logger    *slog.Logger
}

// NewBrowserFetcher locates a Chrome binary when execPath is empty.
func NewBrowserFetcher(timeout time.Duration, userAgent, execPath string, logger *slog.Logger) *BrowserFetcher {
	if execPath == "" {
		execPath = findChromeBinary()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BrowserFetcher{
		timeout:   timeout,
		settle:    2 * time.Second,
		userAgent: userAgent,
		execPath:  execPath,
		logger:    logger,
	}
}

func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (*models.FetchedPage, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.userAgent))
	}
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()
	if b.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, b.timeout)
		defer cancel()
	}

	b.logger.Info("rendering page in browser", "url", url, "chrome", b.execPath)
	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(b.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, classify(url, fmt.Errorf("chromedp: %w", err))
	}
	return NewPage(url, html, time.Now()), nil
}

func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
