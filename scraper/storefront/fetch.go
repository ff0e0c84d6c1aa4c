package storefront

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"iphone-catalog/utils"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Fetcher downloads catalog pages over HTTP. The storefront refuses
// requests without a browser User-Agent.
type Fetcher struct {
	client *resty.Client
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewFetcher creates a Fetcher with retry/backoff around each download.
func NewFetcher(maxRetries int, logger *utils.Logger) *Fetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(30 * time.Second)

	return &Fetcher{
		client: client,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// FetchCatalog downloads one catalog page and returns its body decoded
// to UTF-8.
func (f *Fetcher) FetchCatalog(ctx context.Context, url string) (io.Reader, error) {
	var body []byte

	err := f.retry.Do("fetch-catalog", func() error {
		res, err := f.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return fmt.Errorf("storefront: fetch %s: %w", url, err)
		}
		if res.StatusCode() != http.StatusOK {
			return fmt.Errorf("storefront: fetch %s: unexpected status %d", url, res.StatusCode())
		}
		body = res.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("[storefront] Fetched %s (%d bytes)", url, len(body))
	return decodeBody(body), nil
}

// decodeBody converts windows-1251 documents to UTF-8. The storefront
// serves either encoding depending on the cache tier, declared in the
// document head. Both declaration forms occur, quoted and unquoted, so
// only the charset name itself is matched.
func decodeBody(body []byte) io.Reader {
	head := bytes.ToLower(body[:min(len(body), 1024)])
	if bytes.Contains(head, []byte("windows-1251")) {
		return transform.NewReader(bytes.NewReader(body), charmap.Windows1251.NewDecoder())
	}
	return bytes.NewReader(body)
}
