package statsapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/haukened/overhead-display/internal/display/domain"
)

const (
	errStatsURLRequired = "stats URL is required"
	errPeakURLRequired  = "peak URL is required"
	errInvalidURL       = "invalid URL %q: %w"
	errBuildRequest     = "build request: %w"
	errRequestFailed    = "GET %s: %w"
	errUnexpectedStatus = "GET %s: unexpected status %d"
	errReadBody         = "read body from %s: %w"
	errBodyTooLarge     = "body from %s exceeds %d bytes"
)

// DefaultTimeout bounds each request independently.
const DefaultTimeout = 3 * time.Second

// DefaultMaxBodyBytes caps response bodies; real payloads are a few kilobytes.
const DefaultMaxBodyBytes = 1 << 20

var ErrBodyTooLarge = errors.New("response body too large")

// Options configures a Client.
type Options struct {
	StatsURL     string
	PeakURL      string
	Timeout      time.Duration
	MaxBodyBytes int64
	// injectable for tests
	HTTPClient *http.Client
}

// Client fetches the statistics service's two JSON endpoints.
type Client struct {
	statsURL string
	peakURL  string
	timeout  time.Duration
	maxBody  int64
	http     *http.Client
}

// NewClient validates opts and returns a Client.
func NewClient(opts Options) (*Client, error) {
	if opts.StatsURL == "" {
		return nil, errors.New(errStatsURLRequired)
	}
	if opts.PeakURL == "" {
		return nil, errors.New(errPeakURLRequired)
	}
	for _, raw := range []string{opts.StatsURL, opts.PeakURL} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf(errInvalidURL, raw, err)
		}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	return &Client{
		statsURL: opts.StatsURL,
		peakURL:  opts.PeakURL,
		timeout:  opts.Timeout,
		maxBody:  opts.MaxBodyBytes,
		http:     opts.HTTPClient,
	}, nil
}

// StatsURL returns the stats endpoint.
func (c *Client) StatsURL() string { return c.statsURL }

// PeakURL returns the peak endpoint.
func (c *Client) PeakURL() string { return c.peakURL }

// FetchStats retrieves and decodes the current statistics.
func (c *Client) FetchStats(ctx context.Context) (domain.StatSnapshot, error) {
	body, err := c.get(ctx, c.statsURL)
	if err != nil {
		return domain.StatSnapshot{}, err
	}
	return DecodeStats(body)
}

// FetchPeak retrieves and decodes the hourly request series.
func (c *Client) FetchPeak(ctx context.Context) (domain.PeakSeries, error) {
	body, err := c.get(ctx, c.peakURL)
	if err != nil {
		return domain.PeakSeries{}, err
	}
	return DecodePeak(body)
}

// get issues one GET bounded by the client timeout.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf(errBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errRequestFailed, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBody))
		return nil, fmt.Errorf(errUnexpectedStatus, target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf(errReadBody, target, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: "+errBodyTooLarge, ErrBodyTooLarge, target, c.maxBody)
	}
	return body, nil
}
