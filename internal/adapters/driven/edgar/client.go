// Package edgar fetches filings from the SEC EDGAR archive: the
// submissions JSON API for filing lists and the archive host for
// document content.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
	"github.com/meridian-labs/disclose-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the proactive throttle. EDGAR's published fair
	// access policy allows 10 requests/second; stay under it.
	DefaultRate = 8.0

	// DefaultUserAgent identifies the client per EDGAR's access policy,
	// which requires a contact address in the User-Agent.
	DefaultUserAgent = "disclose-cli/1.0 (research@meridian-labs.dev)"

	submissionsBaseURL = "https://data.sec.gov"
	archiveBaseURL     = "https://www.sec.gov"
)

// Ensure Client implements the port.
var _ driven.FilingSource = (*Client)(nil)

// Client is an EDGAR API client with proactive rate limiting.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string

	// Overridable for tests.
	submissionsURL string
	archiveURL     string
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRate sets the proactive throttle in requests per second.
func WithRate(perSec float64) Option {
	return func(c *Client) {
		if perSec > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
		}
	}
}

// WithBaseURLs overrides the API hosts.
func WithBaseURLs(submissions, archive string) Option {
	return func(c *Client) {
		c.submissionsURL = strings.TrimSuffix(submissions, "/")
		c.archiveURL = strings.TrimSuffix(archive, "/")
	}
}

// NewClient creates an EDGAR client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		limiter:        rate.NewLimiter(rate.Limit(DefaultRate), 1),
		userAgent:      DefaultUserAgent,
		submissionsURL: submissionsBaseURL,
		archiveURL:     archiveBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// submissionsResponse is the EDGAR submissions JSON. Filing fields are
// parallel arrays: index i across all arrays describes one filing.
type submissionsResponse struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// ListFilings implements driven.FilingSource.
func (c *Client) ListFilings(ctx context.Context, entityID string, since time.Time) ([]domain.FilingInfo, error) {
	entityID = domain.NormalizeEntityID(entityID)
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.submissionsURL, entityID)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing filings for %s: %w", entityID, err)
	}

	var sub submissionsResponse
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, fmt.Errorf("parsing submissions for %s: %w", entityID, err)
	}

	recent := sub.Filings.Recent
	filings := make([]domain.FilingInfo, 0, len(recent.AccessionNumber))
	for i := range recent.AccessionNumber {
		info := domain.FilingInfo{
			EntityID:        entityID,
			AccessionNumber: recent.AccessionNumber[i],
		}
		if i < len(recent.Form) {
			info.FormType = recent.Form[i]
		}
		if i < len(recent.PrimaryDocument) {
			info.PrimaryDocument = recent.PrimaryDocument[i]
		}
		if i < len(recent.FilingDate) {
			if t, err := ParseFilingDate(recent.FilingDate[i]); err == nil {
				info.FilingDate = &t
			}
		}
		if !since.IsZero() && (info.FilingDate == nil || info.FilingDate.Before(since)) {
			continue
		}
		filings = append(filings, info)
	}

	logger.Debug("Listed %d filings for %s (of %d recent)", len(filings), entityID, len(recent.AccessionNumber))
	return filings, nil
}

// Download implements driven.FilingSource.
func (c *Client) Download(ctx context.Context, filing domain.FilingInfo) ([]byte, error) {
	if filing.AccessionNumber == "" || filing.PrimaryDocument == "" {
		return nil, fmt.Errorf("%w: filing is missing accession number or primary document", domain.ErrInvalidInput)
	}

	// Archive paths use the unpadded CIK and the accession number
	// without dashes.
	cik := strings.TrimLeft(domain.NormalizeEntityID(filing.EntityID), "0")
	accession := strings.ReplaceAll(filing.AccessionNumber, "-", "")
	url := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s", c.archiveURL, cik, accession, filing.PrimaryDocument)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", filing.AccessionNumber, err)
	}
	return body, nil
}

// get performs a throttled GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		retryAfter := retryAfterSeconds(resp)
		logger.Warn("Archive throttled request (status %d, retry after %ds)", resp.StatusCode, retryAfter)
		return nil, fmt.Errorf("%w: status %d, retry after %ds", domain.ErrRateLimited, resp.StatusCode, retryAfter)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

func retryAfterSeconds(resp *http.Response) int {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
