package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"resalepulse/internal/config"
	"resalepulse/pkg/contracts/domain"
)

// Snapshot is one complete, immutable fetch result. Aggregations key their
// memoization on ID, so a new fetch always invalidates downstream caches.
type Snapshot struct {
	ID        uuid.UUID                  `json:"id"`
	FetchedAt time.Time                  `json:"fetched_at"`
	Months    []string                   `json:"months"`
	Records   []domain.ResaleTransaction `json:"records"`
}

// Client pages through the datastore search API. All requests share one rate
// limiter so concurrent month fetches still respect the upstream pacing
// budget.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	resourceID    string
	pageSize      int
	maxRetries    int
	retryBackoff  time.Duration
	maxConcurrent int
	limiter       *rate.Limiter
	logger        *slog.Logger
	metrics       *Metrics
}

// NewClient creates a datastore client from configuration.
func NewClient(cfg config.DatastoreConfig, logger *slog.Logger, metrics *Metrics) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		baseURL:       cfg.BaseURL,
		resourceID:    cfg.ResourceID,
		pageSize:      cfg.PageSize,
		maxRetries:    cfg.MaxRetries,
		retryBackoff:  cfg.RetryBackoff,
		maxConcurrent: cfg.MaxConcurrent,
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:        logger.With(slog.String("component", "datastore_client")),
		metrics:       metrics,
	}
}

// FetchWindow fetches every record for the given months and assembles them
// into a single snapshot. Months are fetched concurrently up to the
// configured limit; any month failing fails the whole fetch, so callers
// never observe a partially populated window.
func (c *Client) FetchWindow(ctx context.Context, months []string) (*Snapshot, error) {
	start := time.Now()
	c.logger.InfoContext(ctx, "fetching transaction window",
		slog.Int("months", len(months)))

	byMonth := make([][]domain.ResaleTransaction, len(months))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)
	for i, month := range months {
		i, month := i, month
		g.Go(func() error {
			records, err := c.fetchMonth(gctx, month)
			if err != nil {
				return fmt.Errorf("fetch month %s: %w", month, err)
			}
			byMonth[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if c.metrics != nil {
			c.metrics.FetchesTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	snapshot := &Snapshot{
		ID:        uuid.New(),
		FetchedAt: time.Now().UTC(),
		Months:    months,
	}
	for _, records := range byMonth {
		snapshot.Records = append(snapshot.Records, records...)
	}

	if c.metrics != nil {
		c.metrics.FetchesTotal.WithLabelValues("success").Inc()
		c.metrics.RecordsFetched.Add(float64(len(snapshot.Records)))
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}
	c.logger.InfoContext(ctx, "fetched transaction window",
		slog.String("snapshot_id", snapshot.ID.String()),
		slog.Int("record_count", len(snapshot.Records)),
		slog.String("duration", time.Since(start).String()))

	return snapshot, nil
}

// fetchMonth pages through one month's records until the datastore reports
// no more rows.
func (c *Client) fetchMonth(ctx context.Context, month string) ([]domain.ResaleTransaction, error) {
	var records []domain.ResaleTransaction
	offset := 0
	for {
		page, err := c.fetchPage(ctx, month, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		offset += len(page.Records)
		if len(page.Records) < c.pageSize || offset >= page.Total {
			break
		}
	}
	return records, nil
}

// searchResponse mirrors the datastore search envelope.
type searchResponse struct {
	Success bool         `json:"success"`
	Result  searchResult `json:"result"`
}

type searchResult struct {
	Total   int                        `json:"total"`
	Records []domain.ResaleTransaction `json:"records"`
}

// fetchPage performs one paced, retried request for a single result page.
func (c *Client) fetchPage(ctx context.Context, month string, offset int) (*searchResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.WarnContext(ctx, "retrying datastore page",
				slog.String("month", month),
				slog.Int("offset", offset),
				slog.Int("attempt", attempt),
				slog.String("error", lastErr.Error()))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryBackoff * time.Duration(attempt)):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		result, err := c.doRequest(ctx, month, offset)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("datastore page after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) doRequest(ctx context.Context, month string, offset int) (*searchResult, error) {
	filters, err := json.Marshal(map[string]string{"month": month})
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}

	params := url.Values{}
	params.Set("resource_id", c.resourceID)
	params.Set("filters", string(filters))
	params.Set("limit", fmt.Sprintf("%d", c.pageSize))
	params.Set("offset", fmt.Sprintf("%d", offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datastore request: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datastore returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode datastore response: %w", err)
	}
	if !decoded.Success {
		return nil, fmt.Errorf("datastore reported failure for month %s", month)
	}
	return &decoded.Result, nil
}

// TrailingMonths returns the n most recent month keys ending at now's month,
// ascending. It defines the configurable trailing window one refresh pulls.
func TrailingMonths(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	months := make([]string, 0, n)
	cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cursor = cursor.AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		months = append(months, cursor.Format("2006-01"))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}
