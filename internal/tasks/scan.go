package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

// ScanOpts contains configuration for availability scans.
type ScanOpts struct {
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Requests per second (default: 5)
}

// scanJob is one (provider, date) availability query.
type scanJob struct {
	provider models.Provider
	date     string
}

// Scan queries availability for a date range, concurrently and rate limited.
//
// With providerID empty every provider of the category is scanned; otherwise
// only the named one. Individual query failures are recorded per day and do
// not abort the scan.
func (e *BookingEngine) Scan(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	cat models.Category,
	providerID, from, to string,
	opts ScanOpts,
) (*ScanResult, error) {
	if e.api == nil {
		return nil, shared.ErrServiceUnavailable
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	dates, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchProvidersUpdate(1, 1))

	providers, err := e.api.Providers(ctx, cat)
	if err != nil {
		return nil, err
	}
	if providerID != "" {
		var matched []models.Provider
		for _, p := range providers {
			if p.ID == providerID {
				matched = append(matched, p)
				break
			}
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("%w: unknown provider %q", shared.ErrInvalidArgument, providerID)
		}
		providers = matched
	}

	total := len(providers) * len(dates)
	result := &ScanResult{
		Category: cat,
		From:     from,
		To:       to,
		Days:     make([]DayAvailability, 0, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan scanJob, total)
	results := make(chan DayAvailability, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.scanWorker(ctx, &wg, limiter, cat, jobs, results)
	}

	go func() {
		defer close(jobs)
		for _, date := range dates {
			for _, provider := range providers {
				select {
				case <-ctx.Done():
					return
				case jobs <- scanJob{provider: provider, date: date}:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for day := range results {
		completed++
		result.Days = append(result.Days, day)

		if day.Error != nil {
			result.FailedQueries++
			e.sendProgress(progress, scanFailedUpdate(completed, total, day))
		} else {
			result.TotalSlots += len(day.Slots)
			e.sendProgress(progress, scanDayUpdate(completed, total, day))
		}
	}

	sort.Slice(result.Days, func(i, j int) bool {
		if result.Days[i].Date != result.Days[j].Date {
			return result.Days[i].Date < result.Days[j].Date
		}
		return result.Days[i].Provider.ID < result.Days[j].Provider.ID
	})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// scanWorker drains the jobs channel, one rate-limited availability query
// per job.
func (e *BookingEngine) scanWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	cat models.Category,
	jobs <-chan scanJob,
	results chan<- DayAvailability,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- DayAvailability{Date: job.date, Provider: job.provider, Error: err}
			continue
		}

		slots, err := e.api.Slots(ctx, cat, job.provider.ID, job.date)
		results <- DayAvailability{
			Date:     job.date,
			Provider: job.provider,
			Slots:    slots,
			Error:    err,
		}
	}
}

// dateRange expands an inclusive from/to pair into individual dates.
func dateRange(from, to string) ([]string, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", shared.ErrInvalidArgument, from)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", shared.ErrInvalidArgument, to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", shared.ErrInvalidArgument)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, nil
}
