package metrics

import (
	"context"
	"strconv"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/odpi/itinfra/pkg/logger"
)

// EntityCounter counts stored entities by type name.
type EntityCounter interface {
	CountEntities(ctx context.Context) (map[string]int, error)
}

// ElementCountCollector refreshes the element gauges on a cron schedule.
type ElementCountCollector struct {
	sources func() map[string]EntityCounter
	cron    *cron.Cron
	log     *logger.Logger

	mu    sync.Mutex
	known map[string]map[string]struct{}
}

// NewElementCountCollector schedules a refresh of the counts of every server
// returned by sources. schedule uses cron syntax, including descriptors such
// as "@every 1m".
func NewElementCountCollector(schedule string, sources func() map[string]EntityCounter, log *logger.Logger) (*ElementCountCollector, error) {
	if log == nil {
		log = logger.NewDefault("element-counts")
	}
	c := &ElementCountCollector{
		sources: sources,
		cron:    cron.New(),
		log:     log,
		known:   make(map[string]map[string]struct{}),
	}
	if _, err := c.cron.AddFunc(schedule, func() { _ = c.Refresh(context.Background()) }); err != nil {
		return nil, err
	}
	return c, nil
}

// Start runs the schedule in the background.
func (c *ElementCountCollector) Start() {
	c.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish or ctx
// to expire.
func (c *ElementCountCollector) Stop(ctx context.Context) error {
	done := c.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh recounts the elements of every server now. Types that disappeared
// since the previous refresh are reset to zero.
func (c *ElementCountCollector) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for server, counter := range c.sources() {
		counts, err := counter.CountEntities(ctx)
		if err != nil {
			c.log.WithError(err).WithField("server", server).Warn("count elements failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		seen := make(map[string]struct{}, len(counts))
		for typeName, n := range counts {
			elementCounts.WithLabelValues(server, typeName).Set(float64(n))
			seen[typeName] = struct{}{}
		}
		for typeName := range c.known[server] {
			if _, ok := seen[typeName]; !ok {
				elementCounts.WithLabelValues(server, typeName).Set(0)
			}
		}
		c.known[server] = seen
	}
	elementCountRefreshes.WithLabelValues(strconv.FormatBool(firstErr == nil)).Inc()
	return firstErr
}
