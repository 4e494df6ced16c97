package livesearch

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"bindery/internal/logging"
	"bindery/internal/naver"
)

// Results is one delivery to the presentation layer. Query is empty when the
// input was cleared; Err is set when the issued search failed.
type Results struct {
	Query string
	Items []naver.Item
	Err   error
}

// Controller implements the search-as-you-type discipline for the live
// panel: each keystroke resets a fixed debounce delay, a query identical to
// the last one actually issued is skipped entirely, and responses carry a
// monotonic sequence so a slow stale response can never overwrite a fresher
// one. One instance is constructed per session; all state lives on the
// instance.
type Controller struct {
	searcher naver.Searcher
	deliver  func(Results)
	delay    time.Duration
	display  int
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	timer     *time.Timer
	lastQuery string
	issued    uint64
	delivered uint64
	closed    bool
}

// Options configures a Controller.
type Options struct {
	Searcher naver.Searcher
	Deliver  func(Results)
	Delay    time.Duration
	Display  int
	Logger   *slog.Logger
}

// New constructs a controller. Searcher and Deliver are required.
func New(opts Options) (*Controller, error) {
	if opts.Searcher == nil {
		return nil, errors.New("live search requires a searcher")
	}
	if opts.Deliver == nil {
		return nil, errors.New("live search requires a delivery callback")
	}
	if opts.Delay <= 0 {
		opts.Delay = 450 * time.Millisecond
	}
	if opts.Display <= 0 {
		opts.Display = 12
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		searcher: opts.Searcher,
		deliver:  opts.Deliver,
		delay:    opts.Delay,
		display:  opts.Display,
		logger:   logging.NewComponentLogger(opts.Logger, "livesearch"),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Input feeds one keystroke's worth of query text. An empty query cancels
// any pending search and clears the panel immediately.
func (c *Controller) Input(query string) {
	query = strings.TrimSpace(query)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if query == "" {
		c.lastQuery = ""
		c.mu.Unlock()
		c.deliver(Results{})
		return
	}
	c.timer = time.AfterFunc(c.delay, func() { c.fire(query) })
	c.mu.Unlock()
}

// Close stops pending work. Responses already in flight are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancel()
}

func (c *Controller) fire(query string) {
	c.mu.Lock()
	if c.closed || query == c.lastQuery {
		c.mu.Unlock()
		return
	}
	c.lastQuery = query
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	resp, err := c.searcher.Search(c.ctx, query, c.display)

	c.mu.Lock()
	if c.closed || seq <= c.delivered {
		// A fresher response already reached the panel.
		c.mu.Unlock()
		return
	}
	c.delivered = seq
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("live search failed", logging.String("query", query), logging.Error(err))
		c.deliver(Results{Query: query, Err: err})
		return
	}
	c.deliver(Results{Query: query, Items: resp.Items})
}
