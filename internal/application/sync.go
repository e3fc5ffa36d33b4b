package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

// endpointState tracks whether the remote tier turned out to be
// uninstalled. It transitions at most once per session so the
// diagnostic is logged exactly once.
type endpointState int

const (
	endpointUnknown endpointState = iota
	endpointMissing
)

// Controller owns the load/save protocol against the two persistence
// tiers and the refresh state machine. It never fails outward: every
// failure path ends in a safe default (empty list, unchanged state, or
// a suppressed log line), so the host surface always has something to
// render.
type Controller struct {
	store   *domain.Store
	cache   ports.ItemCache
	remote  ports.RemoteStore
	scanner ports.Scanner
	log     *logrus.Logger
	refresh *Refresher

	mu           sync.Mutex
	loaded       bool
	endpoint     endpointState
	showNotebook bool
	saveSeq      uint64
	saveApplied  uint64
}

// NewController wires a controller to its store and persistence tiers.
// remote may be nil when no endpoint is configured; logger may be nil.
func NewController(store *domain.Store, cache ports.ItemCache, remote ports.RemoteStore, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.New()
	}
	return &Controller{
		store:   store,
		cache:   cache,
		remote:  remote,
		log:     logger,
		refresh: NewRefresher(0),
	}
}

// SetScanner installs the notebook scanner collaborator. Scanner
// output is folded into every loaded snapshot, deduplicated by id.
func (c *Controller) SetScanner(s ports.Scanner) {
	c.scanner = s
}

// SetShowNotebook flips the "surface notebook-derived items" setting.
// It only affects display projection and the remote load query; the
// current snapshot is not re-fetched.
func (c *Controller) SetShowNotebook(show bool) {
	c.mu.Lock()
	c.showNotebook = show
	c.mu.Unlock()
}

// ShowNotebook returns the current visibility setting.
func (c *Controller) ShowNotebook() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showNotebook
}

// Store returns the item store the controller feeds.
func (c *Controller) Store() *domain.Store {
	return c.store
}

// RefreshState returns the current refresh machine state.
func (c *Controller) RefreshState() RefreshState {
	return c.refresh.State()
}

// SetRefreshNotify registers a callback invoked on every refresh state
// transition, including the timed completed→idle one.
func (c *Controller) SetRefreshNotify(fn func(RefreshState)) {
	c.refresh.SetNotify(fn)
}

// Close tears the controller down, cancelling any pending refresh
// completion timer so no callback fires into disposed state.
func (c *Controller) Close() {
	c.refresh.Stop()
}

// Initialize runs the load protocol and seeds the store. If ctx is
// already cancelled when the load resolves, the result is discarded
// and the store is left untouched.
func (c *Controller) Initialize(ctx context.Context) {
	items := c.Load(ctx)
	if ctx.Err() != nil {
		return
	}
	c.store.Replace(items)
}

// Load runs the load protocol: remote first, local cache on any remote
// failure, empty list as the last resort. It never returns an error;
// the worst case is an empty panel. After the first call saves are
// unlocked; mutations before that must not overwrite durable state
// with a bootstrap list.
func (c *Controller) Load(ctx context.Context) []domain.Item {
	items, ok := c.loadRemote(ctx)
	if !ok {
		items = c.loadCache(ctx)
	}
	items = c.mergeScanner(ctx, items)

	// A cancelled load is discarded by the caller, so it must not
	// unlock saves: the store still holds the unseeded bootstrap list.
	if ctx.Err() == nil {
		c.mu.Lock()
		c.loaded = true
		c.mu.Unlock()
	}
	return items
}

// Refresh re-runs the load protocol and replaces the snapshot
// wholesale, driving the idle → refreshing → completed → idle machine.
// A cancelled ctx abandons the result without touching the store.
//
// Refresh runs the load and the store mutation on the caller's
// goroutine. Event-loop surfaces that read the store concurrently
// must instead run the load off-loop and apply it on-loop with the
// BeginRefresh / Load / FinishRefresh triple.
func (c *Controller) Refresh(ctx context.Context) {
	c.BeginRefresh()
	c.FinishRefresh(ctx, c.Load(ctx))
}

// BeginRefresh enters the refreshing state without running the load.
func (c *Controller) BeginRefresh() {
	c.refresh.Begin()
}

// FinishRefresh applies a loaded snapshot and completes the refresh
// cycle, or abandons the snapshot when ctx was cancelled while the
// load was in flight.
func (c *Controller) FinishRefresh(ctx context.Context, items []domain.Item) {
	if ctx.Err() != nil {
		c.refresh.Fail()
		return
	}
	c.store.Replace(items)
	c.refresh.Complete()
}

// QueueSave captures the current manual-only snapshot and persists it
// in the background. The caller's render path is not gated on the
// write; a stale save completing after a newer one is discarded by
// sequence number so the latest snapshot always wins.
func (c *Controller) QueueSave(ctx context.Context) {
	items, seq, ok := c.beginSave()
	if !ok {
		return
	}
	go c.save(context.WithoutCancel(ctx), seq, items)
}

// SaveNow persists the current manual-only snapshot synchronously.
// Used by one-shot surfaces (CLI, MCP) that exit right after mutating.
func (c *Controller) SaveNow(ctx context.Context) {
	items, seq, ok := c.beginSave()
	if !ok {
		return
	}
	c.save(ctx, seq, items)
}

func (c *Controller) beginSave() ([]domain.Item, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return nil, 0, false
	}
	c.saveSeq++
	return c.store.ManualItems(), c.saveSeq, true
}

// save writes one snapshot to both tiers. Staleness is re-checked
// before each tier write so a snapshot that was overtaken while in
// flight never lands on durable state. Cache failure is logged and
// swallowed so it never blocks the remote attempt; remote failure is
// classified per the endpoint-missing rule.
func (c *Controller) save(ctx context.Context, seq uint64, items []domain.Item) {
	if c.saveOvertaken(seq) {
		return
	}
	if err := c.cache.Save(ctx, items); err != nil {
		c.log.WithError(err).Warn("todo cache write failed")
	}

	if c.remote != nil {
		if c.saveOvertaken(seq) {
			return
		}
		if err := c.remote.Store(ctx, items); err != nil {
			c.classifyRemoteError(err, "write")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.saveSeq {
		return
	}
	c.saveApplied = seq
}

// saveOvertaken reports whether a newer save was issued since seq was
// assigned; the newer snapshot is the one that counts.
func (c *Controller) saveOvertaken(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.saveSeq {
		c.log.WithField("seq", seq).Debug("discarding stale save")
		return true
	}
	return false
}

// loadRemote attempts the remote read. On success the local cache is
// overwritten with the manual-only subset and the full collection is
// returned.
func (c *Controller) loadRemote(ctx context.Context) ([]domain.Item, bool) {
	if c.remote == nil {
		return nil, false
	}
	items, err := c.remote.Load(ctx, c.ShowNotebook())
	if err != nil {
		c.classifyRemoteError(err, "read")
		return nil, false
	}
	if err := c.cache.Save(ctx, domain.ManualOnly(items)); err != nil {
		c.log.WithError(err).Warn("todo cache overwrite failed")
	}
	return items, true
}

// loadCache reads the local tier. Any failure degrades to an empty
// list; the load protocol itself never fails.
func (c *Controller) loadCache(ctx context.Context) []domain.Item {
	items, err := c.cache.Fetch(ctx)
	if err != nil {
		c.log.WithError(err).Warn("todo cache read failed, starting empty")
		return nil
	}
	return items
}

// mergeScanner folds scanner output into a loaded snapshot. Items a
// remote load already included keep their loaded copy.
func (c *Controller) mergeScanner(ctx context.Context, items []domain.Item) []domain.Item {
	if c.scanner == nil {
		return items
	}
	scanned, err := c.scanner.Scan(ctx)
	if err != nil {
		c.log.WithError(err).Warn("notebook scan failed")
		return items
	}
	return domain.MergeByID(items, scanned)
}

// classifyRemoteError logs an uninstalled endpoint once per session
// then suppresses it; every other remote failure is logged each time.
func (c *Controller) classifyRemoteError(err error, op string) {
	if errors.Is(err, ports.ErrEndpointMissing) {
		c.mu.Lock()
		first := c.endpoint == endpointUnknown
		c.endpoint = endpointMissing
		c.mu.Unlock()
		if first {
			c.log.Info("remote todo endpoint not installed, continuing with local cache only")
		}
		return
	}
	c.log.WithError(err).Warnf("remote todo %s failed", op)
}
