// Package ranker implements the parallel re-scoring pipeline (C3): it turns
// the haystack stream, the current query, and the active scorer into one
// continuously-updated ranked view, using epoch-based cancellation so that
// newer input always wins over in-flight, now-stale scoring work.
package ranker

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/kovidgoyal/go-parallel"

	"github.com/dshills/sweep/internal/app"
	"github.com/dshills/sweep/internal/haystack"
	"github.com/dshills/sweep/internal/scorer"
)

// generation identifies one scoring pass, per §4.3: (haystack_epoch,
// query_epoch, scorer_id).
type generation struct {
	haystackEpoch int64
	queryEpoch    int64
	scorerID      string
	keepOrder     bool
}

func (g generation) equal(o generation) bool {
	return g.haystackEpoch == o.haystackEpoch && g.queryEpoch == o.queryEpoch &&
		g.scorerID == o.scorerID && g.keepOrder == o.keepOrder
}

// Ranker owns the (query, scorer, keep-order) signals and republishes a
// ranked View whenever any of them, or the haystack, advances.
type Ranker struct {
	hs      *haystack.Haystack
	log     *app.Logger
	workers int

	mu        sync.Mutex
	query     string
	queryEpoch int64
	scorerID  string
	keepOrder bool

	view     atomic.Pointer[View]
	progress atomic.Pointer[Progress]

	lastPublished generation
	lastMu        sync.Mutex

	wake chan struct{}
	done chan struct{}

	subMu sync.Mutex
	subs  []chan struct{}
}

// New creates a Ranker over hs, starts its coalescing worker goroutine, and
// publishes an initial empty-query view.
func New(hs *haystack.Haystack, log *app.Logger) *Ranker {
	if log == nil {
		log = app.GetLogger()
	}
	r := &Ranker{
		hs:       hs,
		log:      log.WithComponent("ranker"),
		workers:  max(1, runtime.NumCPU()),
		scorerID: "fuzzy",
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	r.view.Store(&View{ScorerID: "fuzzy"})
	r.progress.Store(&Progress{})

	notify, _ := hs.Subscribe()
	go r.loop(notify)
	r.kick()
	return r
}

// Close stops the coalescing loop.
func (r *Ranker) Close() {
	close(r.done)
}

// SetQuery updates the query string, bumping the query epoch.
func (r *Ranker) SetQuery(q string) {
	r.mu.Lock()
	if r.query == q {
		r.mu.Unlock()
		return
	}
	r.query = q
	r.queryEpoch++
	r.mu.Unlock()
	r.kick()
}

// Query returns the current query string.
func (r *Ranker) Query() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.query
}

// SetScorer switches the active scorer by its registered name.
func (r *Ranker) SetScorer(name string) {
	if _, ok := scorer.ByName(name); !ok {
		return
	}
	r.mu.Lock()
	if r.scorerID == name {
		r.mu.Unlock()
		return
	}
	r.scorerID = name
	r.mu.Unlock()
	r.kick()
}

// ScorerID returns the active scorer's name.
func (r *Ranker) ScorerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scorerID
}

// SetKeepOrder toggles keep-order mode.
func (r *Ranker) SetKeepOrder(keep bool) {
	r.mu.Lock()
	if r.keepOrder == keep {
		r.mu.Unlock()
		return
	}
	r.keepOrder = keep
	r.mu.Unlock()
	r.kick()
}

// KeepOrder reports whether keep-order mode is active.
func (r *Ranker) KeepOrder() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keepOrder
}

// View returns the most recently published ranked view.
func (r *Ranker) View() *View {
	return r.view.Load()
}

// Progress returns the most recent progress snapshot.
func (r *Ranker) Progress() Progress {
	return *r.progress.Load()
}

// Subscribe registers a channel that receives a signal every time a new
// view is published. The returned function unsubscribes.
func (r *Ranker) Subscribe() (ch <-chan struct{}, unsubscribe func()) {
	c := make(chan struct{}, 1)
	r.subMu.Lock()
	r.subs = append(r.subs, c)
	r.subMu.Unlock()
	return c, func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		for i, sub := range r.subs {
			if sub == c {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				close(c)
				return
			}
		}
	}
}

func (r *Ranker) kick() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Ranker) loop(notify <-chan haystack.Notification) {
	for {
		select {
		case <-r.done:
			return
		case <-r.wake:
		case <-notify:
		}
		r.maybeRunGeneration()
	}
}

func (r *Ranker) currentTarget() generation {
	r.mu.Lock()
	g := generation{
		haystackEpoch: r.hs.Epoch(),
		queryEpoch:    r.queryEpoch,
		scorerID:      r.scorerID,
		keepOrder:     r.keepOrder,
	}
	r.mu.Unlock()
	return g
}

func (r *Ranker) isCurrent(target generation) bool {
	return r.currentTarget().equal(target)
}

func (r *Ranker) maybeRunGeneration() {
	target := r.currentTarget()

	r.lastMu.Lock()
	if r.lastPublished.equal(target) {
		r.lastMu.Unlock()
		return
	}
	r.lastMu.Unlock()

	r.runGeneration(target)
}

func (r *Ranker) runGeneration(target generation) {
	total := r.hs.Len()

	r.mu.Lock()
	query := r.query
	r.mu.Unlock()

	sc, ok := scorer.ByName(target.scorerID)
	if !ok {
		sc = scorer.NewFuzzy()
	}
	if target.keepOrder {
		sc2, ok2 := scorer.ByName("keep_order")
		if ok2 {
			sc = sc2
		}
	}

	if total == 0 {
		r.publish(target, nil)
		return
	}

	chunkSize := chunkSizeFor(total, r.workers)
	var scored atomic.Int64
	var matched atomic.Int64

	numChunks := (total + chunkSize - 1) / chunkSize
	results := make([][]Entry, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		lo := c * chunkSize
		hi := lo + chunkSize
		if hi > total {
			hi = total
		}
		wg.Add(1)
		go func(idx, lo, hi int) {
			defer wg.Done()
			defer r.recoverWorker()

			if !r.isCurrent(target) {
				return
			}
			items := r.hs.Snapshot(lo, hi)
			var local []Entry
			for _, it := range items {
				if !r.isCurrent(target) {
					return
				}
				entry, isMatch := scoreItem(sc, query, it)
				scored.Add(1)
				if isMatch {
					matched.Add(1)
					local = append(local, entry)
				}
			}
			results[idx] = local
		}(c, lo, hi)
	}
	wg.Wait()

	if !r.isCurrent(target) {
		return
	}

	var all []Entry
	for _, chunk := range results {
		all = append(all, chunk...)
	}

	if target.keepOrder {
		sort.Slice(all, func(i, j int) bool { return all[i].ItemID < all[j].ItemID })
	} else {
		sort.Slice(all, func(i, j int) bool {
			if all[i].Score != all[j].Score {
				return all[i].Score > all[j].Score
			}
			return all[i].ItemID < all[j].ItemID
		})
	}

	r.progress.Store(&Progress{
		TotalItems:   total,
		ScoredItems:  int(scored.Load()),
		MatchedItems: int(matched.Load()),
		Generation:   target.queryEpoch,
	})

	r.publish(target, all)
}

func (r *Ranker) publish(target generation, entries []Entry) {
	r.lastMu.Lock()
	r.lastPublished = target
	r.lastMu.Unlock()

	r.view.Store(&View{
		Entries:       entries,
		HaystackEpoch: target.haystackEpoch,
		QueryEpoch:    target.queryEpoch,
		ScorerID:      target.scorerID,
		KeepOrder:     target.keepOrder,
	})

	r.subMu.Lock()
	for _, sub := range r.subs {
		select {
		case sub <- struct{}{}:
		default:
		}
	}
	r.subMu.Unlock()
}

// recoverWorker guards a scoring goroutine: a scorer panic is impossible by
// construction (§4.3) but is caught here anyway so a corrupted item never
// takes the whole pipeline down with it.
func (r *Ranker) recoverWorker() {
	if rec := recover(); rec != nil {
		trace := parallel.Format_stacktrace_on_panic(rec, 1)
		r.log.WithField("panic", rec).WithField("stack", trace).Error("scoring worker panic recovered")
	}
}

func scoreItem(sc scorer.Scorer, query string, it haystack.Item) (Entry, bool) {
	texts, locs := it.ActiveFields()
	if len(texts) == 0 {
		if scorer.Needles(query) == nil {
			return Entry{ItemID: it.ID}, true
		}
		return Entry{}, false
	}

	fieldIDs := make([]int, len(locs))
	for i, l := range locs {
		fieldIDs[i] = encodeLoc(l)
	}

	total, positions, ok := scorer.MatchQuery(sc, query, texts, fieldIDs)
	if !ok {
		return Entry{}, false
	}

	out := make([]scorer.FieldPosition, len(positions))
	copy(out, positions)

	return Entry{ItemID: it.ID, Score: total, Positions: out}, true
}

func encodeLoc(l haystack.FieldLoc) int {
	return int(l.Region)*1_000_000 + l.Index
}

// DecodeLoc reverses encodeLoc, recovering the region and field index a
// scorer.FieldPosition.Field value refers to.
func DecodeLoc(encoded int) haystack.FieldLoc {
	return haystack.FieldLoc{
		Region: haystack.Region(encoded / 1_000_000),
		Index:  encoded % 1_000_000,
	}
}

func chunkSizeFor(total, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	size := total / workers
	if size < 64 {
		size = 64
	}
	if size > total {
		size = total
	}
	return size
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
