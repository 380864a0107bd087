// Package picker implements the picker state machine (C4): the live
// ranked view's cursor, the query input buffer, the prompt, the
// key-binding table, and the observable actions (select, quit, bind) they
// produce.
package picker

import (
	"sync"
	"time"
	"unicode"

	"github.com/dshills/sweep/internal/app"
	"github.com/dshills/sweep/internal/haystack"
	"github.com/dshills/sweep/internal/input/key"
	"github.com/dshills/sweep/internal/keymap"
	"github.com/dshills/sweep/internal/ranker"
)

// scorerCycle is the order `sweep.scorer.next` advances through.
var scorerCycle = []string{"fuzzy", "substr", "keep_order"}

// Config configures a new Picker.
type Config struct {
	Prompt      string
	PromptIcon  string
	Query       string
	KeepOrder   bool
	Scorer      string
	Preview     bool
	ChordTimeout time.Duration
}

// DefaultChordTimeout is the ~500ms window named in §4.4/§9 within which a
// pending multi-chord prefix must be completed or it resets.
const DefaultChordTimeout = 500 * time.Millisecond

// Picker owns the C2 haystack, the C3 ranker driving it, and the C4 state
// described above. It is safe for concurrent use: RPC handlers and the TTY
// dispatch path may call it from different goroutines.
type Picker struct {
	hs        *haystack.Haystack
	templates *haystack.Templates
	rk        *ranker.Ranker
	trie      *keymap.Trie
	log       *app.Logger

	chordTimeout time.Duration

	mu            sync.Mutex
	queryRunes    []rune
	editCursor    int
	prompt        string
	promptIcon    string
	previewShown  bool
	terminated    bool
	dispatchState keymap.State

	cursorMu      sync.Mutex
	cursorItemID  int
	hasCursorItem bool
	listIndex     int

	unsubscribeRanker func()

	terminateOnce sync.Once
	terminateCh   chan struct{}
}

// New creates a Picker with its own haystack, template registry, and
// ranker, applying cfg's initial values.
func New(cfg Config, log *app.Logger) *Picker {
	if log == nil {
		log = app.GetLogger()
	}
	log = log.WithComponent("picker")

	hs := haystack.New()
	rk := ranker.New(hs, log)
	rk.SetKeepOrder(cfg.KeepOrder)
	if cfg.Scorer != "" {
		rk.SetScorer(cfg.Scorer)
	}

	trie := keymap.NewTrie()
	_ = keymap.LoadDefaults(trie)

	timeout := cfg.ChordTimeout
	if timeout <= 0 {
		timeout = DefaultChordTimeout
	}

	p := &Picker{
		hs:           hs,
		templates:    haystack.NewTemplates(),
		rk:           rk,
		trie:         trie,
		log:          log,
		chordTimeout: timeout,
		prompt:       cfg.Prompt,
		promptIcon:   cfg.PromptIcon,
		previewShown: cfg.Preview,
		terminateCh:  make(chan struct{}),
	}
	p.dispatchState = trie.Root()

	if cfg.Query != "" {
		p.setQueryLocked([]rune(cfg.Query))
		rk.SetQuery(cfg.Query)
	}

	ch, unsub := rk.Subscribe()
	p.unsubscribeRanker = unsub
	go p.watchRanker(ch)

	return p
}

// Close releases the ranker's background goroutine and view subscription.
func (p *Picker) Close() {
	if p.unsubscribeRanker != nil {
		p.unsubscribeRanker()
	}
	p.rk.Close()
}

// Haystack returns the picker's underlying C2 store (items_extend,
// items_clear operate through it).
func (p *Picker) Haystack() *haystack.Haystack { return p.hs }

// Ranker returns the underlying C3 pipeline, exposed so the renderer can
// read View()/Progress() and Subscribe() to publish notifications.
func (p *Picker) Ranker() *ranker.Ranker { return p.rk }

// Trie returns the binding table so RPC `bind` and CLI default-loading can
// mutate it.
func (p *Picker) Trie() *keymap.Trie { return p.trie }

// FieldRegister registers a field template and returns its handle
// (`field_register`, §4.2/§4.5).
func (p *Picker) FieldRegister(f haystack.Field) int {
	return p.templates.Register(f)
}

// ItemsExtend appends items to the haystack (`items_extend`).
func (p *Picker) ItemsExtend(items []haystack.Item) {
	p.hs.Extend(items)
}

// ItemsClear resets the haystack (`items_clear`) and the cursor.
func (p *Picker) ItemsClear() {
	p.hs.Clear()
	p.cursorMu.Lock()
	p.hasCursorItem = false
	p.cursorItemID = 0
	p.listIndex = 0
	p.cursorMu.Unlock()
}

// QuerySet updates the query buffer and bumps the ranker's query epoch
// (`query_set`).
func (p *Picker) QuerySet(q string) {
	p.mu.Lock()
	p.setQueryLocked([]rune(q))
	p.mu.Unlock()
	p.rk.SetQuery(q)
}

// QueryGet returns the current query buffer text (`query_get`).
func (p *Picker) QueryGet() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.queryRunes)
}

func (p *Picker) setQueryLocked(runes []rune) {
	p.queryRunes = runes
	if p.editCursor > len(p.queryRunes) {
		p.editCursor = len(p.queryRunes)
	}
}

// PromptSet sets the prompt text and optional icon (`prompt_set`).
func (p *Picker) PromptSet(prompt string, icon *string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompt = prompt
	if icon != nil {
		p.promptIcon = *icon
	}
}

// Prompt returns the current prompt text and icon.
func (p *Picker) Prompt() (prompt, icon string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompt, p.promptIcon
}

// PreviewSet toggles (show == nil) or sets (`preview_set`) whether preview
// fields are shown.
func (p *Picker) PreviewSet(show *bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if show == nil {
		p.previewShown = !p.previewShown
	} else {
		p.previewShown = *show
	}
}

// PreviewShown reports whether preview is currently shown.
func (p *Picker) PreviewShown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.previewShown
}

// KeepOrder reports whether keep-order mode is active.
func (p *Picker) KeepOrder() bool { return p.rk.KeepOrder() }

// SetKeepOrder sets keep-order mode.
func (p *Picker) SetKeepOrder(keep bool) { p.rk.SetKeepOrder(keep) }

// ScorerID returns the active scorer's name.
func (p *Picker) ScorerID() string { return p.rk.ScorerID() }

// Terminate requests event-loop exit (`terminate`). Safe to call more than
// once or concurrently with Done being selected on.
func (p *Picker) Terminate() Action {
	p.mu.Lock()
	p.terminated = true
	p.mu.Unlock()
	p.terminateOnce.Do(func() { close(p.terminateCh) })
	return Action{Kind: ActionTerminate}
}

// Terminated reports whether Terminate has been called.
func (p *Picker) Terminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminated
}

// Done returns a channel closed once Terminate has been called, so the
// event loop can select on it instead of polling Terminated.
func (p *Picker) Done() <-chan struct{} { return p.terminateCh }

// watchRanker re-clamps the cursor (preserving item identity when
// possible, per §3) every time the ranker publishes a new view.
func (p *Picker) watchRanker(ch <-chan struct{}) {
	for range ch {
		p.reconcileCursor()
	}
}

func (p *Picker) reconcileCursor() {
	v := p.rk.View()

	p.cursorMu.Lock()
	defer p.cursorMu.Unlock()

	if v.Len() == 0 {
		p.hasCursorItem = false
		p.listIndex = 0
		return
	}

	if p.hasCursorItem {
		if idx := v.IndexOf(p.cursorItemID); idx >= 0 {
			p.listIndex = idx
			return
		}
	}

	// Previously-current item is gone (or there was none): clamp to the
	// nearest lower index, per §3.
	idx := p.listIndex
	if idx >= v.Len() {
		idx = v.Len() - 1
	}
	if idx < 0 {
		idx = 0
	}
	p.listIndex = idx
	p.cursorItemID = v.Entries[idx].ItemID
	p.hasCursorItem = true
}

// ItemsCurrent returns the item at the cursor of the latest published
// ranked view (`items_current`). ok is false when the view is empty.
func (p *Picker) ItemsCurrent() (haystack.Item, bool) {
	p.cursorMu.Lock()
	hasItem := p.hasCursorItem
	id := p.cursorItemID
	p.cursorMu.Unlock()

	if !hasItem {
		return haystack.Item{}, false
	}
	return p.hs.Item(id)
}

// CursorIndex returns the current list index into the published view, and
// whether a current item exists.
func (p *Picker) CursorIndex() (int, bool) {
	p.cursorMu.Lock()
	defer p.cursorMu.Unlock()
	return p.listIndex, p.hasCursorItem
}

// CursorMove shifts the cursor by delta rows, clamped to [0, len).
func (p *Picker) CursorMove(delta int) {
	p.moveCursorTo(func(idx, n int) int { return clamp(idx+delta, n) })
}

// CursorPage shifts the cursor by delta rows (the caller passes one page's
// worth, positive or negative), clamped to [0, len).
func (p *Picker) CursorPage(delta int) {
	p.CursorMove(delta)
}

// CursorHome moves the cursor to the first row.
func (p *Picker) CursorHome() {
	p.moveCursorTo(func(idx, n int) int { return 0 })
}

// CursorEnd moves the cursor to the last row.
func (p *Picker) CursorEnd() {
	p.moveCursorTo(func(idx, n int) int { return n - 1 })
}

func (p *Picker) moveCursorTo(next func(idx, n int) int) {
	v := p.rk.View()
	n := v.Len()

	p.cursorMu.Lock()
	defer p.cursorMu.Unlock()
	if n == 0 {
		p.hasCursorItem = false
		p.listIndex = 0
		return
	}
	idx := next(p.listIndex, n)
	idx = clamp(idx, n)
	p.listIndex = idx
	p.cursorItemID = v.Entries[idx].ItemID
	p.hasCursorItem = true
}

func clamp(idx, n int) int {
	if n <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// insertRune appends a literal printable character to the query buffer at
// the edit cursor and republishes the query.
func (p *Picker) insertRune(r rune) {
	p.mu.Lock()
	runes := append([]rune{}, p.queryRunes[:p.editCursor]...)
	runes = append(runes, r)
	runes = append(runes, p.queryRunes[p.editCursor:]...)
	p.queryRunes = runes
	p.editCursor++
	q := string(p.queryRunes)
	p.mu.Unlock()
	p.rk.SetQuery(q)
}

func isLiteral(ev key.Event) bool {
	if !ev.IsRune() {
		return false
	}
	if ev.Modifiers.HasCtrl() || ev.Modifiers.HasAlt() || ev.Modifiers.HasMeta() {
		return false
	}
	return unicode.IsPrint(ev.Rune)
}
