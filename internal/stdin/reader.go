package stdin

import (
	"bufio"
	"io"

	"github.com/dshills/sweep/internal/haystack"
)

// ReaderConfig configures a streaming candidate Reader.
type ReaderConfig struct {
	// JSON selects the --json wire-item format instead of the default
	// one-line-per-candidate format.
	JSON bool

	// Delim and Nth configure default-format field splitting (-d, --nth).
	Delim string
	Nth   NthSpec

	// BatchSize bounds how many items accumulate before a Sink call, so a
	// slow producer still republishes the ranked view promptly rather
	// than waiting for EOF (§4.6: the event loop wants early partial
	// results, not a single extend at the end).
	BatchSize int
}

// DefaultBatchSize is used when ReaderConfig.BatchSize is zero.
const DefaultBatchSize = 256

// Sink receives each batch of parsed items, in arrival order. Typically
// picker.Picker.ItemsExtend.
type Sink func(items []haystack.Item)

// Reader turns an io.Reader of candidates (default or --json format, §6)
// into a stream of haystack.Item batches delivered to a Sink, one line at
// a time so the ranker can start scoring before the source reaches EOF.
type Reader struct {
	cfg ReaderConfig
}

// NewReader creates a Reader with cfg.
func NewReader(cfg ReaderConfig) *Reader {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Reader{cfg: cfg}
}

// Run reads r line by line until EOF or a read error, delivering parsed
// items to sink in batches of at most cfg.BatchSize. A malformed --json
// line is skipped rather than aborting the whole stream, so one bad
// producer line does not take down the picker. Run returns the first hard
// read error (other than io.EOF), or nil on a clean EOF.
func (rd *Reader) Run(r io.Reader, sink Sink) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	batch := make([]haystack.Item, 0, rd.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		sink(batch)
		batch = make([]haystack.Item, 0, rd.cfg.BatchSize)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var item haystack.Item
		if rd.cfg.JSON {
			it, err := JSONToItem([]byte(line))
			if err != nil {
				continue
			}
			item = it
		} else {
			item = LineToItem(line, rd.cfg.Delim, rd.cfg.Nth)
		}

		batch = append(batch, item)
		if len(batch) >= rd.cfg.BatchSize {
			flush()
		}
	}

	flush()
	return scanner.Err()
}
