package history

import (
	"fmt"

	"github.com/dshills/sweep/internal/haystack"
)

// ToItems converts history records into haystack items for Chronicler's
// picker, keeping the order given (Store.Recent yields most-recent-first,
// which is the order `chronicler pick` shows). The command (or directory) is the active
// target field; the timestamp and exit code are presentational right-hand
// annotations (§3 "right: right-aligned annotations"), inactive so they
// never participate in matching.
func ToItems(records []Record) []haystack.Item {
	items := make([]haystack.Item, 0, len(records))
	for _, rec := range records {
		text := rec.Command
		if rec.Kind == KindDirectory || text == "" {
			text = rec.Directory
		}

		right := []haystack.Field{
			{Text: rec.Timestamp.Format("2006-01-02 15:04"), Active: false, Style: "dim"},
		}
		if rec.Kind == KindCommand && rec.ExitCode != 0 {
			right = append(right, haystack.Field{
				Text:   fmt.Sprintf("exit %d", rec.ExitCode),
				Active: false,
				Style:  "error",
			})
		}

		items = append(items, haystack.Item{
			Target: []haystack.Field{{Text: text, Active: true}},
			Right:  right,
			Preview: []haystack.Field{
				{Text: "directory: " + rec.Directory, Active: false},
			},
			Payload: rec,
		})
	}
	return items
}
