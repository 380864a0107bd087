package stdin

import (
	"strings"
	"testing"

	"github.com/dshills/sweep/internal/haystack"
)

func TestReaderDefaultFormat(t *testing.T) {
	rd := NewReader(ReaderConfig{BatchSize: 2})
	var got []haystack.Item
	err := rd.Run(strings.NewReader("one\ntwo\nthree\n"), func(items []haystack.Item) {
		got = append(got, items...)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0].Target[0].Text != "one" || got[2].Target[0].Text != "three" {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestReaderJSONFormat(t *testing.T) {
	rd := NewReader(ReaderConfig{JSON: true})
	input := `{"target":[{"text":"a","active":true}]}` + "\n" +
		`not json, skipped` + "\n" +
		`{"target":[{"text":"b","active":true}]}` + "\n"
	var got []haystack.Item
	err := rd.Run(strings.NewReader(input), func(items []haystack.Item) {
		got = append(got, items...)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items (bad line skipped), got %d", len(got))
	}
	if got[0].Target[0].Text != "a" || got[1].Target[0].Text != "b" {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestReaderEmptyLinesSkipped(t *testing.T) {
	rd := NewReader(ReaderConfig{})
	var got []haystack.Item
	err := rd.Run(strings.NewReader("a\n\n\nb\n"), func(items []haystack.Item) {
		got = append(got, items...)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
}
