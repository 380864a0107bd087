package stdin

import "testing"

func TestLineToItemNoSplitting(t *testing.T) {
	item := LineToItem("foo bar", "", NthSpec{})
	if len(item.Target) != 1 || item.Target[0].Text != "foo bar" || !item.Target[0].Active {
		t.Fatalf("got %+v", item)
	}
}

func TestLineToItemWithNth(t *testing.T) {
	nth, err := ParseNth("2")
	if err != nil {
		t.Fatal(err)
	}
	item := LineToItem("a,b,c", ",", nth)
	if len(item.Target) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(item.Target))
	}
	for i, f := range item.Target {
		want := i == 1
		if f.Active != want {
			t.Errorf("field %d active = %v, want %v", i, f.Active, want)
		}
	}
}

func TestParseNthOpenRange(t *testing.T) {
	nth, err := ParseNth("2..")
	if err != nil {
		t.Fatal(err)
	}
	if nth.Active(1) {
		t.Fatal("field 1 should not be active")
	}
	if !nth.Active(2) || !nth.Active(5) {
		t.Fatal("fields >= 2 should be active")
	}
}

func TestParseNthCommaList(t *testing.T) {
	nth, err := ParseNth("1,3")
	if err != nil {
		t.Fatal(err)
	}
	if !nth.Active(1) || nth.Active(2) || !nth.Active(3) {
		t.Fatalf("unexpected active set for 1,3")
	}
}

func TestParseNthBadSpec(t *testing.T) {
	if _, err := ParseNth("x"); err == nil {
		t.Fatal("expected an error for a non-numeric field spec")
	}
}

func TestJSONToItem(t *testing.T) {
	item, err := JSONToItem([]byte(`{"target":[{"text":"hello","active":true}],"payload":{"id":1}}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(item.Target) != 1 || item.Target[0].Text != "hello" {
		t.Fatalf("got %+v", item)
	}
}

func TestJSONToItemBadJSON(t *testing.T) {
	if _, err := JSONToItem([]byte("not json")); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
