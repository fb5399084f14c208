package views

import (
	"strings"
	"testing"
)

func TestScreen_Order(t *testing.T) {
	out := (&screen{}).
		header("docs/", "3 documents").
		line("first").
		line("second").
		status("Copied: a.md", false).
		keys(BrowserKeys.Quit).
		String()

	order := []string{"docs/", "3 documents", "first", "second", "Copied: a.md", "quit"}
	last := -1
	for _, want := range order {
		i := strings.Index(out, want)
		if i < 0 {
			t.Fatalf("expected %q in %q", want, out)
		}
		if i < last {
			t.Errorf("expected %q after the previous parts", want)
		}
		last = i
	}
}

func TestScreen_EmptyStatusIsOmitted(t *testing.T) {
	with := (&screen{}).line("body").status("", true).String()
	without := (&screen{}).line("body").String()

	if with != without {
		t.Errorf("expected an empty status to add nothing, got %q vs %q", with, without)
	}
}

func TestHelpView(t *testing.T) {
	view := NewHelpModel().View()

	for _, want := range []string{"docgraph browse", "Jump to next orphaned document", "Re-run the analysis"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}
