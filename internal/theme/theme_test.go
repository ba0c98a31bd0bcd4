package theme

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestDefaultStylesPopulated(t *testing.T) {
	s := Default()
	for name, style := range map[string]interface{}{
		"Frame":     s.Frame,
		"Title":     s.Title,
		"Item":      s.Item,
		"Selected":  s.SelectedItem,
		"TableHead": s.TableHead,
		"Warn":      s.Warn,
		"PowerOff":  s.PowerOff,
	} {
		if style == nil {
			t.Fatalf("expected %s style to be set", name)
		}
	}
}

func TestRenderKeepsTextWithNilStyle(t *testing.T) {
	if got := Render(nil, "plain"); got != "plain" {
		t.Fatalf("expected plain, got %q", got)
	}
	if got := ansi.Strip(Render(Default().Warn, "warn")); got != "warn" {
		t.Fatalf("expected styled text to strip back to warn, got %q", got)
	}
}
