package preset

import "testing"

func TestAllTwelveNamedPresetsExist(t *testing.T) {
	want := []string{
		"straight", "swing-light", "swing-heavy", "shuffle", "laid-back-rnb",
		"drunk-jazz", "deep-house", "dub-reggae", "latin-clave", "afrobeat",
		"drill-hihat", "ambient-rubato",
	}
	for _, name := range want {
		p, ok := Named(name)
		if !ok {
			t.Fatalf("preset %q not found", name)
		}
		if p == nil {
			t.Fatalf("preset %q returned a nil profile", name)
		}
	}
	if len(Names()) != len(want) {
		t.Fatalf("Names() returned %d entries, want %d", len(Names()), len(want))
	}
}

func TestNamedUnknownReturnsFalse(t *testing.T) {
	if _, ok := Named("not-a-real-genre"); ok {
		t.Fatalf("expected ok=false for unknown preset name")
	}
}

func TestNamedReturnsIndependentCopies(t *testing.T) {
	a, _ := Named("swing-heavy")
	b, _ := Named("swing-heavy")
	a.BPM = 999
	if b.BPM == 999 {
		t.Fatalf("Named returned a shared profile instance across calls")
	}
}

func TestStraightPresetHasGrooveDisabled(t *testing.T) {
	p, _ := Named("straight")
	if p.GrooveAmount != 0 {
		t.Fatalf("straight preset should have groove_amount=0, got %v", p.GrooveAmount)
	}
}
