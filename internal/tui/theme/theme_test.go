package theme

import "testing"

func TestNextWrapsAround(t *testing.T) {
	name := All[0].Name
	seen := map[string]bool{}
	for range All {
		seen[name] = true
		name = Next(name).Name
	}
	if len(seen) != len(All) {
		t.Fatalf("cycled through %d themes, want %d", len(seen), len(All))
	}
	if name != All[0].Name {
		t.Errorf("after a full cycle got %q, want %q", name, All[0].Name)
	}
}

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("no-such-theme").Name; got != FlexokiDark.Name {
		t.Errorf("ByName(unknown) = %q, want %q", got, FlexokiDark.Name)
	}
	if got := Next("no-such-theme").Name; got != All[0].Name {
		t.Errorf("Next(unknown) = %q, want %q", got, All[0].Name)
	}
}
