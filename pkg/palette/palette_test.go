package palette

import (
	"sort"
	"strings"
	"testing"
)

func TestEveryExtendedIndexNamed(t *testing.T) {
	for i := 16; i <= 255; i++ {
		if ExtendedNames[i] == "" {
			t.Errorf("index %d has no name", i)
		}
	}
	if len(ExtendedNames) != 240 {
		t.Errorf("ExtendedNames has %d entries, want 240", len(ExtendedNames))
	}
}

func TestCubeMath(t *testing.T) {
	cases := []struct {
		index   int
		r, g, b uint8
	}{
		{16, 0, 0, 0},      // cube origin
		{21, 0, 0, 255},    // pure blue corner
		{46, 0, 255, 0},    // pure green corner
		{196, 255, 0, 0},   // pure red corner
		{231, 255, 255, 255},
		{59, 95, 95, 95},   // first nonzero cube gray
		{232, 8, 8, 8},     // ramp start
		{255, 238, 238, 238},
	}
	for _, c := range cases {
		r, g, b, ok := RGB(c.index)
		if !ok {
			t.Errorf("RGB(%d) not ok", c.index)
			continue
		}
		if r != c.r || g != c.g || b != c.b {
			t.Errorf("RGB(%d) = %d,%d,%d; want %d,%d,%d", c.index, r, g, b, c.r, c.g, c.b)
		}
	}
	if _, _, _, ok := RGB(256); ok {
		t.Error("RGB(256) should not be ok")
	}
}

func TestHexCanonical(t *testing.T) {
	if got := Hex(21); got != "#0000ff" {
		t.Errorf("Hex(21) = %q", got)
	}
	if got := Hex(255); got != "#eeeeee" {
		t.Errorf("Hex(255) = %q", got)
	}
	for i := 0; i <= 255; i++ {
		h := Hex(i)
		if len(h) != 7 || h[0] != '#' || h != strings.ToLower(h) {
			t.Errorf("Hex(%d) = %q is not canonical", i, h)
		}
	}
}

// TestDuplicateGroupsMatchTable is the table's self-consistency check: the
// documented duplicate-name groups must be exactly the names that appear on
// more than one index, with exactly those indices.
func TestDuplicateGroupsMatchTable(t *testing.T) {
	byName := make(map[string][]int)
	for i := 16; i <= 255; i++ {
		name := ExtendedNames[i]
		byName[name] = append(byName[name], i)
	}

	for name, indices := range byName {
		sort.Ints(indices)
		declared, ok := DuplicateNames[name]
		if len(indices) > 1 {
			if !ok {
				t.Errorf("name %q is shared by %v but not declared in DuplicateNames", name, indices)
				continue
			}
			if len(declared) != len(indices) {
				t.Errorf("DuplicateNames[%q] = %v, table has %v", name, declared, indices)
				continue
			}
			for j := range declared {
				if declared[j] != indices[j] {
					t.Errorf("DuplicateNames[%q] = %v, table has %v", name, declared, indices)
					break
				}
			}
		} else if ok {
			t.Errorf("name %q declared duplicate but appears only at %v", name, indices)
		}
	}
}

func TestByName(t *testing.T) {
	got := ByName("DeepSkyBlue4")
	want := []int{23, 24, 25}
	if len(got) != len(want) {
		t.Fatalf("ByName(DeepSkyBlue4) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ByName(DeepSkyBlue4) = %v, want %v", got, want)
		}
	}
	if got := ByName("navyblue"); len(got) != 1 || got[0] != 17 {
		t.Errorf("ByName(navyblue) = %v", got)
	}
	if got := ByName("NoSuchColor"); got != nil {
		t.Errorf("ByName(NoSuchColor) = %v", got)
	}
}

func TestSGRHelpers(t *testing.T) {
	if got := Foreground(208); got != "\x1b[38;5;208m" {
		t.Errorf("Foreground(208) = %q", got)
	}
	if got := Background(17); got != "\x1b[48;5;17m" {
		t.Errorf("Background(17) = %q", got)
	}
}

func TestWritePage(t *testing.T) {
	var sb strings.Builder
	if err := WritePage(&sb); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	page := sb.String()
	for _, want := range []string{"#0000ff", "NavyBlue", "Grey93", "Grayscale ramp"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	// one swatch per index
	if got := strings.Count(page, `class="swatch"`); got != 256 {
		t.Errorf("page has %d swatches, want 256", got)
	}
}
