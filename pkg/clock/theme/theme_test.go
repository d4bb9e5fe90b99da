package theme

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

func TestGet(t *testing.T) {
	for _, id := range []ID{IDTower, IDCuckoo, IDWatch, IDLearning} {
		th, err := Get(id)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", id, err)
		}
		if th.ID != id {
			t.Errorf("Get(%q).ID = %q", id, th.ID)
		}
		if th.Decoration == nil {
			t.Fatalf("Get(%q).Decoration is nil", id)
		}
		if th.Decoration.Variant() != id {
			t.Errorf("Get(%q).Decoration.Variant() = %q", id, th.Decoration.Variant())
		}
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("disco")
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("Get(disco) error = %v, want INVALID_THEME", err)
	}
}

func TestLookupFallsBack(t *testing.T) {
	if got := Lookup("disco"); got.ID != Default {
		t.Errorf("Lookup(disco).ID = %q, want %q", got.ID, Default)
	}
	if got := Lookup(IDWatch); got.ID != IDWatch {
		t.Errorf("Lookup(watch).ID = %q", got.ID)
	}
}

func TestAllOrder(t *testing.T) {
	want := []ID{IDTower, IDCuckoo, IDWatch, IDLearning}
	if got := IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("len(All()) = %d", len(all))
	}
	// Mutating the returned slice must not touch the registry.
	all[0].Name = "changed"
	if th, _ := Get(IDTower); th.Name != "Turmuhr" {
		t.Errorf("registry mutated through All(): %q", th.Name)
	}
}

func TestPaletteComplete(t *testing.T) {
	for _, th := range All() {
		v := reflect.ValueOf(th.Colors)
		if v.NumField() != 14 {
			t.Fatalf("palette has %d colors, want 14", v.NumField())
		}
		for i := 0; i < v.NumField(); i++ {
			if v.Field(i).String() == "" {
				t.Errorf("%s: color %s is empty", th.ID, v.Type().Field(i).Name)
			}
		}
	}
}

func TestDecorationVariants(t *testing.T) {
	tests := []struct {
		id   ID
		want Decoration
	}{
		{IDTower, Tower{}},
		{IDCuckoo, Cuckoo{}},
		{IDWatch, Watch{}},
		{IDLearning, Learning{}},
	}
	for _, tt := range tests {
		th, _ := Get(tt.id)
		if reflect.TypeOf(th.Decoration) != reflect.TypeOf(tt.want) {
			t.Errorf("%s decoration is %T, want %T", tt.id, th.Decoration, tt.want)
		}
	}
}

func TestNumerals(t *testing.T) {
	tower, _ := Get(IDTower)
	if !tower.RomanNumerals {
		t.Error("tower should use roman numerals")
	}
	if got := tower.Numeral(4); got != "IV" {
		t.Errorf("tower.Numeral(4) = %q, want IV", got)
	}
	watch, _ := Get(IDWatch)
	if got := watch.Numeral(12); got != "12" {
		t.Errorf("watch.Numeral(12) = %q, want 12", got)
	}
	if got := RomanNumeral(13); got != "13" {
		t.Errorf("RomanNumeral(13) = %q, want 13", got)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" Watch ")
	if err != nil || id != IDWatch {
		t.Errorf("ParseID(Watch) = %q, %v", id, err)
	}
	_, err = ParseID("sundial")
	if err == nil || !strings.Contains(err.Error(), "tower, cuckoo, watch, learning") {
		t.Errorf("ParseID(sundial) error = %v", err)
	}
}

func TestSegmentSplit(t *testing.T) {
	th, _ := Get(IDLearning)
	l := th.Decoration.(Learning)
	if got := l.Radii.SegmentSplit(); got != 66.5 {
		t.Errorf("SegmentSplit() = %v, want 66.5", got)
	}
}
