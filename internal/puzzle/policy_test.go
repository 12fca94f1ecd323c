package puzzle

import "testing"

func TestPresetPolicies(t *testing.T) {
	tests := []struct {
		preset Preset
		touch  TouchMode
		fill   FillMode
		latch  bool
		skip   bool
	}{
		{PresetFirst, TouchAny, FillAll, false, false},
		{PresetSecond, TouchAny, FillTwo, false, true},
		{PresetLatest, TouchAll, FillTwo, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			p, err := PresetPolicy(tc.preset)
			if err != nil {
				t.Fatalf("PresetPolicy() failed: %v", err)
			}
			if p.Touch != tc.touch || p.Fill != tc.fill || p.Latch != tc.latch || p.SkipUntouchedBolt != tc.skip {
				t.Errorf("PresetPolicy(%s) = %s", tc.preset, p)
			}
		})
	}

	if _, err := PresetPolicy("LATEST"); err != nil {
		t.Errorf("preset lookup should ignore case: %v", err)
	}
	if _, err := PresetPolicy("bogus"); err == nil {
		t.Error("unknown preset should fail")
	}
	if DefaultPolicy() != presets[DefaultPreset] {
		t.Error("DefaultPolicy() should match DefaultPreset")
	}
	if got := PresetNames(); len(got) != 3 || got[0] != "first" {
		t.Errorf("PresetNames() = %v", got)
	}
}

func TestFillModeCriteria(t *testing.T) {
	tests := []struct {
		name          string
		mode          FillMode
		filled, total int
		locks, pivots bool
	}{
		{"all: full", FillAll, 3, 3, true, true},
		{"all: partial", FillAll, 2, 3, false, true},
		{"all: empty", FillAll, 0, 3, false, false},
		{"all: no fasteners", FillAll, 0, 0, false, false},
		{"two: three", FillTwo, 3, 3, true, false},
		{"two: two", FillTwo, 2, 3, true, false},
		{"two: one", FillTwo, 1, 3, false, true},
		{"two: none", FillTwo, 0, 3, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.mode.locks(tc.filled, tc.total); got != tc.locks {
				t.Errorf("locks() = %v, expected %v", got, tc.locks)
			}
			if got := tc.mode.pivots(tc.filled, tc.total); got != tc.pivots {
				t.Errorf("pivots() = %v, expected %v", got, tc.pivots)
			}
		})
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseTouchMode(" ALL "); err != nil || m != TouchAll {
		t.Errorf("ParseTouchMode(ALL) = %v, %v", m, err)
	}
	if _, err := ParseTouchMode("some"); err == nil {
		t.Error("ParseTouchMode(some) should fail")
	}
	if m, err := ParseFillMode("2"); err != nil || m != FillTwo {
		t.Errorf("ParseFillMode(2) = %v, %v", m, err)
	}
	if m, err := ParseFillMode("total"); err != nil || m != FillAll {
		t.Errorf("ParseFillMode(total) = %v, %v", m, err)
	}
	if _, err := ParseFillMode("three"); err == nil {
		t.Error("ParseFillMode(three) should fail")
	}
	if m, err := ParseNotifyMode(""); err != nil || m != NotifyOnUnfill {
		t.Errorf("ParseNotifyMode(\"\") = %v, %v", m, err)
	}
	if m, err := ParseNotifyMode("always"); err != nil || m != NotifyAlways {
		t.Errorf("ParseNotifyMode(always) = %v, %v", m, err)
	}
	if _, err := ParseNotifyMode("never"); err == nil {
		t.Error("ParseNotifyMode(never) should fail")
	}
}
