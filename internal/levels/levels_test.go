package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/unbolt/internal/core"
	"github.com/vovakirdan/unbolt/internal/puzzle"
)

const sampleLevel = `
id: sample
name: Sample
policy:
  touch: all
  latch: true
fasteners:
  - {name: h1, x: -10, y: 0, filled: true}
  - {name: h2, x: 10, y: 0, size: 6, filled: true}
  - {name: s1, x: 100, y: 100}
details:
  - name: plank
    x: 0
    y: 0
    w: 40
    h: 10
    fasteners: [h1, h2]
`

func writeLevel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestParseYAML(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}

	if lvl.ID != "sample" || lvl.Name != "Sample" {
		t.Errorf("ID/Name = %q/%q", lvl.ID, lvl.Name)
	}
	if len(lvl.Fasteners) != 3 || len(lvl.Details) != 1 {
		t.Fatalf("got %d fasteners, %d details", len(lvl.Fasteners), len(lvl.Details))
	}
	if lvl.Fasteners[0].Size != core.V(DefaultFastenerSize, DefaultFastenerSize) {
		t.Errorf("default size = %v", lvl.Fasteners[0].Size)
	}
	if lvl.Fasteners[1].Size != core.V(6, 6) {
		t.Errorf("explicit size = %v", lvl.Fasteners[1].Size)
	}
	if lvl.Details[0].Size != core.V(40, 10) {
		t.Errorf("detail size = %v", lvl.Details[0].Size)
	}
	if lvl.Bolts() != 2 {
		t.Errorf("Bolts() = %d, expected 2", lvl.Bolts())
	}
}

func TestParseYAMLNameDefaultsToID(t *testing.T) {
	lvl, err := ParseYAML([]byte(`
id: bare
fasteners: [{name: a, x: 0, y: 0}]
details: [{name: d, x: 0, y: 0, w: 1, h: 1, fasteners: [a]}]
`))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if lvl.Name != "bare" {
		t.Errorf("Name = %q, expected id", lvl.Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "missing id",
			yaml: `details: [{name: d, w: 1, h: 1}]`,
			err:  ErrNoID,
		},
		{
			name: "no details",
			yaml: `id: x`,
			err:  ErrNoDetails,
		},
		{
			name: "duplicate fastener",
			yaml: `
id: x
fasteners: [{name: a}, {name: a}]
details: [{name: d, w: 1, h: 1}]`,
			err: ErrDuplicateName,
		},
		{
			name: "detail named like fastener",
			yaml: `
id: x
fasteners: [{name: a}]
details: [{name: a, w: 1, h: 1}]`,
			err: ErrDuplicateName,
		},
		{
			name: "unknown reference",
			yaml: `
id: x
fasteners: [{name: a}]
details: [{name: d, w: 1, h: 1, fasteners: [b]}]`,
			err: ErrUnknownReference,
		},
		{
			name: "zero detail size",
			yaml: `
id: x
details: [{name: d, w: 0, h: 1}]`,
			err: ErrBadSize,
		},
		{
			name: "negative fastener size",
			yaml: `
id: x
fasteners: [{name: a, size: -1}]
details: [{name: d, w: 1, h: 1}]`,
			err: ErrBadSize,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.yaml))
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseYAML() error = %v, expected %v", err, tc.err)
			}
		})
	}
}

func TestParseYAMLSyntaxError(t *testing.T) {
	if _, err := ParseYAML([]byte("id: [unclosed")); err == nil {
		t.Error("expected a yaml error")
	}
}

func TestPolicyApply(t *testing.T) {
	lvl, err := ParseYAML([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}

	base, _ := puzzle.PresetPolicy(puzzle.PresetFirst)
	got, err := lvl.Policy.Apply(base)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if got.Touch != puzzle.TouchAll || !got.Latch {
		t.Errorf("overrides not applied: %s", got)
	}
	if got.Fill != base.Fill || got.SkipUntouchedBolt != base.SkipUntouchedBolt {
		t.Errorf("unset fields changed: %s", got)
	}

	preset := YAMLPolicy{Preset: "latest"}
	got, err = preset.Apply(base)
	if err != nil {
		t.Fatalf("Apply(preset) failed: %v", err)
	}
	latest, _ := puzzle.PresetPolicy(puzzle.PresetLatest)
	if got != latest {
		t.Errorf("preset Apply() = %s, expected %s", got, latest)
	}

	if !(YAMLPolicy{}).IsZero() || preset.IsZero() {
		t.Error("IsZero() mismatch")
	}
	latch := true
	labels := map[string]YAMLPolicy{
		"default": {},
		"latest":  preset,
		"custom":  {Preset: "first", Latch: &latch},
	}
	for expect, p := range labels {
		if got := p.Label(); got != expect {
			t.Errorf("Label(%+v) = %q, expected %q", p, got, expect)
		}
	}
	if _, err := (YAMLPolicy{Touch: "most"}).Apply(base); err == nil {
		t.Error("bad touch mode should fail")
	}
	if _, err := (YAMLPolicy{Preset: "zeroth"}).Apply(base); err == nil {
		t.Error("bad preset should fail")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.yaml", sampleLevel)
	writeLevel(t, dir, "a.yml", `
id: alpha
fasteners: [{name: a}]
details: [{name: d, w: 1, h: 1, fasteners: [a]}]
`)
	writeLevel(t, dir, "broken.yaml", "id: [")
	writeLevel(t, dir, "notes.txt", "ignored")

	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeLevel(t, filepath.Join(dir, "nested"), "c.yaml", `
id: zeta
fasteners: [{name: a}]
details: [{name: d, w: 1, h: 1}]
`)

	loader := NewLoader(dir)
	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	if len(lvls) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(lvls))
	}
	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}

	lvl, err := loader.LoadByID("sample")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if lvl.FilePath != filepath.Join(dir, "b.yaml") {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}

	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("LoadByID(missing) should fail")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "none.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	txt := writeLevel(t, dir, "level.txt", sampleLevel)
	if _, err := LoadFile(txt); err == nil {
		t.Error("unsupported extension should fail")
	}

	if _, err := NewLoader(filepath.Join(dir, "nope")).LoadAll(); err == nil {
		t.Error("missing root should fail")
	}
}
