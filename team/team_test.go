package team

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	for _, key := range []string{"KC", "SF"} {
		d, ok := r.Lookup(key)
		if !ok {
			t.Fatalf("built-in registry missing %s", key)
		}
		if d.Key != key || d.Name == "" {
			t.Errorf("bad descriptor for %s: %+v", key, d)
		}
	}

	kc, _ := r.Lookup("KC")
	if kc.Primary != RGB(0xE31837) {
		t.Errorf("KC primary = %s, want #e31837", kc.Primary)
	}
	if got := kc.Label(); got != "Kansas City Chiefs (KC)" {
		t.Errorf("Label() = %q", got)
	}

	if _, ok := r.Lookup("XX"); ok {
		t.Error("lookup of unknown key succeeded")
	}

	keys := r.Keys()
	if len(keys) != r.Len() {
		t.Fatalf("Keys() len %d != Len() %d", len(keys), r.Len())
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys not sorted: %v", keys)
		}
	}

	// Keys returns a copy
	keys[0] = "mutated"
	if r.Keys()[0] == "mutated" {
		t.Error("Keys() exposes internal slice")
	}
}

func TestNewRegistryValidation(t *testing.T) {
	cases := []struct {
		name  string
		teams []Descriptor
	}{
		{"empty", nil},
		{"empty key", []Descriptor{{Name: "X"}}},
		{"empty name", []Descriptor{{Key: "X"}}},
		{"duplicate", []Descriptor{{Key: "X", Name: "A"}, {Key: "X", Name: "B"}}},
	}
	for _, tc := range cases {
		if _, err := NewRegistry(tc.teams...); !errors.Is(err, ErrInvalidTeam) {
			t.Errorf("%s: expected ErrInvalidTeam, got %v", tc.name, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	good := map[string]Color{
		"#ff0000":   {R: 255},
		"00ff00":    {G: 255},
		"0x0000ff":  {B: 255},
		" #AbCdEf ": {R: 0xab, G: 0xcd, B: 0xef},
	}
	for in, want := range good {
		got, err := ParseColor(in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseColor(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "#fff", "#gggggg", "#1234567"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidTeam) {
			t.Errorf("ParseColor(%q): expected ErrInvalidTeam, got %v", in, err)
		}
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
teams:
  - key: KC
    name: Kansas City Chiefs
    primary: "#e31837"
    secondary: "#ffb81c"
  - key: SF
    name: San Francisco 49ers
    primary: "#aa0000"
    secondary: "#b3995d"
`)
	r, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	sf, ok := r.Lookup("SF")
	if !ok {
		t.Fatal("SF missing")
	}
	if sf.Secondary != RGB(0xB3995D) {
		t.Errorf("SF secondary = %s", sf.Secondary)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	cases := map[string]string{
		"bad color":     "teams:\n  - key: A\n    name: A\n    primary: red\n    secondary: \"#000000\"\n",
		"unknown field": "teams:\n  - key: A\n    name: A\n    mascot: x\n",
		"duplicate":     "teams:\n  - {key: A, name: A, primary: \"#000000\", secondary: \"#000000\"}\n  - {key: A, name: B, primary: \"#000000\", secondary: \"#000000\"}\n",
		"no teams":      "teams: []\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidTeam) {
			t.Errorf("%s: expected ErrInvalidTeam, got %v", name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teams.yaml")
	data := "teams:\n  - {key: NYG, name: New York Giants, primary: \"#0b2265\", secondary: \"#a71930\"}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := r.Lookup("NYG"); !ok {
		t.Error("NYG missing after load")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
