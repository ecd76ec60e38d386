package theme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDefault(t *testing.T) {
	th := Get("default")
	if th.Name != "default" {
		t.Errorf("Get(\"default\").Name = %q, want %q", th.Name, "default")
	}
	if len(th.Teams) != 10 {
		t.Fatalf("len(Teams) = %d, want 10", len(th.Teams))
	}
	if th.Teams[1] != "#dc0000" {
		t.Errorf("Teams[1] = %q, want %q", th.Teams[1], "#dc0000")
	}
}

func TestGetUnknownFallsBackToDefault(t *testing.T) {
	if got := Get("no-such-theme").Name; got != "default" {
		t.Errorf("Get(unknown).Name = %q, want %q", got, "default")
	}
	if _, ok := Lookup("no-such-theme"); ok {
		t.Error("Lookup(unknown) ok = true, want false")
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	if got := Get("NIGHT").Name; got != "night" {
		t.Errorf("Get(\"NIGHT\").Name = %q, want %q", got, "night")
	}
}

func TestNames(t *testing.T) {
	names := strings.Join(Names(), ",")
	for _, want := range []string{"default", "high-contrast", "night"} {
		if !strings.Contains(names, want) {
			t.Errorf("Names() = %s, missing %q", names, want)
		}
	}
}

func TestBuiltinsValidate(t *testing.T) {
	for _, name := range []string{"default", "night", "high-contrast"} {
		if err := thValidateTheme(Get(name)); err != nil {
			t.Errorf("builtin %q invalid: %v", name, err)
		}
	}
}

func TestTeamFallback(t *testing.T) {
	th := Default()
	if got := th.Team(0); got != "#1e41ae" {
		t.Errorf("Team(0) = %q, want %q", got, "#1e41ae")
	}
	if got := th.Team(10); got != th.Dim {
		t.Errorf("Team(10) = %q, want Dim %q", got, th.Dim)
	}
	if got := th.Team(-1); got != th.Dim {
		t.Errorf("Team(-1) = %q, want Dim %q", got, th.Dim)
	}
}

func TestLevel(t *testing.T) {
	th := Default()
	tests := []struct {
		v    float64
		want string
	}{
		{0.5, th.Good},
		{0.85, th.Warn},
		{0.94, th.Warn},
		{0.95, th.Crit},
	}
	for _, tt := range tests {
		if got := th.Level(tt.v, 0.85, 0.95); got != tt.want {
			t.Errorf("Level(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestLoadFromTOMLPartial(t *testing.T) {
	data := []byte(`
name = "track"

[panel]
background = "#101010"

[status]
good = "#11ff11"
`)
	th, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if th.Panel != "#101010" {
		t.Errorf("Panel = %q, want %q", th.Panel, "#101010")
	}
	if th.Good != "#11ff11" {
		t.Errorf("Good = %q, want %q", th.Good, "#11ff11")
	}
	if th.Crit != Default().Crit {
		t.Errorf("Crit = %q, want default %q", th.Crit, Default().Crit)
	}
	if len(th.Teams) != 10 {
		t.Errorf("len(Teams) = %d, want 10", len(th.Teams))
	}
}

func TestLoadFromTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", `[panel]
background = "#000000"`},
		{"bad hex", `name = "x"
[border]
drag = "yellow"`},
		{"bad team", `name = "x"
teams = ["#000000", "nope"]`},
		{"syntax", `name = `},
	}
	for _, tt := range tests {
		if _, err := LoadFromTOML([]byte(tt.data)); err == nil {
			t.Errorf("%s: LoadFromTOML() error = nil, want error", tt.name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	orig := Get("night")
	data, err := SaveToTOML(orig)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	got, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if got.Panel != orig.Panel || got.BorderHover != orig.BorderHover {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFromFile(absent) = %v, want ErrNotExist", err)
	}
}
