package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmbeek/cdt3d/pkg/errors"
)

const plainConfig = `k0 1.0
k3 0.75
genus 0
targetvolume 4000
target2volume 0
volfixswitch 0
epsilon 0.02
seed 42
outputdir out
fileid run1
thermalsweeps 20
measuresweeps 100
ksteps 10
strictness 1
v1 4
v2 1
v3 10
infile initial.dat
outfile geometry.dat
`

const tomlConfig = `k0 = 1.0
k3 = 0.75
genus = 0
targetvolume = 4000
target2volume = 0
volfixswitch = 0
epsilon = 0.02
seed = 42
outputdir = "out"
fileid = "run1"
thermalsweeps = 20
measuresweeps = 100
ksteps = 10
strictness = 1
v1 = 4
v2 = 1
v3 = 10
infile = "initial.dat"
outfile = "geometry.dat"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func checkLoaded(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg.K0 != 1.0 || cfg.K3 != 0.75 {
		t.Errorf("couplings = (%g, %g), want (1, 0.75)", cfg.K0, cfg.K3)
	}
	if cfg.TargetVolume != 4000 {
		t.Errorf("TargetVolume = %d, want 4000", cfg.TargetVolume)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.MoveFreqs() != [3]int{4, 1, 10} {
		t.Errorf("MoveFreqs() = %v, want [4 1 10]", cfg.MoveFreqs())
	}
	if cfg.InFile != "initial.dat" || cfg.OutFile != "geometry.dat" {
		t.Errorf("files = (%q, %q)", cfg.InFile, cfg.OutFile)
	}
}

func TestLoad_Plain(t *testing.T) {
	cfg, err := Load(writeConfig(t, "run.conf", plainConfig))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	checkLoaded(t, cfg)
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "run.toml", tomlConfig))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	checkLoaded(t, cfg)
}

func TestLoad_MissingKey(t *testing.T) {
	for _, tc := range []struct {
		name, file, drop string
	}{
		{"plain", "run.conf", "epsilon 0.02\n"},
		{"plain-seed", "run.conf", "seed 42\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			content := removeLine(plainConfig, tc.drop)
			_, err := Load(writeConfig(t, tc.file, content))
			if err == nil {
				t.Fatal("Load() with a missing key succeeded, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func removeLine(content, line string) string {
	out := ""
	for _, l := range splitLines(content) {
		if l+"\n" == line {
			continue
		}
		out += l + "\n"
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		rewrite func(string) string
	}{
		{"nonzero genus", func(c string) string { return replaceLine(c, "genus 0", "genus 2") }},
		{"zero frequencies", func(c string) string {
			c = replaceLine(c, "v1 4", "v1 0")
			c = replaceLine(c, "v2 1", "v2 0")
			return replaceLine(c, "v3 10", "v3 0")
		}},
		{"bad strictness", func(c string) string { return replaceLine(c, "strictness 1", "strictness 9") }},
		{"bad volfix", func(c string) string { return replaceLine(c, "volfixswitch 0", "volfixswitch 2") }},
		{"non-numeric", func(c string) string { return replaceLine(c, "k0 1.0", "k0 abc") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "run.conf", tc.rewrite(plainConfig)))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func replaceLine(content, old, new string) string {
	out := ""
	for _, l := range splitLines(content) {
		if l == old {
			l = new
		}
		out += l + "\n"
	}
	return out
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.conf"))
	if err == nil {
		t.Fatal("Load() on a missing file succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
