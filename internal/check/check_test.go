package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/listmerge/internal/config"
)

// recordLogger captures log lines by level.
type recordLogger struct {
	lines []string
}

func (r *recordLogger) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recordLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func (r *recordLogger) count(level string) int {
	n := 0
	for _, l := range r.lines {
		if strings.HasPrefix(l, level+" ") {
			n++
		}
	}
	return n
}

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	in := t.TempDir()
	write(t, filepath.Join(in, "J_B_Pass 1_L.csv"), "Name\nAlice\n")
	deny := filepath.Join(t.TempDir(), "BLACKLIST.csv")
	write(t, deny, "Blacklist\nSmith\n")

	cfg := config.DefaultConfig()
	cfg.InputDir = in
	cfg.DenylistPath = deny
	cfg.OutputDir = t.TempDir()
	cfg.WorkDir = t.TempDir()
	return &cfg
}

func TestCheckPaths(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, c *config.Config)
		wantErr error
	}{
		{"all valid", func(*testing.T, *config.Config) {}, nil},
		{"missing input", func(t *testing.T, c *config.Config) {
			c.InputDir = filepath.Join(t.TempDir(), "nope")
		}, ErrInputDir},
		{"input is a file", func(t *testing.T, c *config.Config) {
			c.InputDir = c.DenylistPath
		}, ErrInputDir},
		{"missing denylist", func(t *testing.T, c *config.Config) {
			c.DenylistPath = filepath.Join(t.TempDir(), "nope.csv")
		}, ErrDenylist},
		{"denylist is a directory", func(t *testing.T, c *config.Config) {
			c.DenylistPath = t.TempDir()
		}, ErrDenylist},
		{"work dir missing", func(t *testing.T, c *config.Config) {
			c.WorkDir = filepath.Join(t.TempDir(), "nope")
		}, ErrWorkDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(t, cfg)
			err := CheckPaths(cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("CheckPaths() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckPaths() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckPaths_MissingOutputFallsBack(t *testing.T) {
	cfg := validConfig(t)
	cfg.OutputDir = filepath.Join(t.TempDir(), "nope")
	chdir(t, t.TempDir())
	if err := CheckPaths(cfg); err != nil {
		t.Errorf("CheckPaths() should accept a missing output dir when cwd is writable: %v", err)
	}
}

func TestRunCheck_AllPass(t *testing.T) {
	cfg := validConfig(t)
	log := &recordLogger{}
	if !RunCheck(cfg, log) {
		t.Fatalf("RunCheck() = false, lines: %v", log.lines)
	}
	if log.count("ERROR") != 0 {
		t.Errorf("unexpected errors: %v", log.lines)
	}
	joined := strings.Join(log.lines, "\n")
	for _, want := range []string{"(1 .csv files)", "(1 entries, header: first)", "is writable"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in:\n%s", want, joined)
		}
	}
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("probe file left behind in output dir: %v", entries)
	}
}

func TestRunCheck_ReportsEveryFailure(t *testing.T) {
	cfg := validConfig(t)
	cfg.InputDir = filepath.Join(t.TempDir(), "nope")
	cfg.DenylistPath = filepath.Join(t.TempDir(), "nope.csv")
	log := &recordLogger{}

	if RunCheck(cfg, log) {
		t.Fatal("RunCheck() = true with missing input and denylist")
	}
	if got := log.count("ERROR"); got != 2 {
		t.Errorf("got %d errors, want 2: %v", got, log.lines)
	}
}

func TestRunCheck_WarnsOnEmptyInputs(t *testing.T) {
	cfg := validConfig(t)
	cfg.InputDir = t.TempDir()
	write(t, cfg.DenylistPath, "Blacklist\n")
	log := &recordLogger{}

	if !RunCheck(cfg, log) {
		t.Fatalf("RunCheck() = false: %v", log.lines)
	}
	if got := log.count("WARN"); got != 2 {
		t.Errorf("got %d warnings, want 2: %v", got, log.lines)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
