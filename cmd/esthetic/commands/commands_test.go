package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiangrant/esthetic"
	"github.com/agiangrant/esthetic/internal/logging"
)

const page = `<html><body><div class="esthetic"><select name="color">` +
	`<option value="r">Red</option><option value="b" selected>Blue</option>` +
	`</select></div></body></html>`

func TestMain(m *testing.M) {
	logging.Discard()
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	out := filepath.Join(dir, "out.html")
	if err := os.WriteFile(in, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(cfg, []byte("[classes]\ntrigger = \"pick\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Render([]string{"--config", cfg, "-o", out, in}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if strings.Contains(got, "<select") {
		t.Errorf("select not replaced:\n%s", got)
	}
	if !strings.Contains(got, `<button class="pick"><span>Blue</span></button>`) {
		t.Errorf("trigger missing or unconfigured:\n%s", got)
	}
	if !strings.Contains(got, `name="color" value="b"/>`) {
		t.Errorf("carrier missing:\n%s", got)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"two inputs", []string{"a.html", "b.html"}},
		{"missing input", []string{filepath.Join(dir, "missing.html")}},
		{"missing config", []string{"--config", filepath.Join(dir, "missing.toml"), "a.html"}},
		{"unknown flag", []string{"--bogus", "a.html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Render(tt.args); err == nil {
				t.Error("Render should fail")
			}
		})
	}
}

func TestInit(t *testing.T) {
	chdir(t, t.TempDir())

	if err := Init([]string{"--locale", "fr"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := esthetic.LoadConfig(ProjectFile)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Locale != "fr" || cfg.Classes.Host != "esthetic" {
		t.Errorf("written config = %+v", cfg)
	}

	if err := Init(nil); err == nil {
		t.Error("Init should refuse to overwrite without --force")
	}
	if err := Init([]string{"--force"}); err != nil {
		t.Errorf("Init --force: %v", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ProjectFile), []byte("locale = \"de\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, nested)

	got, err := FindProjectRoot()
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if resolved, _ := filepath.EvalSymlinks(got); resolved != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}

	cfg, err := LoadProjectConfig("")
	if err != nil {
		t.Fatalf("LoadProjectConfig: %v", err)
	}
	if cfg.Locale != "de" {
		t.Errorf("project config not picked up: locale %q", cfg.Locale)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
