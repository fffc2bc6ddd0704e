package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/latgraph/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "latgraph.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExplicit(t *testing.T) {
	path := writeConfig(t, `
method = "anticlockwise"
check_topology = true
plot_scale = 3.5

[generate]
spacing = 0.5
dim = 2
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Config{
		Method:        "anticlockwise",
		CheckTopology: true,
		PlotScale:     3.5,
		Generate:      Generate{Spacing: 0.5, Dim: 2},
		Path:          path,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "verbose = true\n")

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Verbose = true
	want.Path = path
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, `method = "anticlockwise"`)
	t.Setenv(EnvVar, path)

	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got.Method != "anticlockwise" || got.Path != path {
		t.Errorf("Load() = %+v, want method from %s", got, path)
	}
}

func TestLoadDefaultFileOptional(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Chdir(t.TempDir())

	got, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultFileInWorkingDir(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("plot_scale = 4.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got.PlotScale != 4 || got.Path != DefaultFile {
		t.Errorf("Load() = %+v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"Syntax", "method = ", errors.ErrCodeInvalidInput},
		{"UnknownKey", "colour = \"red\"\n", errors.ErrCodeInvalidInput},
		{"UnknownMethod", "method = \"spiral\"\n", errors.ErrCodeInvalidInput},
		{"BadScale", "plot_scale = -1.0\n", errors.ErrCodeInvalidInput},
		{"BadSpacing", "[generate]\nspacing = 0.0\n", errors.ErrCodeInvalidInput},
		{"BadDim", "[generate]\ndim = 4\n", errors.ErrCodeInvalidInput},
		{"WrongType", "verbose = \"yes\"\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}

	t.Run("MissingExplicit", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		explicit, env string
		want          string
		required      bool
	}{
		{"a.toml", "b.toml", "a.toml", true},
		{"", "b.toml", "b.toml", true},
		{"", "", DefaultFile, false},
	}
	for _, tt := range tests {
		got, required := resolve(tt.explicit, tt.env)
		if got != tt.want || required != tt.required {
			t.Errorf("resolve(%q, %q) = %q, %v; want %q, %v", tt.explicit, tt.env, got, required, tt.want, tt.required)
		}
	}
}
