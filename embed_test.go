package addressbook

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedSeeds(t *testing.T) {
	data, err := fs.ReadFile(Seeds, "demo.yaml")
	if err != nil {
		t.Fatalf("reading embedded demo.yaml: %v", err)
	}
	if !strings.Contains(string(data), "name: John") {
		t.Errorf("embedded demo.yaml does not list John:\n%s", data)
	}
}

func TestOverlayFS(t *testing.T) {
	// Given a local override for demo.yaml and an embedded-only other.yaml
	embedded := fstest.MapFS{
		"demo.yaml":  &fstest.MapFile{Data: []byte("embedded-demo")},
		"other.yaml": &fstest.MapFile{Data: []byte("embedded-other")},
	}
	localDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(localDir, "demo.yaml"), []byte("local-demo"), 0o644); err != nil {
		t.Fatal(err)
	}
	ofs := OverlayFS(localDir, embedded)

	tests := []struct {
		name string
		want string
	}{
		{name: "demo.yaml", want: "local-demo"},
		{name: "other.yaml", want: "embedded-other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When the file is read through the overlay
			data, err := fs.ReadFile(ofs, tt.name)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}

			// Then local wins and embedded fills the gaps
			if string(data) != tt.want {
				t.Errorf("got %q, want %q", string(data), tt.want)
			}
		})
	}
}

func TestOverlayFS_NotFound(t *testing.T) {
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	if _, err := fs.ReadFile(ofs, "missing.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOverlayFS_RejectsInvalidPath(t *testing.T) {
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	for _, name := range []string{"../escape", "/absolute"} {
		if _, err := ofs.Open(name); err == nil {
			t.Errorf("Open(%q) should return error", name)
		}
	}
}
