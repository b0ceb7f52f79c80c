package deploy

import (
	"archive/tar"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"wvdeploy/internal/remotecmd"
)

func requireGNUTar(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	out, err := exec.Command("tar", "--version").Output()
	if err != nil || !strings.Contains(string(out), "GNU tar") {
		t.Skip("requires GNU tar")
	}
}

// writeSiteArchive writes an uncompressed tar laid out like the build output; tar
// detects the format from content, not from the file name.
func writeSiteArchive(t *testing.T, dir string) string {
	t.Helper()

	files := map[string]string{
		"site-worldview-debug/web/index.html": "<html></html>",
		"site-worldview-debug/web/.htaccess":  "Options -Indexes",
		"site-worldview-debug/web/js/app.js":  "console.log(1)",
		"site-worldview-debug/README.txt":     "scaffold",
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		body := files[name]
		if err := tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(body))}); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatalf("tar write: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}

	path := filepath.Join(dir, "site-worldview-debug.tar.bz2")

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	return path
}

func listTree(t *testing.T, root string) []string {
	t.Helper()

	var entries []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if rel != "." {
			entries = append(entries, filepath.ToSlash(rel))
		}
		return nil
	})

	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	sort.Strings(entries)

	return entries
}

func runLocalDeployment(t *testing.T, root string, archive string) {
	t.Helper()

	commands, err := remotecmd.NewBuilder(root, "mysite", "site-worldview-debug.tar.bz2", "site-worldview-debug", "web")
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}

	var stdout, stderr bytes.Buffer

	sequencer := &Sequencer{
		Commands:     commands,
		ArtifactPath: archive,
		StdOut:       &stdout,
		ErrOut:       &stderr,
	}

	if err := sequencer.Run(&localSession{}); err != nil {
		t.Fatalf("sequence failed: %v\n%s", err, stderr.String())
	}
}

func TestSequencer_LocalShellDeploymentIsIdempotent(t *testing.T) {
	requireGNUTar(t)

	root := filepath.Join(t.TempDir(), "srv app")
	archive := writeSiteArchive(t, t.TempDir())
	target := filepath.Join(root, "mysite")

	runLocalDeployment(t, root, archive)

	first := listTree(t, target)

	expected := []string{".htaccess", "index.html", "js", "js/app.js", "site-worldview-debug.tar.bz2"}

	if strings.Join(first, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected %v, got %v", expected, first)
	}

	if err := os.WriteFile(filepath.Join(target, "stale.txt"), []byte("old"), 0o600); err != nil {
		t.Fatalf("failed to write stale file: %v", err)
	}

	runLocalDeployment(t, root, archive)

	second := listTree(t, target)

	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Errorf("expected identical contents after rerun\n%v\n%v", first, second)
	}
}

func TestSequencer_GuardLeavesUnrelatedDirectoryAlone(t *testing.T) {
	requireGNUTar(t)

	root := t.TempDir()
	target := filepath.Join(root, "mysite")

	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(target, "keep.txt"), []byte("mine"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	runLocalDeployment(t, root, writeSiteArchive(t, t.TempDir()))

	if _, err := os.Stat(filepath.Join(target, "keep.txt")); err != nil {
		t.Errorf("expected unrelated file to survive without a prior archive: %v", err)
	}
}
