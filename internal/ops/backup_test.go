package ops

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestBackupRestoreDataDir_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(filepath.Join(src, "players"), 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}

	files := map[string]string{
		"players/state.json": `{"version":2,"players":{"p1":{"id":"p1","name":"Alex","cash":"1200"}}}`,
		"players/save_7b0d5c4e-9f13-4c43-8a53-2f5de0a1c0de.json": `{"version":2,"player":{"id":"p1","cash":"900"}}`,
	}
	for rel, content := range files {
		path := filepath.Join(src, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir parent %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	if err := BackupDataDir(src, archive); err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	restoreDir := filepath.Join(t.TempDir(), "restore")
	if err := RestoreDataDir(archive, restoreDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	got := map[string]string{}
	err := filepath.WalkDir(restoreDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(restoreDir, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk restore dir: %v", err)
	}

	// The manifest describes the archive; it must not land in the data dir.
	if _, ok := got[ManifestName]; ok {
		t.Fatalf("manifest should not be extracted into the restore dir")
	}
	if !reflect.DeepEqual(files, got) {
		t.Fatalf("restored files mismatch:\nwant=%v\ngot=%v", files, got)
	}

	srcDigest, err := DirDigest(src)
	if err != nil {
		t.Fatalf("src digest: %v", err)
	}
	restoredDigest, err := DirDigest(restoreDir)
	if err != nil {
		t.Fatalf("restored digest: %v", err)
	}
	if srcDigest != restoredDigest {
		t.Fatalf("digests differ after round trip: src=%s restored=%s", srcDigest, restoredDigest)
	}
}

func TestReadManifest(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(filepath.Join(src, "players"), 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "players", "state.json"), []byte(`{"version":2}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	if err := BackupDataDir(src, archive); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	m, err := ReadManifest(archive)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if m.Version != 1 {
		t.Fatalf("manifest version = %d, want 1", m.Version)
	}
	if len(m.Files) != 1 || m.Files[0].Path != "players/state.json" {
		t.Fatalf("unexpected manifest files: %+v", m.Files)
	}
	if m.Files[0].Size != int64(len(`{"version":2}`)) {
		t.Fatalf("manifest size = %d", m.Files[0].Size)
	}
	if len(m.Files[0].SHA256) != 64 {
		t.Fatalf("manifest sha256 looks wrong: %q", m.Files[0].SHA256)
	}

	if _, err := ReadManifest(filepath.Join(t.TempDir(), "missing.tar.gz")); err == nil {
		t.Fatalf("expected error for missing archive")
	}

	plain := filepath.Join(t.TempDir(), "plain.tar.gz")
	writeArchive(t, plain, nil, map[string]string{"players/state.json": "{}"})
	if _, err := ReadManifest(plain); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}

func TestRestoreDataDir_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	writeArchive(t, archive, nil, map[string]string{"../escape.txt": "bad"})

	if err := RestoreDataDir(archive, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatalf("expected restore to reject path traversal archive")
	}
}

func TestRestoreDataDir_RequiresManifest(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "plain.tar.gz")
	writeArchive(t, archive, nil, map[string]string{"players/state.json": `{"version":2}`})

	err := RestoreDataDir(archive, filepath.Join(t.TempDir(), "out"))
	if !errors.Is(err, ErrNoManifest) {
		t.Fatalf("expected ErrNoManifest, got %v", err)
	}
}

func TestRestoreDataDir_DetectsDigestMismatch(t *testing.T) {
	content := `{"version":2,"players":{}}`
	manifest := &Manifest{
		Version:   1,
		CreatedAt: time.Now().UTC(),
		Files: []ManifestFile{
			{
				Path:   "players/state.json",
				Size:   int64(len(content)),
				SHA256: strings.Repeat("a", 64),
			},
		},
	}

	archive := filepath.Join(t.TempDir(), "tampered.tar.gz")
	writeArchive(t, archive, manifest, map[string]string{"players/state.json": content})

	err := RestoreDataDir(archive, filepath.Join(t.TempDir(), "out"))
	if err == nil || !strings.Contains(err.Error(), "digest mismatch") {
		t.Fatalf("expected digest mismatch error, got %v", err)
	}
}

func TestRestoreDataDir_DetectsMissingFile(t *testing.T) {
	manifest := &Manifest{
		Version:   1,
		CreatedAt: time.Now().UTC(),
		Files: []ManifestFile{
			{Path: "players/state.json", Size: 2, SHA256: strings.Repeat("b", 64)},
		},
	}

	archive := filepath.Join(t.TempDir(), "truncated.tar.gz")
	writeArchive(t, archive, manifest, nil)

	err := RestoreDataDir(archive, filepath.Join(t.TempDir(), "out"))
	if err == nil || !strings.Contains(err.Error(), "missing from archive") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestDirDigest_SensitiveToContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players", "state.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"version":2}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	before, err := DirDigest(dir)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	again, err := DirDigest(dir)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if before != again {
		t.Fatalf("digest should be stable, got %s then %s", before, again)
	}

	if err := os.WriteFile(path, []byte(`{"version":3}`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	after, err := DirDigest(dir)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if before == after {
		t.Fatalf("digest should change when content changes")
	}
}

// writeArchive hand-builds a tar.gz with an optional manifest entry followed
// by the given files.
func writeArchive(t *testing.T, path string, manifest *Manifest, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	if manifest != nil {
		mb, err := json.Marshal(manifest)
		if err != nil {
			t.Fatalf("marshal manifest: %v", err)
		}
		if err := tw.WriteHeader(&tar.Header{
			Name:     ManifestName,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(mb)),
		}); err != nil {
			t.Fatalf("write manifest header: %v", err)
		}
		if _, err := tw.Write(mb); err != nil {
			t.Fatalf("write manifest body: %v", err)
		}
	}

	for name, content := range files {
		if err := tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}); err != nil {
			t.Fatalf("write header %s: %v", name, err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("write body %s: %v", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}
