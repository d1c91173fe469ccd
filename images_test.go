package inkwell

import (
	"os"
	"path/filepath"
	"testing"
)

func setupImageApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Config: SiteConfig{StaticDir: t.TempDir()},
		Store:  setupTestStore(t),
	}
}

func TestEnsureUniqueFilenameNoCollision(t *testing.T) {
	a := setupImageApp(t)

	img := Image{Filename: "cover.jpg"}
	a.ensureUniqueFilename(&img)
	if img.Filename != "cover.jpg" {
		t.Errorf("Filename = %q, want cover.jpg", img.Filename)
	}
}

func TestEnsureUniqueFilenameCountsFromOne(t *testing.T) {
	a := setupImageApp(t)

	if err := a.Store.SaveImage(Image{Filename: "cover.jpg", UploadedAt: "2024-01-01T00:00:00Z"}); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	img := Image{Filename: "cover.jpg"}
	a.ensureUniqueFilename(&img)
	if img.Filename != "cover-1.jpg" {
		t.Errorf("first collision suffix = %q, want cover-1.jpg", img.Filename)
	}

	if err := a.Store.SaveImage(Image{Filename: "cover-1.jpg", UploadedAt: "2024-01-02T00:00:00Z"}); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	img = Image{Filename: "cover.jpg"}
	a.ensureUniqueFilename(&img)
	if img.Filename != "cover-2.jpg" {
		t.Errorf("second collision suffix = %q, want cover-2.jpg", img.Filename)
	}
}

func TestEnsureUniqueFilenameChecksDisk(t *testing.T) {
	a := setupImageApp(t)

	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shot.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	img := Image{Filename: "shot.jpg"}
	a.ensureUniqueFilename(&img)
	if img.Filename != "shot-1.jpg" {
		t.Errorf("disk collision suffix = %q, want shot-1.jpg", img.Filename)
	}
}
