package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildTreesimBinary builds the treesim CLI into a temporary location
func buildTreesimBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "treesim")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/treesim")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build treesim binary: %v\n%s", err, out)
	}

	return binaryPath
}

// createTreeFile writes a tree document into dir
func createTreeFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", filename, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create tree file %s: %v", filename, err)
	}
	return path
}
