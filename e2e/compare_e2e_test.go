package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestCompareE2EBasic runs the compare command on two small documents
func TestCompareE2EBasic(t *testing.T) {
	binaryPath := buildTreesimBinary(t)
	defer os.Remove(binaryPath)

	testDir := t.TempDir()
	a := createTreeFile(t, testDir, "a.json", `{"plan": {"intro": {}, "body": {"point": {}}}}`)
	b := createTreeFile(t, testDir, "b.json", `{"plan": {"body": {"point": {}}, "intro": {}}}`)

	cmd := exec.Command(binaryPath, "compare", a, b, "--no-progress")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Logf("Command output: %s", stdout.String())
		t.Logf("Command stderr: %s", stderr.String())
		t.Fatalf("Command failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "Tree Comparison Report") {
		t.Error("Output should contain 'Tree Comparison Report' header")
	}
	if !strings.Contains(output, "distance: 0.0000") {
		t.Errorf("Reordered siblings should score zero unordered, got:\n%s", output)
	}
}

// TestCompareE2EJSONOutput checks the machine-readable output path
func TestCompareE2EJSONOutput(t *testing.T) {
	binaryPath := buildTreesimBinary(t)
	defer os.Remove(binaryPath)

	testDir := t.TempDir()
	a := createTreeFile(t, testDir, "a.json", `{"plan": {"intro": {}, "body": {}}}`)
	b := createTreeFile(t, testDir, "b.json", `{"plan": {"intro": {}, "outro": {}}}`)

	cmd := exec.Command(binaryPath, "compare", a, b, "--json", "--no-progress")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	var response struct {
		Results []struct {
			Distance float64 `json:"distance"`
			SizeA    int     `json:"size_a"`
			SizeB    int     `json:"size_b"`
		} `json:"results"`
		Summary struct {
			TotalPairs int `json:"total_pairs"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, stdout.String())
	}

	if response.Summary.TotalPairs != 1 {
		t.Errorf("Expected one pair, got %d", response.Summary.TotalPairs)
	}
	if len(response.Results) != 1 {
		t.Fatalf("Expected one result, got %d", len(response.Results))
	}
	if response.Results[0].Distance <= 0 {
		t.Errorf("Differing trees should have positive distance, got %f", response.Results[0].Distance)
	}
	if response.Results[0].SizeA != 3 || response.Results[0].SizeB != 3 {
		t.Errorf("Unexpected sizes: %d/%d", response.Results[0].SizeA, response.Results[0].SizeB)
	}
}

// TestCompareE2EOrderedFlag exercises the ordered engine through the CLI
func TestCompareE2EOrderedFlag(t *testing.T) {
	binaryPath := buildTreesimBinary(t)
	defer os.Remove(binaryPath)

	testDir := t.TempDir()
	a := createTreeFile(t, testDir, "a.json", `{"root": {"x": {}, "y": {}}}`)
	b := createTreeFile(t, testDir, "b.json", `{"root": {"y": {}, "x": {}}}`)

	cmd := exec.Command(binaryPath, "compare", a, b, "--ordered", "--json", "--no-progress")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	var response struct {
		Results []struct {
			Distance float64 `json:"distance"`
		} `json:"results"`
		Unordered bool `json:"unordered"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if response.Unordered {
		t.Error("--ordered should disable unordered mode")
	}
	if len(response.Results) != 1 || response.Results[0].Distance <= 0 {
		t.Errorf("Ordered comparison should see the sibling swap: %+v", response.Results)
	}
}

// TestCompareE2EAveraged exercises the depth-averaged mode and breakdown
func TestCompareE2EAveraged(t *testing.T) {
	binaryPath := buildTreesimBinary(t)
	defer os.Remove(binaryPath)

	testDir := t.TempDir()
	a := createTreeFile(t, testDir, "a.yaml", "root:\n  x:\n    p:\n  y:\n")
	b := createTreeFile(t, testDir, "b.yaml", "root:\n  x:\n    q:\n  z:\n")

	cmd := exec.Command(binaryPath, "compare", a, b, "--averaged", "--depth-scores", "--no-progress")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "depth-averaged distance") {
		t.Error("Output should mention the depth-averaged mode")
	}
	if !strings.Contains(output, "@1:") || !strings.Contains(output, "@3:") {
		t.Errorf("Output should include the per-depth breakdown, got:\n%s", output)
	}
}

// TestCompareE2EDirectories compares two directories pairwise
func TestCompareE2EDirectories(t *testing.T) {
	binaryPath := buildTreesimBinary(t)
	defer os.Remove(binaryPath)

	dirA := t.TempDir()
	dirB := t.TempDir()
	createTreeFile(t, dirA, "one.json", `{"root": {"a": {}}}`)
	createTreeFile(t, dirA, "two.json", `{"root": {"b": {}}}`)
	createTreeFile(t, dirB, "one.json", `{"root": {"a": {}}}`)

	cmd := exec.Command(binaryPath, "compare", dirA, dirB, "--no-progress")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "Pairs compared: 1") {
		t.Errorf("Only the matching file should pair, got:\n%s", output)
	}
	if !strings.Contains(output, "no counterpart") {
		t.Errorf("The unmatched file should produce a warning, got:\n%s", output)
	}
}

// TestCompareE2EInitCommand checks config generation round trips
func TestCompareE2EInitCommand(t *testing.T) {
	binaryPath := buildTreesimBinary(t)
	defer os.Remove(binaryPath)

	testDir := t.TempDir()
	cmd := exec.Command(binaryPath, "init")
	cmd.Dir = testDir

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("init failed: %v\n%s", err, out)
	}

	if _, err := os.Stat(testDir + "/.treesim.toml"); err != nil {
		t.Errorf("init should create .treesim.toml: %v", err)
	}

	// Running again without --force must fail.
	cmd = exec.Command(binaryPath, "init")
	cmd.Dir = testDir
	if err := cmd.Run(); err == nil {
		t.Error("init over an existing config should fail without --force")
	}
}
