package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/treesim/domain"
	"github.com/ludo-technologies/treesim/internal/tree"
)

// TreeReaderImpl implements the domain.TreeReader interface
type TreeReaderImpl struct{}

// NewTreeReader creates a new tree reader service
func NewTreeReader() *TreeReaderImpl {
	return &TreeReaderImpl{}
}

// CollectTreeFiles recursively finds tree documents in the given paths
func (r *TreeReaderImpl) CollectTreeFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := r.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else if r.IsValidTreeFile(path) && r.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
	}

	return files, nil
}

// ReadFile reads the content of a tree file
func (r *TreeReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsValidTreeFile checks if a file looks like a tree document
func (r *TreeReaderImpl) IsValidTreeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadTree reads and parses a tree document, choosing the decoder by
// file extension
func (r *TreeReaderImpl) LoadTree(path string) (*tree.Tree, error) {
	content, err := r.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t *tree.Tree
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		t, err = tree.FromYAML(content)
	default:
		t, err = tree.FromJSON(content)
	}
	if err != nil {
		if domain.IsMalformedTree(err) {
			return nil, err
		}
		return nil, domain.NewParseError(path, err)
	}
	return t, nil
}

// collectFromDirectory collects tree files from a directory
func (r *TreeReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() && !recursive && path != dirPath {
			return filepath.SkipDir
		}

		if strings.HasPrefix(info.Name(), ".") && path != dirPath {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && r.IsValidTreeFile(path) {
			if r.shouldIncludeFile(path, includePatterns, excludePatterns) {
				files = append(files, path)
			}
		}

		return nil
	}

	if err := filepath.Walk(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile checks if a file should be included based on patterns
func (r *TreeReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return false
		}
		if matched, _ := doublestar.Match(pattern, filepath.ToSlash(path)); matched {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}

	for _, pattern := range includePatterns {
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.ToSlash(path)); matched {
			return true
		}
	}

	return false
}
