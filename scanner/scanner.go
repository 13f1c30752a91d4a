package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Scanner enumerates source files under a root directory.
type Scanner struct {
	rootDir    string
	extensions []string
	exclude    map[string]bool
}

// New creates a scanner that visits files with one of the given extensions,
// skipping any directory whose name is in exclude.
func New(rootDir string, extensions []string, exclude []string) *Scanner {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}
	return &Scanner{rootDir: rootDir, extensions: extensions, exclude: excluded}
}

// Scan walks the tree with an explicit worklist rather than recursion, so
// deeply nested trees cannot exhaust the stack. The root directory must
// exist; unreadable subdirectories fail the scan.
func (s *Scanner) Scan() ([]string, error) {
	info, err := os.Stat(s.rootDir)
	if err != nil {
		return nil, fmt.Errorf("directory %s: %w", s.rootDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", s.rootDir)
	}

	var files []string
	stack := []string{s.rootDir}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			path := filepath.Join(dir, name)
			if entry.IsDir() {
				if !s.exclude[name] {
					stack = append(stack, path)
				}
				continue
			}
			if s.isTargetFile(name) {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) isTargetFile(name string) bool {
	ext := filepath.Ext(name)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
