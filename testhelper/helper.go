// Package testhelper holds helpers shared by tests: indentation trimming for
// multi-line source literals and discovery of acceptance test directories.
package testhelper

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"testing"
)

var (
	leadingSpaces   = regexp.MustCompile(`^[ \t]*`)
	leadingTabs     = regexp.MustCompile(`^(\t+)`)
	acceptanceCase  = regexp.MustCompile(`^[0-9]{3}_.+$`)
	errorCaseSuffix = "_err"
)

func replaceTab(match string) string {
	return strings.Repeat("  ", strings.Count(match, "\t"))
}

// TrimIndent removes the indentation of the first content line from every
// line of a raw string literal and drops the leading line break. Remaining
// leading tabs become two spaces each.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := leadingSpaces.FindString(lines[1])

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	// the closing backquote sits on an indented line of its own
	if last := len(lines) - 1; strings.TrimSpace(lines[last]) == "" {
		lines[last] = ""
	}

	return strings.Join(lines[1:], "\n")
}

// GetCaller returns the file and line of the caller, for failure messages
// in table-driven tests
func GetCaller(t *testing.T) string {
	t.Helper()

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("(%s:%d)", filepath.Base(file), line)
}

// GetAcceptanceTestDirs returns the acceptance test directories under root:
// three digits, an underscore and a name, in sorted order
func GetAcceptanceTestDirs(fsys fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s directory: %w", root, err)
	}

	var dirs []string

	for _, entry := range entries {
		if entry.IsDir() && acceptanceCase.MatchString(entry.Name()) {
			dirs = append(dirs, path.Join(root, entry.Name()))
		}
	}

	slices.Sort(dirs)

	return dirs, nil
}

// IsErrorTest reports whether an acceptance test expects a failure
func IsErrorTest(testPath string) bool {
	return strings.HasSuffix(path.Base(testPath), errorCaseSuffix)
}
