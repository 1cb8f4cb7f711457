package testhelper

import (
	"testing"
	"testing/fstest"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	src := `
		items
			.filter(keep)
		`

	assert.Equal(t, "items\n  .filter(keep)\n", TrimIndent(t, src))
	assert.Equal(t, "single", TrimIndent(t, "single"))
}

func TestGetCaller(t *testing.T) {
	assert.Contains(t, GetCaller(t), "helper_test.go:")
}

func TestGetAcceptanceTestDirs(t *testing.T) {
	fsys := fstest.MapFS{
		"cases/002_second/input.typc":  {Data: []byte("b")},
		"cases/001_first/input.typc":   {Data: []byte("a")},
		"cases/003_broken_err/x.typc":  {Data: []byte("c")},
		"cases/notes/readme.txt":       {Data: []byte("skip")},
		"cases/004_file_not_directory": {Data: []byte("skip")},
	}

	dirs, err := GetAcceptanceTestDirs(fsys, "cases")
	assert.NoError(t, err)
	assert.Equal(t, []string{"cases/001_first", "cases/002_second", "cases/003_broken_err"}, dirs)

	_, err = GetAcceptanceTestDirs(fsys, "missing")
	assert.Error(t, err)
}

func TestIsErrorTest(t *testing.T) {
	assert.True(t, IsErrorTest("cases/003_broken_err"))
	assert.False(t, IsErrorTest("cases/001_first"))
}
