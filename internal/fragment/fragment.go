package fragment

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Reader loads generated markdown fragments by file name.
// A missing fragment is reported with an error matching fs.ErrNotExist.
type Reader interface {
	ReadFragment(name string) (string, error)
}

// DirReader reads fragments from a directory on disk.
type DirReader struct {
	Dir string
}

func (r DirReader) ReadFragment(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FSReader reads fragments from the root of a file system.
type FSReader struct {
	FS fs.FS
}

func (r FSReader) ReadFragment(name string) (string, error) {
	b, err := fs.ReadFile(r.FS, name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Line prefixes written by api-documenter that carry no reference content.
var boilerplatePrefixes = []string{
	"## ",
	"[Home]",
	"<!-- ",
	"**Signature:**",
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// Clean drops boilerplate lines from a fragment and trims the result.
func Clean(src string) string {
	lines := lineBreak.Split(src, -1)
	kept := lines[:0]
	for _, line := range lines {
		if isBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isBoilerplate(line string) bool {
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

var (
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	slotTag     = regexp.MustCompile(`<Slot/>`)
)

// Sanitize removes HTML comments and <Slot/> placeholders left in content.
func Sanitize(content string) string {
	content = htmlComment.ReplaceAllString(content, "")
	return slotTag.ReplaceAllString(content, "")
}
