package testhelpers

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// FixturePath resolves a fixture from a sibling package under internal/.
func FixturePath(name string) string {
	return filepath.Join("..", "testhelpers", "fixtures", name)
}

func LoadFixture(name string) ([]byte, error) {
	return os.ReadFile(FixturePath(name))
}

// BuildCSV renders a ';' separated file with a header row.
func BuildCSV(header []string, rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, ";"))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(strings.Join(r, ";"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// EncodeLatin1 encodes s as ISO-8859-1. It panics on characters outside the
// charset, which only happens with a broken test fixture.
func EncodeLatin1(s string) []byte {
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		panic("testhelpers: " + err.Error())
	}
	return []byte(out)
}

// WriteTemp writes data into dir and returns the file path.
func WriteTemp(dir, name string, data []byte) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic("testhelpers: " + err.Error())
	}
	return path
}
