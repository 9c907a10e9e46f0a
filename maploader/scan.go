package maploader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/tilemapper/internal/errors"
)

// Entry is a map definition file found by Scan
type Entry struct {
	Name string // File name without extension
	Path string // Path to the definition file
}

// Scan lists the map definition files directly inside dir, sorted by name.
// Hidden files and files without a supported extension are skipped.
func Scan(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Filesystem(err, dir)
	}

	var maps []Entry
	for _, entry := range entries {
		// Skip directories
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		ext := filepath.Ext(name)
		if !supported(ext) {
			continue
		}

		maps = append(maps, Entry{
			Name: strings.TrimSuffix(name, ext),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].Path < maps[j].Path })

	return maps, nil
}

func supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
