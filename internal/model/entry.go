package model

import (
	"path/filepath"
	"sort"
)

// DiscoveredEntry is one search hit, published once and never retained
type DiscoveredEntry struct {
	IsFolder  bool   `json:"is_folder"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Extension string `json:"extension"`
}

// NewEntry builds an entry for a filesystem path
func NewEntry(path string, isFolder bool) DiscoveredEntry {
	name := filepath.Base(path)
	_, ext := SplitName(name)
	return DiscoveredEntry{
		IsFolder:  isFolder,
		Name:      name,
		Path:      path,
		Extension: ext,
	}
}

// SortEntries orders folders before files, then by name, then by path
func SortEntries(entries []DiscoveredEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsFolder != entries[j].IsFolder {
			return entries[i].IsFolder
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Path < entries[j].Path
	})
}
