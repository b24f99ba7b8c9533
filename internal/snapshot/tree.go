package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/snapmd/snapmd/internal/utils"
)

const (
	// connectorMiddle prefixes every sibling except the last.
	connectorMiddle = "|-- "
	// connectorLast prefixes the last sibling of a directory.
	connectorLast = "`-- "
	// indentContinued extends the prefix below a non-last directory.
	indentContinued = "|   "
	// indentFinal extends the prefix below a last directory.
	indentFinal = "    "

	// warningSkipSubdirFormat is used when a subdirectory cannot be listed.
	warningSkipSubdirFormat = "Warning: skipping subdirectory %s: %v\n"
)

// treeEntry is one directory listing element retained for rendering.
type treeEntry struct {
	name        string
	isDirectory bool
}

// RenderTree produces a deterministic ASCII-only listing of every directory
// and file under rootPath that passes the filter. Directories are pruned by
// the directory rule, files by the file rule; files that sniff as binary are
// omitted. Siblings are ordered directories first, then by lower-cased name.
// The first line is the root directory's own base name. Unreadable
// subdirectories are skipped with a warning on stderr.
func RenderTree(rootPath string, filter *PathFilter) string {
	var lines []string
	lines = append(lines, filepath.Base(rootPath))
	lines = renderTreeLevel(rootPath, rootPath, "", filter, lines)
	return strings.Join(lines, "\n")
}

func renderTreeLevel(currentPath, rootPath, prefix string, filter *PathFilter, lines []string) []string {
	entries := listFilteredEntries(currentPath, rootPath, filter)
	for entryIndex, entry := range entries {
		connector := connectorMiddle
		childIndent := indentContinued
		if entryIndex == len(entries)-1 {
			connector = connectorLast
			childIndent = indentFinal
		}
		lines = append(lines, prefix+connector+entry.name)
		if entry.isDirectory {
			lines = renderTreeLevel(filepath.Join(currentPath, entry.name), rootPath, prefix+childIndent, filter, lines)
		}
	}
	return lines
}

// listFilteredEntries lists one directory, applies the filter, and sorts the
// survivors directories-first then alphabetically by lower-cased name.
func listFilteredEntries(currentPath, rootPath string, filter *PathFilter) []treeEntry {
	directoryEntries, readDirectoryError := os.ReadDir(currentPath)
	if readDirectoryError != nil {
		fmt.Fprintf(os.Stderr, warningSkipSubdirFormat, currentPath, readDirectoryError)
		return nil
	}

	var entries []treeEntry
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() {
			if filter.IncludeDirectory(entryName) {
				entries = append(entries, treeEntry{name: entryName, isDirectory: true})
			}
			continue
		}
		childPath := filepath.Join(currentPath, entryName)
		relativePath := utils.RelativePathOrSelf(childPath, rootPath)
		if !filter.IncludeFile(relativePath) {
			continue
		}
		if utils.IsFileBinary(childPath) {
			continue
		}
		entries = append(entries, treeEntry{name: entryName})
	}

	sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
		first, second := entries[firstIndex], entries[secondIndex]
		if first.isDirectory != second.isDirectory {
			return first.isDirectory
		}
		return strings.ToLower(first.name) < strings.ToLower(second.name)
	})
	return entries
}
