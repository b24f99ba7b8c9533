// Package utils contains general helper functions used across the snapmd tool.
package utils

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// GitIgnoreFileName is the name of the Git ignore file read at the root.
const GitIgnoreFileName = ".gitignore"

// HiddenNamePrefix marks hidden directory entries on POSIX systems.
const HiddenNamePrefix = "."

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the slash-separated relative path from root to
// fullPath. Returns the cleaned fullPath if relative calculation fails and "."
// if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// ExpandPath expands environment variables and a leading "~" in the provided
// path and resolves it to absolute form. An empty input resolves to the
// current working directory.
func ExpandPath(pathValue string) (string, error) {
	expanded := strings.TrimSpace(os.ExpandEnv(pathValue))
	if expanded == "" {
		expanded = "."
	}
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		homeDirectory, homeError := os.UserHomeDir()
		if homeError == nil && homeDirectory != "" {
			expanded = filepath.Join(homeDirectory, strings.TrimPrefix(expanded[1:], "/"))
		}
	}
	return filepath.Abs(expanded)
}

// FileExtension returns the lower-cased extension of the provided base name
// including the leading dot. Dotfiles without a further dot, such as ".env",
// report the empty extension, as do names without any dot and names ending in
// a bare dot.
func FileExtension(baseName string) string {
	extension := filepath.Ext(baseName)
	if extension == baseName || extension == "." {
		return ""
	}
	return strings.ToLower(extension)
}

// DecodeUTF8Lossy converts raw bytes to a string, substituting every invalid
// byte with the Unicode replacement character. Decoding never fails.
func DecodeUTF8Lossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var builder strings.Builder
	builder.Grow(len(data))
	for len(data) > 0 {
		decodedRune, runeSize := utf8.DecodeRune(data)
		if decodedRune == utf8.RuneError && runeSize == 1 {
			builder.WriteRune(utf8.RuneError)
		} else {
			builder.Write(data[:runeSize])
		}
		data = data[runeSize:]
	}
	return builder.String()
}
