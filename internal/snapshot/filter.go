// Package snapshot implements the selection, reading, and assembly pipeline
// that turns a directory tree into one Markdown document.
package snapshot

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/snapmd/snapmd/internal/types"
	"github.com/snapmd/snapmd/internal/utils"
)

// PathFilter decides which directories are traversed and which files are
// included in the snapshot. It is immutable after construction and safe for
// concurrent use.
type PathFilter struct {
	includeExtensions  map[string]struct{}
	excludeDirectories map[string]struct{}
	excludeFilenames   map[string]struct{}
	includeGlobs       []glob.Glob
	excludeGlobs       []glob.Glob
	gitignoreGlobs     []glob.Glob
}

// NewPathFilter constructs a filter from the run options and the gitignore
// patterns loaded for the root, compiling every glob pattern once.
func NewPathFilter(options types.Options, gitignorePatterns []string) *PathFilter {
	filter := &PathFilter{
		includeExtensions:  make(map[string]struct{}, len(options.IncludeExtensions)),
		excludeDirectories: make(map[string]struct{}, len(options.ExcludeDirectories)),
		excludeFilenames:   make(map[string]struct{}, len(options.ExcludeFilenames)),
	}
	for _, extension := range options.IncludeExtensions {
		filter.includeExtensions[strings.ToLower(extension)] = struct{}{}
	}
	for _, directoryName := range options.ExcludeDirectories {
		filter.excludeDirectories[directoryName] = struct{}{}
	}
	for _, fileName := range options.ExcludeFilenames {
		filter.excludeFilenames[fileName] = struct{}{}
	}
	filter.includeGlobs = compilePatterns(options.IncludeGlobs)
	filter.excludeGlobs = compilePatterns(options.ExcludeGlobs)
	filter.gitignoreGlobs = compilePatterns(gitignorePatterns)
	return filter
}

// compilePatterns compiles flat glob patterns. The patterns apply to the
// root-relative path as one string: no separator runes are registered, so "*"
// and "?" cross path boundaries exactly like shell-style fnmatch. "**" gains
// no recursive-descent meaning; a pattern such as "src/**" therefore matches
// textually. Patterns that fail to compile never match.
func compilePatterns(patterns []string) []glob.Glob {
	var compiled []glob.Glob
	for _, pattern := range patterns {
		matcher, compileError := glob.Compile(pattern)
		if compileError != nil {
			continue
		}
		compiled = append(compiled, matcher)
	}
	return compiled
}

// IncludeDirectory reports whether traversal descends into a directory with
// the provided base name. Hidden directories and configured exclusions are
// pruned.
func (filter *PathFilter) IncludeDirectory(directoryName string) bool {
	if strings.HasPrefix(directoryName, utils.HiddenNamePrefix) {
		return false
	}
	_, excluded := filter.excludeDirectories[directoryName]
	return !excluded
}

// IncludeFile reports whether a file identified by its root-relative slash
// path belongs in the snapshot. Checks run in fixed order, first failure
// excludes: exclude globs, gitignore patterns, include globs, excluded
// filenames, extension whitelist.
func (filter *PathFilter) IncludeFile(relativePath string) bool {
	if matchesAny(filter.excludeGlobs, relativePath) {
		return false
	}
	if matchesAny(filter.gitignoreGlobs, relativePath) {
		return false
	}
	if len(filter.includeGlobs) > 0 && !matchesAny(filter.includeGlobs, relativePath) {
		return false
	}
	baseName := filepath.Base(relativePath)
	if _, excluded := filter.excludeFilenames[baseName]; excluded {
		return false
	}
	if len(filter.includeExtensions) == 0 {
		return true
	}
	_, included := filter.includeExtensions[utils.FileExtension(baseName)]
	return included
}

func matchesAny(matchers []glob.Glob, candidate string) bool {
	for _, matcher := range matchers {
		if matcher.Match(candidate) {
			return true
		}
	}
	return false
}
