// Package types defines every cross-package data structure used by the snapmd CLI.
package types

// TruncationMarker is the literal line inserted between the head and tail of a
// file whose content was cut by the per-file byte cap.
const TruncationMarker = "... [truncated] ..."

// Options is the immutable configuration of one snapshot run. It is resolved
// once at startup and read-only afterwards.
type Options struct {
	// RootPath is the absolute directory the snapshot is taken from.
	RootPath string
	// IncludeExtensions whitelists lower-cased file extensions including the
	// leading dot. The empty string admits extensionless files. An empty
	// slice admits every extension.
	IncludeExtensions []string
	// ExcludeDirectories lists directory base names pruned from traversal.
	ExcludeDirectories []string
	// ExcludeFilenames lists file base names excluded from the snapshot.
	ExcludeFilenames []string
	// IncludeGlobs, when non-empty, requires a file's root-relative path to
	// match at least one pattern.
	IncludeGlobs []string
	// ExcludeGlobs excludes any file whose root-relative path matches.
	ExcludeGlobs []string
	// RespectGitignore enables best-effort matching of root .gitignore lines.
	RespectGitignore bool
	// MaxFileBytes caps the bytes read per file; zero means no cap.
	MaxFileBytes int64
	// HeadLineCount is the number of leading lines kept when truncating.
	HeadLineCount int
	// TailLineCount is the number of trailing lines kept when truncating.
	TailLineCount int
	// ShowStatistics appends the statistics footer to the document.
	ShowStatistics bool
}

// FileRecord is the outcome of reading one selected file.
type FileRecord struct {
	AbsolutePath  string
	RelativePath  string
	SizeBytes     int64
	Text          string
	Truncated     bool
	BinarySkipped bool
}

// FileSection is one per-file block of the assembled document.
type FileSection struct {
	RelativePath string
	LanguageTag  string
	Text         string
}

// SnapshotStatistics aggregates the per-run counters reported in the footer.
// TotalSizeBytes sums the on-disk sizes of the emitted files; it feeds the
// debug summary rather than the footer.
type SnapshotStatistics struct {
	FilesIncluded                    int
	FilesTruncatedByBytes            int
	FilesSkippedAsBinaryOrUnreadable int
	TotalSizeBytes                   int64
}

// SnapshotDocument is the fully assembled snapshot prior to serialization.
type SnapshotDocument struct {
	TreeText           string
	Sections           []FileSection
	Statistics         SnapshotStatistics
	ShowStatistics     bool
	MaxBytesConfigured bool
	// EstimatedTokens reports the token estimate of the document body when
	// token counting was requested; zero otherwise.
	EstimatedTokens int
	// TokenizerModel names the model the estimate was produced with.
	TokenizerModel string
}
