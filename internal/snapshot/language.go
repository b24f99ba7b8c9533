package snapshot

// languageTagsByExtension maps lower-cased file extensions to the language
// tag placed on the opening Markdown fence. Unknown extensions fall back to
// a plain fence.
var languageTagsByExtension = map[string]string{
	".py":    "python",
	".go":    "go",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".rb":    "ruby",
	".rs":    "rust",
	".java":  "java",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".sh":    "bash",
	".bash":  "bash",
	".sql":   "sql",
	".md":    "markdown",
	".json":  "json",
	".toml":  "toml",
	".yml":   "yaml",
	".yaml":  "yaml",
	".xml":   "xml",
	".html":  "html",
	".css":   "css",
	".txt":   "text",
	".cfg":   "ini",
	".ini":   "ini",
	".test":  "test",
	".proto": "protobuf",
	".mk":    "makefile",
}

// LanguageTagForExtension returns the Markdown fence hint for the provided
// lower-cased extension, or the empty string when none is known.
func LanguageTagForExtension(extension string) string {
	return languageTagsByExtension[extension]
}
