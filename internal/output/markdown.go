// Package output serializes assembled snapshot documents to Markdown.
package output

import (
	"fmt"
	"strings"

	"github.com/snapmd/snapmd/internal/types"
)

const (
	// documentTitle is the fixed first line of every snapshot.
	documentTitle = "# Project Snapshot\n"
	// treeSectionHeader opens the directory tree section.
	treeSectionHeader = "## Directory Tree\n"
	// statsSectionHeader opens the statistics footer.
	statsSectionHeader = "---\n## Snapshot Stats\n"
	// fileSectionFormat renders one per-file section: relative path, fence
	// language tag, and body.
	fileSectionFormat = "## %s\n```%s\n%s\n```\n\n"
)

// RenderMarkdown serializes the document in its fixed order: title header,
// tree section, file sections, and the optional statistics footer. The
// truncation counter is reported only when a byte cap was configured.
func RenderMarkdown(document *types.SnapshotDocument) string {
	var builder strings.Builder

	builder.WriteString(documentTitle)
	builder.WriteString(treeSectionHeader)
	builder.WriteString("```text\n")
	builder.WriteString(document.TreeText)
	builder.WriteString("\n```\n\n")

	for _, section := range document.Sections {
		fmt.Fprintf(&builder, fileSectionFormat, section.RelativePath, section.LanguageTag, section.Text)
	}

	if document.ShowStatistics {
		builder.WriteString(statsSectionHeader)
		fmt.Fprintf(&builder, "- files_included: %d\n", document.Statistics.FilesIncluded)
		if document.MaxBytesConfigured {
			fmt.Fprintf(&builder, "- files_truncated_by_bytes: %d\n", document.Statistics.FilesTruncatedByBytes)
		}
		fmt.Fprintf(&builder, "- files_skipped_as_binary_or_unreadable: %d\n", document.Statistics.FilesSkippedAsBinaryOrUnreadable)
		if document.TokenizerModel != "" {
			fmt.Fprintf(&builder, "- estimated_tokens: %d\n", document.EstimatedTokens)
		}
	}

	return builder.String()
}
