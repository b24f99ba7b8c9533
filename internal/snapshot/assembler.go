package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/snapmd/snapmd/internal/tokenizer"
	"github.com/snapmd/snapmd/internal/types"
	"github.com/snapmd/snapmd/internal/utils"
)

const (
	// warningWalkPathFormat is used when a traversal entry cannot be visited.
	warningWalkPathFormat = "Warning: skipping %s: %v\n"
	// warningTokenCountFormat is used when token estimation fails.
	warningTokenCountFormat = "Warning: failed to count tokens: %v\n"
)

// Assembler orchestrates one snapshot run: it renders the directory tree,
// enumerates the selected files, reads them, and accumulates the document.
type Assembler struct {
	options      types.Options
	filter       *PathFilter
	tokenCounter tokenizer.Counter
	readWorkers  int
}

// NewAssembler constructs an assembler for the provided options and gitignore
// patterns. The optional token counter adds an estimate to the statistics.
func NewAssembler(options types.Options, gitignorePatterns []string, tokenCounter tokenizer.Counter) *Assembler {
	return &Assembler{
		options:      options,
		filter:       NewPathFilter(options, gitignorePatterns),
		tokenCounter: tokenCounter,
		readWorkers:  runtime.GOMAXPROCS(0),
	}
}

// Build produces the snapshot document. File reads run on a bounded worker
// pool; results are stored by position and assembled in the deterministic
// sorted order, so concurrency never changes the output.
func (assembler *Assembler) Build() *types.SnapshotDocument {
	treeText := RenderTree(assembler.options.RootPath, assembler.filter)
	selectedPaths := assembler.collectFiles()
	records := assembler.readFiles(selectedPaths)

	document := &types.SnapshotDocument{
		TreeText:           treeText,
		ShowStatistics:     assembler.options.ShowStatistics,
		MaxBytesConfigured: assembler.options.MaxFileBytes > 0,
	}

	for _, record := range records {
		if record.BinarySkipped && record.Text == "" {
			document.Statistics.FilesSkippedAsBinaryOrUnreadable++
			continue
		}
		sectionText := record.Text
		if record.Truncated {
			sectionText = ShapeTruncatedText(sectionText, assembler.options.HeadLineCount, assembler.options.TailLineCount)
			document.Statistics.FilesTruncatedByBytes++
		}
		sectionText = strings.Trim(sectionText, "\n")
		document.Sections = append(document.Sections, types.FileSection{
			RelativePath: record.RelativePath,
			LanguageTag:  LanguageTagForExtension(utils.FileExtension(filepath.Base(record.RelativePath))),
			Text:         sectionText,
		})
		document.Statistics.FilesIncluded++
		document.Statistics.TotalSizeBytes += record.SizeBytes
	}

	assembler.estimateTokens(document)
	return document
}

// collectFiles walks the root, pruning directories by the directory rule and
// keeping files passing the file rule. The resulting paths are deduplicated
// and sorted case-insensitively by full path; this order is authoritative for
// emission regardless of filesystem iteration order. Traversal errors skip
// the offending entry, never the whole run.
func (assembler *Assembler) collectFiles() []string {
	rootPath := assembler.options.RootPath
	seenPaths := make(map[string]struct{})
	var selectedPaths []string

	walkFunction := func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			fmt.Fprintf(os.Stderr, warningWalkPathFormat, currentPath, walkError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			if currentPath != rootPath && !assembler.filter.IncludeDirectory(directoryEntry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		relativePath := utils.RelativePathOrSelf(currentPath, rootPath)
		if !assembler.filter.IncludeFile(relativePath) {
			return nil
		}
		if _, seen := seenPaths[currentPath]; seen {
			return nil
		}
		seenPaths[currentPath] = struct{}{}
		selectedPaths = append(selectedPaths, currentPath)
		return nil
	}

	if walkError := filepath.WalkDir(rootPath, walkFunction); walkError != nil {
		fmt.Fprintf(os.Stderr, warningWalkPathFormat, rootPath, walkError)
	}

	sort.Slice(selectedPaths, func(firstIndex, secondIndex int) bool {
		firstLower := strings.ToLower(selectedPaths[firstIndex])
		secondLower := strings.ToLower(selectedPaths[secondIndex])
		if firstLower != secondLower {
			return firstLower < secondLower
		}
		return selectedPaths[firstIndex] < selectedPaths[secondIndex]
	})
	return selectedPaths
}

// readFiles reads every selected file on a bounded worker pool. Each worker
// writes into its own slot, so the slice order mirrors the sorted input.
func (assembler *Assembler) readFiles(selectedPaths []string) []types.FileRecord {
	records := make([]types.FileRecord, len(selectedPaths))

	shapeTruncation := assembler.options.HeadLineCount > 0 || assembler.options.TailLineCount > 0

	var group errgroup.Group
	group.SetLimit(assembler.readWorkers)
	for pathIndex, absolutePath := range selectedPaths {
		pathIndex, absolutePath := pathIndex, absolutePath
		group.Go(func() error {
			text, truncated, binarySkipped := ReadFileContent(absolutePath, assembler.options.MaxFileBytes, shapeTruncation)
			record := types.FileRecord{
				AbsolutePath:  absolutePath,
				RelativePath:  utils.RelativePathOrSelf(absolutePath, assembler.options.RootPath),
				Text:          text,
				Truncated:     truncated,
				BinarySkipped: binarySkipped,
			}
			if fileInfo, statError := os.Stat(absolutePath); statError == nil {
				record.SizeBytes = fileInfo.Size()
			}
			records[pathIndex] = record
			return nil
		})
	}
	// Workers never return errors; read failures degrade to binary skips.
	_ = group.Wait()
	return records
}

// estimateTokens counts tokens over the tree and every section body when a
// counter is configured.
func (assembler *Assembler) estimateTokens(document *types.SnapshotDocument) {
	if assembler.tokenCounter == nil {
		return
	}
	totalTokens := 0
	treeTokens, treeError := assembler.tokenCounter.CountString(document.TreeText)
	if treeError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, treeError)
		return
	}
	totalTokens += treeTokens
	for _, section := range document.Sections {
		sectionTokens, sectionError := assembler.tokenCounter.CountString(section.Text)
		if sectionError != nil {
			fmt.Fprintf(os.Stderr, warningTokenCountFormat, sectionError)
			return
		}
		totalTokens += sectionTokens
	}
	document.EstimatedTokens = totalTokens
	document.TokenizerModel = assembler.tokenCounter.Name()
}
