// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snapmd/snapmd/internal/config"
	"github.com/snapmd/snapmd/internal/output"
	"github.com/snapmd/snapmd/internal/services/clipboard"
	"github.com/snapmd/snapmd/internal/snapshot"
	"github.com/snapmd/snapmd/internal/tokenizer"
	"github.com/snapmd/snapmd/internal/types"
	"github.com/snapmd/snapmd/internal/utils"
)

const (
	rootUse              = "snapmd [path]"
	rootShortDescription = "generate a Markdown project snapshot for LLMs"
	rootLongDescription  = `snapmd walks a directory tree and writes one Markdown document containing
an ASCII directory tree and a fenced code block per selected file.
Selection combines extension, glob, directory, filename, and best-effort
.gitignore rules; oversized files are truncated to head and tail lines.`
	rootUsageExample = `  # Snapshot the current directory with defaults
  snapmd

  # Snapshot a project honoring .gitignore, capping files at 300000 bytes
  snapmd --root ./project --respect-gitignore --max-bytes 300000

  # Only Python and JSON files, driven by a TOML config file
  snapmd --config snapshot.config.toml --include-ext .py --include-ext .json`

	configFlagName           = "config"
	rootFlagName             = "root"
	outFlagName              = "out"
	labelFlagName            = "label"
	outTemplateFlagName      = "out-template"
	includeExtFlagName       = "include-ext"
	excludeDirFlagName       = "exclude-dir"
	excludeFileFlagName      = "exclude-file"
	includeGlobFlagName      = "include-glob"
	excludeGlobFlagName      = "exclude-glob"
	respectGitignoreFlagName = "respect-gitignore"
	noStatsFlagName          = "no-stats"
	maxBytesFlagName         = "max-bytes"
	headLinesFlagName        = "head-lines"
	tailLinesFlagName        = "tail-lines"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	clipboardFlagName        = "clipboard"
	debugFlagName            = "debug"
	versionFlagName          = "version"

	configFlagDescription           = "path to a TOML/JSON/INI configuration file"
	rootFlagDescription             = "root directory to scan"
	outFlagDescription              = "output markdown file path"
	labelFlagDescription            = "label used in the output filename template"
	outTemplateFlagDescription      = "output filename template supporting {label}, {date}, {time}"
	includeExtFlagDescription       = "whitelist of file extensions; '' matches extensionless files, empty list matches all"
	excludeDirFlagDescription       = "directory names to exclude"
	excludeFileFlagDescription      = "file names to exclude"
	includeGlobFlagDescription      = "glob(s) a file's relative path must match"
	excludeGlobFlagDescription      = "glob(s) that exclude a file when matched"
	respectGitignoreFlagDescription = "apply root .gitignore lines as flat glob patterns (best effort)"
	noStatsFlagDescription          = "omit the statistics footer"
	maxBytesFlagDescription         = "max bytes to read per file; 0 = unlimited"
	headLinesFlagDescription        = "first N lines kept when a file is truncated"
	tailLinesFlagDescription        = "last N lines kept when a file is truncated"
	tokensFlagDescription           = "estimate token count of the snapshot"
	modelFlagDescription            = "tokenizer model used for token estimation"
	clipboardFlagDescription        = "also copy the snapshot to the system clipboard"
	debugFlagDescription            = "print resolved options"
	versionFlagDescription          = "display application version"

	versionTemplate        = "snapmd version: %s\n"
	savedConfirmationLine  = "Project snapshot saved to: %s\n"
	warningGitignoreFormat = "Warning: unable to read .gitignore: %v\n"
	warningClipboardFormat = "Warning: unable to copy snapshot to clipboard: %v\n"

	// errorCreateOutputDirFormat reports failure to create the output directory.
	errorCreateOutputDirFormat = "creating output directory %s: %w"
	// errorWriteOutputFormat reports failure to write the snapshot file.
	errorWriteOutputFormat = "writing snapshot to %s: %w"

	outputFileMode      = 0o644
	outputDirectoryMode = 0o755
)

// flagValues stores the raw values bound to the root command's flags.
type flagValues struct {
	configPath       string
	root             string
	out              string
	label            string
	outTemplate      string
	includeExts      []string
	excludeDirs      []string
	excludeFiles     []string
	includeGlobs     []string
	excludeGlobs     []string
	respectGitignore bool
	noStats          bool
	maxBytes         int64
	headLines        int
	tailLines        int
	tokens           bool
	model            string
	copyToClipboard  bool
	debug            bool
}

// Execute runs the snapmd application.
func Execute() error {
	rootCommand := NewRootCommand()
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand() *cobra.Command {
	var showVersion bool
	var values flagValues

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 1 {
				values.root = arguments[0]
			}
			return runSnapshot(command, arguments, &values)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	flags := rootCommand.Flags()
	flags.StringVar(&values.configPath, configFlagName, "", configFlagDescription)
	flags.StringVar(&values.root, rootFlagName, "", rootFlagDescription)
	flags.StringVar(&values.out, outFlagName, "", outFlagDescription)
	flags.StringVar(&values.label, labelFlagName, "", labelFlagDescription)
	flags.StringVar(&values.outTemplate, outTemplateFlagName, "", outTemplateFlagDescription)
	flags.StringSliceVar(&values.includeExts, includeExtFlagName, nil, includeExtFlagDescription)
	flags.StringSliceVar(&values.excludeDirs, excludeDirFlagName, nil, excludeDirFlagDescription)
	flags.StringSliceVar(&values.excludeFiles, excludeFileFlagName, nil, excludeFileFlagDescription)
	flags.StringArrayVar(&values.includeGlobs, includeGlobFlagName, nil, includeGlobFlagDescription)
	flags.StringArrayVar(&values.excludeGlobs, excludeGlobFlagName, nil, excludeGlobFlagDescription)
	flags.BoolVar(&values.respectGitignore, respectGitignoreFlagName, false, respectGitignoreFlagDescription)
	flags.BoolVar(&values.noStats, noStatsFlagName, false, noStatsFlagDescription)
	flags.Int64Var(&values.maxBytes, maxBytesFlagName, 0, maxBytesFlagDescription)
	flags.IntVar(&values.headLines, headLinesFlagName, 0, headLinesFlagDescription)
	flags.IntVar(&values.tailLines, tailLinesFlagName, 0, tailLinesFlagDescription)
	flags.BoolVar(&values.tokens, tokensFlagName, false, tokensFlagDescription)
	flags.StringVar(&values.model, modelFlagName, config.DefaultTokenizerModel, modelFlagDescription)
	flags.BoolVar(&values.copyToClipboard, clipboardFlagName, false, clipboardFlagDescription)
	flags.BoolVar(&values.debug, debugFlagName, false, debugFlagDescription)
	return rootCommand
}

// runSnapshot executes one snapshot run: merge configuration, assemble the
// document, and write it exactly once.
func runSnapshot(command *cobra.Command, arguments []string, values *flagValues) error {
	var fileConfiguration config.FileConfiguration
	if values.configPath != "" {
		loadedConfiguration, loadError := config.LoadFileConfiguration(values.configPath)
		if loadError != nil {
			return loadError
		}
		fileConfiguration = loadedConfiguration
	}

	overrides := collectFlagOverrides(command, arguments, values)
	settings, resolveError := config.Resolve(fileConfiguration.Merge(overrides))
	if resolveError != nil {
		return resolveError
	}

	var debugLogger *zap.Logger
	if values.debug {
		createdLogger, loggerError := utils.NewDebugLogger()
		if loggerError == nil {
			debugLogger = createdLogger
			defer debugLogger.Sync()
		}
	}
	if debugLogger != nil {
		logResolvedSettings(debugLogger, settings)
	}

	var gitignorePatterns []string
	if settings.Options.RespectGitignore {
		patterns, gitignoreError := config.LoadGitignorePatterns(settings.Options.RootPath)
		if gitignoreError != nil {
			fmt.Fprintf(os.Stderr, warningGitignoreFormat, gitignoreError)
		}
		gitignorePatterns = patterns
	}

	var tokenCounter tokenizer.Counter
	if settings.TokensEnabled {
		createdCounter, _, counterError := tokenizer.NewCounter(settings.TokenizerModel)
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
	}

	assembler := snapshot.NewAssembler(settings.Options, gitignorePatterns, tokenCounter)
	document := assembler.Build()
	if debugLogger != nil {
		logSnapshotSummary(debugLogger, document)
	}
	renderedMarkdown := output.RenderMarkdown(document)

	outputPath := settings.OutputPath
	if outputPath == "" {
		outputPath = ExpandOutputTemplate(settings.OutputTemplate, settings.Label, time.Now())
	}
	if outputDirectory := filepath.Dir(outputPath); outputDirectory != "." {
		if mkdirError := os.MkdirAll(outputDirectory, outputDirectoryMode); mkdirError != nil {
			return fmt.Errorf(errorCreateOutputDirFormat, outputDirectory, mkdirError)
		}
	}
	if writeError := os.WriteFile(outputPath, []byte(renderedMarkdown), outputFileMode); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}

	fmt.Printf(savedConfirmationLine, outputPath)

	if settings.CopyToClipboard {
		copier := clipboard.NewService()
		if copyError := copier.Copy(renderedMarkdown); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}
	return nil
}

// collectFlagOverrides converts explicitly set command line flags into an
// optional-valued configuration. Only changed flags produce overrides, which
// is what gives the command line per-option precedence over the file.
func collectFlagOverrides(command *cobra.Command, arguments []string, values *flagValues) config.FileConfiguration {
	var overrides config.FileConfiguration
	flags := command.Flags()

	if flags.Changed(rootFlagName) || len(arguments) == 1 {
		overrides.Root = &values.root
	}
	if flags.Changed(outFlagName) {
		overrides.Out = &values.out
	}
	if flags.Changed(labelFlagName) {
		overrides.Label = &values.label
	}
	if flags.Changed(outTemplateFlagName) {
		overrides.OutTemplate = &values.outTemplate
	}
	if flags.Changed(includeExtFlagName) {
		overrides.IncludeExts = &values.includeExts
	}
	if flags.Changed(excludeDirFlagName) {
		overrides.ExcludeDirs = &values.excludeDirs
	}
	if flags.Changed(excludeFileFlagName) {
		overrides.ExcludeFiles = &values.excludeFiles
	}
	if flags.Changed(includeGlobFlagName) {
		overrides.IncludeGlobs = &values.includeGlobs
	}
	if flags.Changed(excludeGlobFlagName) {
		overrides.ExcludeGlobs = &values.excludeGlobs
	}
	if flags.Changed(respectGitignoreFlagName) {
		overrides.RespectGitignore = &values.respectGitignore
	}
	if flags.Changed(noStatsFlagName) {
		showStats := !values.noStats
		overrides.ShowStats = &showStats
	}
	if flags.Changed(maxBytesFlagName) {
		overrides.MaxBytes = &values.maxBytes
	}
	if flags.Changed(headLinesFlagName) {
		overrides.HeadLines = &values.headLines
	}
	if flags.Changed(tailLinesFlagName) {
		overrides.TailLines = &values.tailLines
	}
	if flags.Changed(tokensFlagName) {
		overrides.Tokens = &values.tokens
	}
	if flags.Changed(modelFlagName) {
		overrides.Model = &values.model
	}
	if flags.Changed(clipboardFlagName) {
		overrides.Clipboard = &values.copyToClipboard
	}
	return overrides
}

// logResolvedSettings prints the resolved run settings for --debug.
func logResolvedSettings(logger *zap.Logger, settings config.RunSettings) {
	logger.Sugar().Debugw("resolved options",
		"root", settings.Options.RootPath,
		"include_exts", settings.Options.IncludeExtensions,
		"exclude_dirs", settings.Options.ExcludeDirectories,
		"exclude_files", settings.Options.ExcludeFilenames,
		"include_globs", settings.Options.IncludeGlobs,
		"exclude_globs", settings.Options.ExcludeGlobs,
		"respect_gitignore", settings.Options.RespectGitignore,
		"max_bytes", settings.Options.MaxFileBytes,
		"head_lines", settings.Options.HeadLineCount,
		"tail_lines", settings.Options.TailLineCount,
		"show_stats", settings.Options.ShowStatistics,
		"out", settings.OutputPath,
		"label", settings.Label,
		"out_template", settings.OutputTemplate,
	)
}

// logSnapshotSummary prints the per-run totals for --debug.
func logSnapshotSummary(logger *zap.Logger, document *types.SnapshotDocument) {
	logger.Sugar().Debugw("snapshot assembled",
		"files_included", document.Statistics.FilesIncluded,
		"files_truncated_by_bytes", document.Statistics.FilesTruncatedByBytes,
		"files_skipped_as_binary_or_unreadable", document.Statistics.FilesSkippedAsBinaryOrUnreadable,
		"total_size", utils.FormatFileSize(document.Statistics.TotalSizeBytes),
	)
}
