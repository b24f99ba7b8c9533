// Package config loads snapshot configuration from files and merges it with
// command line overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/snapmd/snapmd/internal/types"
	"github.com/snapmd/snapmd/internal/utils"
)

const (
	// errorConfigurationMissingFormat reports a configuration file that does not exist.
	errorConfigurationMissingFormat = "configuration file not found: %s"
	// errorConfigurationUnsupportedFormat reports an unrecognized configuration file extension.
	errorConfigurationUnsupportedFormat = "unsupported configuration format %q for %s"
	// errorConfigurationReadFormat reports a configuration file that could not be parsed.
	errorConfigurationReadFormat = "read configuration from %s: %w"
	// errorConfigurationDecodeFormat reports a configuration file that could not be decoded.
	errorConfigurationDecodeFormat = "decode configuration from %s: %w"
	// errorRootResolveFormat reports a root path that could not be resolved.
	errorRootResolveFormat = "resolve root path %s: %w"
	// errorRootMissingFormat reports a root directory that does not exist.
	errorRootMissingFormat = "root directory %s does not exist"
	// errorRootNotDirectoryFormat reports a root path that is not a directory.
	errorRootNotDirectoryFormat = "root path %s is not a directory"

	// snapshotSectionName is the INI section holding snapshot options.
	snapshotSectionName = "snapshot"
	// defaultSectionName is the INI section viper assigns to sectionless keys.
	defaultSectionName = "default"
)

// Default values applied after merging file and command line configuration.
const (
	DefaultHeadLineCount  = 200
	DefaultTailLineCount  = 80
	DefaultLabel          = "snapshot"
	DefaultOutputTemplate = "snapshots/{label}_{date}_{time}.md"
	DefaultTokenizerModel = "gpt-4o"
)

// DefaultExcludeDirectories lists directory names pruned when no explicit
// exclusion set is configured. Hidden directories are pruned regardless.
var DefaultExcludeDirectories = []string{
	".git",
	"node_modules",
	"vendor",
	"__pycache__",
	".venv",
	"venv",
	".idea",
	"dist",
	"build",
	"target",
	"out",
}

// FileConfiguration holds one optional value per snapshot option. Nil fields
// were not provided by the source. Two instances are combined by Merge with
// the override side winning per option, which keeps command line precedence
// over configuration files explicit and testable.
type FileConfiguration struct {
	Root             *string   `mapstructure:"root"`
	Out              *string   `mapstructure:"out"`
	Label            *string   `mapstructure:"label"`
	OutTemplate      *string   `mapstructure:"out_template"`
	IncludeExts      *[]string `mapstructure:"include_exts"`
	ExcludeDirs      *[]string `mapstructure:"exclude_dirs"`
	ExcludeFiles     *[]string `mapstructure:"exclude_files"`
	IncludeGlobs     *[]string `mapstructure:"include_globs"`
	ExcludeGlobs     *[]string `mapstructure:"exclude_globs"`
	RespectGitignore *bool     `mapstructure:"respect_gitignore"`
	MaxBytes         *int64    `mapstructure:"max_bytes"`
	HeadLines        *int      `mapstructure:"head_lines"`
	TailLines        *int      `mapstructure:"tail_lines"`
	ShowStats        *bool     `mapstructure:"show_stats"`
	Tokens           *bool     `mapstructure:"tokens"`
	Model            *string   `mapstructure:"model"`
	Clipboard        *bool     `mapstructure:"clipboard"`
}

// Merge overlays override onto the receiver returning the combined configuration.
// Options set on the override side replace the receiver's values; everything
// else is preserved.
func (configuration FileConfiguration) Merge(override FileConfiguration) FileConfiguration {
	result := configuration
	if override.Root != nil {
		result.Root = cloneString(override.Root)
	}
	if override.Out != nil {
		result.Out = cloneString(override.Out)
	}
	if override.Label != nil {
		result.Label = cloneString(override.Label)
	}
	if override.OutTemplate != nil {
		result.OutTemplate = cloneString(override.OutTemplate)
	}
	if override.IncludeExts != nil {
		result.IncludeExts = cloneStringSlice(override.IncludeExts)
	}
	if override.ExcludeDirs != nil {
		result.ExcludeDirs = cloneStringSlice(override.ExcludeDirs)
	}
	if override.ExcludeFiles != nil {
		result.ExcludeFiles = cloneStringSlice(override.ExcludeFiles)
	}
	if override.IncludeGlobs != nil {
		result.IncludeGlobs = cloneStringSlice(override.IncludeGlobs)
	}
	if override.ExcludeGlobs != nil {
		result.ExcludeGlobs = cloneStringSlice(override.ExcludeGlobs)
	}
	if override.RespectGitignore != nil {
		result.RespectGitignore = cloneBool(override.RespectGitignore)
	}
	if override.MaxBytes != nil {
		result.MaxBytes = cloneInt64(override.MaxBytes)
	}
	if override.HeadLines != nil {
		result.HeadLines = cloneInt(override.HeadLines)
	}
	if override.TailLines != nil {
		result.TailLines = cloneInt(override.TailLines)
	}
	if override.ShowStats != nil {
		result.ShowStats = cloneBool(override.ShowStats)
	}
	if override.Tokens != nil {
		result.Tokens = cloneBool(override.Tokens)
	}
	if override.Model != nil {
		result.Model = cloneString(override.Model)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

// LoadFileConfiguration reads the configuration file at the provided path.
// The format is derived from the file extension: TOML (.toml, .tml), JSON
// (.json), or INI (.ini, .cfg). INI files may keep their options either at
// the top level or inside a [snapshot] section. A missing or unsupported
// file is a fatal configuration error.
func LoadFileConfiguration(configurationPath string) (FileConfiguration, error) {
	if _, statError := os.Stat(configurationPath); statError != nil {
		return FileConfiguration{}, fmt.Errorf(errorConfigurationMissingFormat, configurationPath)
	}

	extension := strings.ToLower(filepath.Ext(configurationPath))
	var configType string
	switch extension {
	case ".toml", ".tml":
		configType = "toml"
	case ".json":
		configType = "json"
	case ".ini", ".cfg":
		configType = "ini"
	default:
		return FileConfiguration{}, fmt.Errorf(errorConfigurationUnsupportedFormat, extension, configurationPath)
	}

	reader := viper.New()
	reader.SetConfigFile(configurationPath)
	reader.SetConfigType(configType)
	if readError := reader.ReadInConfig(); readError != nil {
		return FileConfiguration{}, fmt.Errorf(errorConfigurationReadFormat, configurationPath, readError)
	}

	if configType == "ini" {
		return decodeSectionedConfiguration(reader, configurationPath)
	}

	var configuration FileConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return FileConfiguration{}, fmt.Errorf(errorConfigurationDecodeFormat, configurationPath, decodeError)
	}
	return configuration, nil
}

// decodeSectionedConfiguration flattens the INI default and [snapshot]
// sections, with the snapshot section taking precedence. List options given
// as a single delimited string are split on commas and whitespace.
func decodeSectionedConfiguration(reader *viper.Viper, configurationPath string) (FileConfiguration, error) {
	var merged FileConfiguration
	for _, sectionName := range []string{defaultSectionName, snapshotSectionName} {
		sectionReader := reader.Sub(sectionName)
		if sectionReader == nil {
			continue
		}
		var sectionConfiguration FileConfiguration
		if decodeError := sectionReader.Unmarshal(&sectionConfiguration); decodeError != nil {
			return FileConfiguration{}, fmt.Errorf(errorConfigurationDecodeFormat, configurationPath, decodeError)
		}
		merged = merged.Merge(sectionConfiguration)
	}
	merged.normalizeListValues()
	return merged, nil
}

// normalizeListValues splits every list option element on commas and
// whitespace, so INI values like "a.py, b.py" become two entries.
func (configuration *FileConfiguration) normalizeListValues() {
	for _, listField := range []**[]string{
		&configuration.IncludeExts,
		&configuration.ExcludeDirs,
		&configuration.ExcludeFiles,
		&configuration.IncludeGlobs,
		&configuration.ExcludeGlobs,
	} {
		if *listField == nil {
			continue
		}
		split := splitListValues(**listField)
		*listField = &split
	}
}

func splitListValues(values []string) []string {
	var result []string
	for _, value := range values {
		fields := strings.FieldsFunc(value, func(currentRune rune) bool {
			return currentRune == ',' || currentRune == ' ' || currentRune == '\t'
		})
		result = append(result, fields...)
	}
	return result
}

// RunSettings is the fully resolved configuration of one snapshot run.
type RunSettings struct {
	Options         types.Options
	OutputPath      string
	Label           string
	OutputTemplate  string
	ShowDebug       bool
	TokensEnabled   bool
	TokenizerModel  string
	CopyToClipboard bool
}

// Resolve converts the merged optional configuration into run settings,
// applying defaults, expanding the root path, and validating that the root
// is an existing directory.
func Resolve(configuration FileConfiguration) (RunSettings, error) {
	rootValue := "."
	if configuration.Root != nil {
		rootValue = *configuration.Root
	}
	rootPath, rootError := utils.ExpandPath(rootValue)
	if rootError != nil {
		return RunSettings{}, fmt.Errorf(errorRootResolveFormat, rootValue, rootError)
	}
	rootInfo, rootStatError := os.Stat(rootPath)
	if rootStatError != nil {
		return RunSettings{}, fmt.Errorf(errorRootMissingFormat, rootPath)
	}
	if !rootInfo.IsDir() {
		return RunSettings{}, fmt.Errorf(errorRootNotDirectoryFormat, rootPath)
	}

	settings := RunSettings{
		Options: types.Options{
			RootPath:           rootPath,
			IncludeExtensions:  lowercaseAll(sliceOrDefault(configuration.IncludeExts, nil)),
			ExcludeDirectories: sliceOrDefault(configuration.ExcludeDirs, DefaultExcludeDirectories),
			ExcludeFilenames:   sliceOrDefault(configuration.ExcludeFiles, nil),
			IncludeGlobs:       utils.DeduplicatePatterns(sliceOrDefault(configuration.IncludeGlobs, nil)),
			ExcludeGlobs:       utils.DeduplicatePatterns(sliceOrDefault(configuration.ExcludeGlobs, nil)),
			RespectGitignore:   boolOrDefault(configuration.RespectGitignore, false),
			MaxFileBytes:       int64OrDefault(configuration.MaxBytes, 0),
			HeadLineCount:      intOrDefault(configuration.HeadLines, DefaultHeadLineCount),
			TailLineCount:      intOrDefault(configuration.TailLines, DefaultTailLineCount),
			ShowStatistics:     boolOrDefault(configuration.ShowStats, true),
		},
		OutputPath:      stringOrDefault(configuration.Out, ""),
		Label:           stringOrDefault(configuration.Label, DefaultLabel),
		OutputTemplate:  stringOrDefault(configuration.OutTemplate, DefaultOutputTemplate),
		TokensEnabled:   boolOrDefault(configuration.Tokens, false),
		TokenizerModel:  stringOrDefault(configuration.Model, DefaultTokenizerModel),
		CopyToClipboard: boolOrDefault(configuration.Clipboard, false),
	}
	return settings, nil
}

func lowercaseAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, strings.ToLower(value))
	}
	return result
}

func sliceOrDefault(value *[]string, fallback []string) []string {
	if value == nil {
		return append([]string{}, fallback...)
	}
	return append([]string{}, (*value)...)
}

func stringOrDefault(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func int64OrDefault(value *int64, fallback int64) int64 {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneStringSlice(value *[]string) *[]string {
	if value == nil {
		return nil
	}
	cloned := append([]string{}, (*value)...)
	return &cloned
}
