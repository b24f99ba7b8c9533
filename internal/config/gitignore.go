package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/snapmd/snapmd/internal/utils"
)

// commentPrefix marks gitignore lines that carry no pattern.
const commentPrefix = "#"

// LoadGitignorePatterns reads the root directory's .gitignore file and returns
// its non-empty, non-comment, whitespace-trimmed lines in order. The lines are
// consumed directly as flat glob patterns: negation ("!"), anchoring
// ("/prefix"), and directory-only markers ("pattern/") carry no special
// meaning. This is a deliberate best-effort divergence from full gitignore
// semantics. A missing file yields no patterns and no error.
func LoadGitignorePatterns(rootDirectoryPath string) ([]string, error) {
	gitignorePath := filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
	fileHandle, openError := os.Open(gitignorePath)
	if openError != nil {
		if os.IsNotExist(openError) {
			return nil, nil
		}
		return nil, openError
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}
