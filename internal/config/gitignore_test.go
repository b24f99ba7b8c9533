package config_test

import (
	"reflect"
	"testing"

	"github.com/snapmd/snapmd/internal/config"
)

// TestLoadGitignorePatterns verifies trimming, comment skipping, and ordering.
func TestLoadGitignorePatterns(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeConfigurationFile(testingInstance, rootDirectory, ".gitignore", `
# build artifacts
*.pyc

  dist/
!keep.py
`)

	patterns, loadError := config.LoadGitignorePatterns(rootDirectory)
	if loadError != nil {
		testingInstance.Fatalf("unexpected error: %v", loadError)
	}
	// Negation lines are kept verbatim: the adapter is a flat-glob best
	// effort without gitignore negation semantics.
	expected := []string{"*.pyc", "dist/", "!keep.py"}
	if !reflect.DeepEqual(patterns, expected) {
		testingInstance.Errorf("expected %v, got %v", expected, patterns)
	}
}

// TestLoadGitignorePatternsMissingFile verifies the silent empty result.
func TestLoadGitignorePatternsMissingFile(testingInstance *testing.T) {
	patterns, loadError := config.LoadGitignorePatterns(testingInstance.TempDir())
	if loadError != nil {
		testingInstance.Fatalf("unexpected error: %v", loadError)
	}
	if patterns != nil {
		testingInstance.Errorf("expected no patterns, got %v", patterns)
	}
}
