package utils_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/snapmd/snapmd/internal/utils"
)

// TestFileExtension verifies Python-suffix-style extension extraction.
func TestFileExtension(testingInstance *testing.T) {
	testCases := []struct {
		baseName string
		expected string
	}{
		{baseName: "main.go", expected: ".go"},
		{baseName: "README", expected: ""},
		{baseName: "archive.TAR", expected: ".tar"},
		{baseName: ".gitignore", expected: ""},
		{baseName: ".env.local", expected: ".local"},
		{baseName: "trailing.", expected: ""},
	}
	for _, testCase := range testCases {
		if actual := utils.FileExtension(testCase.baseName); actual != testCase.expected {
			testingInstance.Errorf("%s: expected %q, got %q", testCase.baseName, testCase.expected, actual)
		}
	}
}

// TestDecodeUTF8Lossy verifies replacement of invalid sequences without error.
func TestDecodeUTF8Lossy(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		data     []byte
		expected string
	}{
		{
			testName: "valid text passes through",
			data:     []byte("héllo"),
			expected: "héllo",
		},
		{
			testName: "invalid byte replaced",
			data:     []byte{'a', 0xFF, 'b'},
			expected: "a�b",
		},
		{
			testName: "each invalid byte replaced individually",
			data:     []byte{0xC3, 0x28, 0xC3},
			expected: "�(�",
		},
	}
	for _, testCase := range testCases {
		if actual := utils.DecodeUTF8Lossy(testCase.data); actual != testCase.expected {
			testingInstance.Errorf("%s: expected %q, got %q", testCase.testName, testCase.expected, actual)
		}
	}
}

// TestDeduplicatePatterns verifies order-preserving deduplication.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	actual := utils.DeduplicatePatterns([]string{"*.py", "*.go", "*.py"})
	expected := []string{"*.py", "*.go"}
	if len(actual) != len(expected) {
		testingInstance.Fatalf("expected %d patterns, got %d", len(expected), len(actual))
	}
	for position, value := range expected {
		if actual[position] != value {
			testingInstance.Errorf("position %d: expected %q, got %q", position, value, actual[position])
		}
	}
}

// TestRelativePathOrSelf verifies slash-form relative paths.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	nestedPath := filepath.Join(rootDirectory, "sub", "file.txt")

	if actual := utils.RelativePathOrSelf(nestedPath, rootDirectory); actual != "sub/file.txt" {
		testingInstance.Errorf("expected sub/file.txt, got %q", actual)
	}
	if actual := utils.RelativePathOrSelf(rootDirectory, rootDirectory); actual != "." {
		testingInstance.Errorf("expected \".\" for identical paths, got %q", actual)
	}
}

// TestExpandPath verifies environment expansion and absolute resolution.
func TestExpandPath(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	testingInstance.Setenv("SNAPMD_TEST_ROOT", rootDirectory)

	expanded, expandError := utils.ExpandPath("$SNAPMD_TEST_ROOT")
	if expandError != nil {
		testingInstance.Fatalf("unexpected error: %v", expandError)
	}
	if expanded != rootDirectory {
		testingInstance.Errorf("expected %q, got %q", rootDirectory, expanded)
	}

	absolute, absoluteError := utils.ExpandPath("")
	if absoluteError != nil {
		testingInstance.Fatalf("unexpected error: %v", absoluteError)
	}
	if !filepath.IsAbs(absolute) {
		testingInstance.Errorf("expected absolute path, got %q", absolute)
	}
	if strings.Contains(absolute, "~") {
		testingInstance.Errorf("expected no tilde in %q", absolute)
	}
}
