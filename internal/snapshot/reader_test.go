package snapshot_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snapmd/snapmd/internal/snapshot"
	"github.com/snapmd/snapmd/internal/types"
)

func writeTestFile(testingInstance *testing.T, directory, name string, content []byte) string {
	testingInstance.Helper()
	path := filepath.Join(directory, name)
	if writeError := os.WriteFile(path, content, 0o644); writeError != nil {
		testingInstance.Fatalf("writing %s: %v", name, writeError)
	}
	return path
}

// TestReadFileContentFullRead verifies reads below the cap and with no cap.
func TestReadFileContentFullRead(testingInstance *testing.T) {
	temporaryDirectory := testingInstance.TempDir()
	path := writeTestFile(testingInstance, temporaryDirectory, "small.txt", []byte("print(1)"))

	text, truncated, binarySkipped := snapshot.ReadFileContent(path, 0, false)
	if text != "print(1)" || truncated || binarySkipped {
		testingInstance.Errorf("no cap: expected full clean read, got %q truncated=%v skipped=%v", text, truncated, binarySkipped)
	}

	text, truncated, binarySkipped = snapshot.ReadFileContent(path, 8, false)
	if text != "print(1)" || truncated || binarySkipped {
		testingInstance.Errorf("size equal to cap: expected full clean read, got %q truncated=%v skipped=%v", text, truncated, binarySkipped)
	}
}

// TestReadFileContentTruncation verifies the bounded read of oversized files.
func TestReadFileContentTruncation(testingInstance *testing.T) {
	temporaryDirectory := testingInstance.TempDir()
	path := writeTestFile(testingInstance, temporaryDirectory, "big.txt", []byte(strings.Repeat("a", 100)))

	text, truncated, binarySkipped := snapshot.ReadFileContent(path, 10, false)
	if binarySkipped {
		testingInstance.Fatalf("unexpected binary skip")
	}
	if !truncated {
		testingInstance.Errorf("expected truncation for oversized file")
	}
	if len(text) != 11 {
		testingInstance.Errorf("expected 11 sampled bytes, got %d", len(text))
	}

	shapedText, truncated, binarySkipped := snapshot.ReadFileContent(path, 10, true)
	if binarySkipped || !truncated {
		testingInstance.Fatalf("shaping read: truncated=%v skipped=%v", truncated, binarySkipped)
	}
	if len(shapedText) > 2*(10+1)+2 {
		testingInstance.Errorf("shaping read must stay bounded by two cap-sized chunks, got %d bytes", len(shapedText))
	}
}

// TestReadFileContentGenuineTailLines verifies that head/tail shaping of an
// oversized file sees the file's real last lines without reading the middle.
func TestReadFileContentGenuineTailLines(testingInstance *testing.T) {
	temporaryDirectory := testingInstance.TempDir()
	var content strings.Builder
	for lineNumber := 1; lineNumber <= 10; lineNumber++ {
		fmt.Fprintf(&content, "line-%02d\n", lineNumber)
	}
	path := writeTestFile(testingInstance, temporaryDirectory, "many.txt", []byte(content.String()))

	text, truncated, binarySkipped := snapshot.ReadFileContent(path, 16, true)
	if binarySkipped || !truncated {
		testingInstance.Fatalf("expected truncated read, got truncated=%v skipped=%v", truncated, binarySkipped)
	}
	if !strings.HasPrefix(text, "line-01\n") {
		testingInstance.Errorf("expected genuine first line, got %q", text)
	}
	if !strings.HasSuffix(text, "line-09\nline-10\n") {
		testingInstance.Errorf("expected genuine trailing lines, got %q", text)
	}
	if strings.Contains(text, "line-05") {
		testingInstance.Errorf("middle content should not be read, got %q", text)
	}

	shaped := snapshot.ShapeTruncatedText(text, 1, 1)
	expected := "line-01\n\n" + types.TruncationMarker + "\n\nline-10"
	if shaped != expected {
		testingInstance.Errorf("expected %q, got %q", expected, shaped)
	}
}

// TestReadFileContentBinaryAndErrors verifies the binary-skip degradations.
func TestReadFileContentBinaryAndErrors(testingInstance *testing.T) {
	temporaryDirectory := testingInstance.TempDir()
	binaryPath := writeTestFile(testingInstance, temporaryDirectory, "blob.bin", []byte{0x00, 0x01, 0x02})

	text, truncated, binarySkipped := snapshot.ReadFileContent(binaryPath, 0, false)
	if text != "" || truncated || !binarySkipped {
		testingInstance.Errorf("binary file: expected skip, got %q truncated=%v skipped=%v", text, truncated, binarySkipped)
	}

	text, truncated, binarySkipped = snapshot.ReadFileContent(filepath.Join(temporaryDirectory, "missing.txt"), 0, false)
	if text != "" || truncated || !binarySkipped {
		testingInstance.Errorf("missing file: expected skip, got %q truncated=%v skipped=%v", text, truncated, binarySkipped)
	}
}

// TestReadFileContentLossyDecode verifies that invalid UTF-8 never fails.
func TestReadFileContentLossyDecode(testingInstance *testing.T) {
	temporaryDirectory := testingInstance.TempDir()
	path := writeTestFile(testingInstance, temporaryDirectory, "mixed.txt", []byte{'o', 'k', 0xFF, 'o', 'k'})

	text, truncated, binarySkipped := snapshot.ReadFileContent(path, 0, false)
	if truncated || binarySkipped {
		testingInstance.Fatalf("unexpected truncated=%v skipped=%v", truncated, binarySkipped)
	}
	if text != "ok�ok" {
		testingInstance.Errorf("expected replacement character, got %q", text)
	}
}

// TestShapeTruncatedText verifies head/tail shaping around the marker line.
func TestShapeTruncatedText(testingInstance *testing.T) {
	fiveLines := "line-1\nline-2\nline-3\nline-4\nline-5\n"

	testCases := []struct {
		testName      string
		text          string
		headLineCount int
		tailLineCount int
		expected      string
	}{
		{
			testName:      "head and tail",
			text:          fiveLines,
			headLineCount: 1,
			tailLineCount: 1,
			expected:      "line-1\n\n" + types.TruncationMarker + "\n\nline-5",
		},
		{
			testName:      "head only",
			text:          fiveLines,
			headLineCount: 2,
			tailLineCount: 0,
			expected:      "line-1\nline-2\n\n" + types.TruncationMarker + "\n",
		},
		{
			testName:      "tail only",
			text:          fiveLines,
			headLineCount: 0,
			tailLineCount: 2,
			expected:      "\n" + types.TruncationMarker + "\n\nline-4\nline-5",
		},
		{
			testName:      "both zero passes through",
			text:          fiveLines,
			headLineCount: 0,
			tailLineCount: 0,
			expected:      fiveLines,
		},
	}
	for _, testCase := range testCases {
		actual := snapshot.ShapeTruncatedText(testCase.text, testCase.headLineCount, testCase.tailLineCount)
		if actual != testCase.expected {
			testingInstance.Errorf("%s: expected %q, got %q", testCase.testName, testCase.expected, actual)
		}
	}
}
