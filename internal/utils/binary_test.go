package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/snapmd/snapmd/internal/utils"
)

// TestLooksBinary verifies the NUL and high-bit heuristics of the sniffer.
func TestLooksBinary(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		sample   []byte
		expected bool
	}{
		{
			testName: "empty sample is not binary",
			sample:   nil,
			expected: false,
		},
		{
			testName: "plain ascii is not binary",
			sample:   []byte("package main\n"),
			expected: false,
		},
		{
			testName: "single NUL byte is binary",
			sample:   []byte("hello\x00world"),
			expected: true,
		},
		{
			testName: "mostly high-bit bytes are binary",
			sample:   bytes.Repeat([]byte{0xFF, 0xFE, 0x41}, 10),
			expected: true,
		},
		{
			testName: "high-bit fraction at threshold is not binary",
			sample:   append(bytes.Repeat([]byte{0x41}, 7), 0xC3, 0xA9, 0xC3),
			expected: false,
		},
		{
			testName: "utf-8 text with sparse multibyte runes is not binary",
			sample:   []byte("caf\xc3\xa9 und stra\xc3\x9fe in a longer sentence"),
			expected: false,
		},
	}
	for _, testCase := range testCases {
		if actual := utils.LooksBinary(testCase.sample); actual != testCase.expected {
			testingInstance.Errorf("%s: expected %v, got %v", testCase.testName, testCase.expected, actual)
		}
	}
}

// TestIsFileBinary verifies sniffing through the filesystem.
func TestIsFileBinary(testingInstance *testing.T) {
	temporaryDirectory := testingInstance.TempDir()

	textPath := filepath.Join(temporaryDirectory, "sample.txt")
	if writeError := os.WriteFile(textPath, []byte("plain text"), 0o644); writeError != nil {
		testingInstance.Fatalf("writing text file: %v", writeError)
	}
	binaryPath := filepath.Join(temporaryDirectory, "sample.bin")
	if writeError := os.WriteFile(binaryPath, []byte{0x00, 0x01, 0x02}, 0o644); writeError != nil {
		testingInstance.Fatalf("writing binary file: %v", writeError)
	}

	if utils.IsFileBinary(textPath) {
		testingInstance.Errorf("expected %s to be classified as text", textPath)
	}
	if !utils.IsFileBinary(binaryPath) {
		testingInstance.Errorf("expected %s to be classified as binary", binaryPath)
	}
	if utils.IsFileBinary(filepath.Join(temporaryDirectory, "missing")) {
		testingInstance.Errorf("expected missing file to report false")
	}
}
