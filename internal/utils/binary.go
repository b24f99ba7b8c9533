package utils

import (
	"io"
	"os"
)

const sniffLength = 8000

// binaryHighBitThreshold is the fraction of high-bit bytes beyond which a
// sample is classified as binary.
const binaryHighBitThreshold = 0.30

// LooksBinary reports whether the provided byte sample appears to contain
// binary data. A NUL byte is decisive; otherwise the fraction of bytes above
// 0x7F must exceed binaryHighBitThreshold. This is a heuristic, not a format
// detector.
func LooksBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	highBitCount := 0
	for _, currentByte := range sample {
		if currentByte == 0 {
			return true
		}
		if currentByte > 0x7F {
			highBitCount++
		}
	}
	return float64(highBitCount)/float64(len(sample)) > binaryHighBitThreshold
}

// IsFileBinary reads up to sniffLength bytes from the file at path and
// determines if the content appears to be binary. Unreadable files report
// false so that the read path decides how to handle them.
func IsFileBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	sampleBuffer := make([]byte, sniffLength)
	sampleLength, readError := fileHandle.Read(sampleBuffer)
	if readError != nil && readError != io.EOF {
		return false
	}
	return LooksBinary(sampleBuffer[:sampleLength])
}
