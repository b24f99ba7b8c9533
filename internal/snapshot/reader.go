package snapshot

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/snapmd/snapmd/internal/types"
	"github.com/snapmd/snapmd/internal/utils"
)

// ReadFileContent reads the file at absolutePath applying the per-file byte
// cap. It returns the decoded text, whether the content was truncated by the
// cap, and whether the file was skipped as binary or unreadable.
//
// A file whose size does not exceed the cap (or when the cap is zero) is read
// in full. An oversized file is classified by sniffing its first maxBytes+1
// bytes. When shapeTruncation is set the text additionally carries the file's
// trailing bytes so head/tail shaping sees genuine last lines; the read stays
// bounded at two cap-sized chunks regardless of file size. Without shaping
// only the sampled prefix is kept. Invalid UTF-8 sequences are replaced,
// never reported as errors. Any I/O failure degrades to a binary skip: read
// failures never abort the overall run.
func ReadFileContent(absolutePath string, maxBytes int64, shapeTruncation bool) (text string, truncated bool, binarySkipped bool) {
	fileInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		return "", false, true
	}

	if maxBytes > 0 && fileInfo.Size() > maxBytes {
		chunkLimit := maxBytes + 1
		sample, sampleError := readAtMost(absolutePath, chunkLimit)
		if sampleError != nil {
			return "", false, true
		}
		if utils.LooksBinary(sample) {
			return "", false, true
		}
		if !shapeTruncation {
			return utils.DecodeUTF8Lossy(sample), true, false
		}
		if fileInfo.Size() <= 2*chunkLimit {
			data, readError := os.ReadFile(absolutePath)
			if readError != nil {
				return "", false, true
			}
			return utils.DecodeUTF8Lossy(data), true, false
		}
		tailChunk, tailError := readTailChunk(absolutePath, chunkLimit)
		if tailError != nil {
			return utils.DecodeUTF8Lossy(sample), true, false
		}
		headText := strings.TrimSuffix(utils.DecodeUTF8Lossy(sample), "\n")
		return headText + "\n" + utils.DecodeUTF8Lossy(tailChunk), true, false
	}

	data, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return "", false, true
	}
	if utils.LooksBinary(data) {
		return "", false, true
	}
	return utils.DecodeUTF8Lossy(data), false, false
}

// readAtMost reads up to limit bytes from the file at path.
func readAtMost(path string, limit int64) ([]byte, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	data, readError := io.ReadAll(io.LimitReader(fileHandle, limit))
	if readError != nil {
		return nil, readError
	}
	return data, nil
}

// readTailChunk reads up to limit trailing bytes from the file at path. When
// the chunk starts mid-file, one extra probe byte is read in front of it and
// everything through the first newline is discarded, so callers see whole
// trailing lines whether or not the chunk lands on a line boundary.
func readTailChunk(path string, limit int64) ([]byte, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	fileInfo, statError := fileHandle.Stat()
	if statError != nil {
		return nil, statError
	}
	offset := fileInfo.Size() - limit
	midFile := offset > 0
	if midFile {
		offset--
		limit++
	} else {
		offset = 0
	}
	if _, seekError := fileHandle.Seek(offset, io.SeekStart); seekError != nil {
		return nil, seekError
	}
	chunk, readError := io.ReadAll(io.LimitReader(fileHandle, limit))
	if readError != nil {
		return nil, readError
	}
	if midFile {
		if newlineIndex := bytes.IndexByte(chunk, '\n'); newlineIndex >= 0 {
			chunk = chunk[newlineIndex+1:]
		}
	}
	return chunk, nil
}

// ShapeTruncatedText reduces truncated text to its first headLineCount and
// last tailLineCount lines, joined by a blank line, the truncation marker,
// and another blank line. When both counts are zero the text passes through
// unshaped; the byte cap already bounded it.
func ShapeTruncatedText(text string, headLineCount, tailLineCount int) string {
	if headLineCount <= 0 && tailLineCount <= 0 {
		return text
	}
	lines := splitTextLines(text)

	var headLines []string
	if headLineCount > 0 {
		if headLineCount > len(lines) {
			headLineCount = len(lines)
		}
		headLines = lines[:headLineCount]
	}
	var tailLines []string
	if tailLineCount > 0 {
		if tailLineCount > len(lines) {
			tailLineCount = len(lines)
		}
		tailLines = lines[len(lines)-tailLineCount:]
	}

	shaped := make([]string, 0, len(headLines)+len(tailLines)+3)
	shaped = append(shaped, headLines...)
	shaped = append(shaped, "", types.TruncationMarker, "")
	shaped = append(shaped, tailLines...)
	return strings.Join(shaped, "\n")
}

// splitTextLines splits on newlines without manufacturing a trailing empty
// line for newline-terminated text.
func splitTextLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
