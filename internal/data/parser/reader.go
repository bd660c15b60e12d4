package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineSize       = 10 * 1024 * 1024
)

// CompressedExt marks transcripts stored zstd-compressed
const CompressedExt = ".zst"

// openLines opens path for line reading, transparently decompressing
// zstd files. The returned close function releases every layer.
func openLines(path string) (io.Reader, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), CompressedExt) {
		return file, func() { file.Close() }, nil
	}

	decoder, err := zstd.NewReader(file)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("create zstd decoder for %s: %w", path, err)
	}
	return decoder, func() {
		decoder.Close()
		file.Close()
	}, nil
}

// scanLines calls fn for every non-blank line of path
func scanLines(path string, fn func(line string, lineNo int)) error {
	r, closeFn, err := openLines(path)
	if err != nil {
		return err
	}
	defer closeFn()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(line, lineNo)
	}
	if err := scanner.Err(); err != nil {
		util.LogDebug("error scanning file", util.F("path", path), util.F("error", err))
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}
