package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

const fingerprintTail = 2048

// CalculateFileFingerprint checksums the last 2KB of a file. Appends to a
// JSONL file change the tail, so this detects growth the size check missed.
func CalculateFileFingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	readSize := min(stat.Size(), int64(fingerprintTail))
	if _, err := file.Seek(-readSize, io.SeekEnd); err != nil {
		return "", err
	}

	data := make([]byte, readSize)
	if _, err := io.ReadFull(file, data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)), nil
}
