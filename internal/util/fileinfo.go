package util

import (
	"os"
)

// FileInfo contains the attributes used to tell whether a file changed
type FileInfo struct {
	ModTime int64  // modification time, unix nanoseconds
	Size    int64  // size in bytes
	Inode   uint64 // zero where the platform has no inode
}

// GetFileInfo stats a file
func GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		ModTime: stat.ModTime().UnixNano(),
		Size:    stat.Size(),
		Inode:   inode(stat),
	}, nil
}

// FileState identifies one version of a file's content
type FileState struct {
	FileInfo
	Fingerprint string
}

// SnapshotFile records the state of a file. Take it before reading the file
// so that a concurrent append makes the snapshot stale rather than the data.
func SnapshotFile(path string) (FileState, error) {
	info, err := GetFileInfo(path)
	if err != nil {
		return FileState{}, err
	}
	state := FileState{FileInfo: *info}
	if fingerprint, err := CalculateFileFingerprint(path); err == nil {
		state.Fingerprint = fingerprint
	}
	return state, nil
}
