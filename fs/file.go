// Package fs implements the OctopOS flat filesystem core: the
// directory page resident over the first blocks of the partition,
// the open-file table, the append-only block allocator, and the
// read/write path. The OS, the installer, and the bootloader all
// link against this package for storage.
package fs

import (
	octopos "github.com/trusslab/octopos-filesystem"
)

// fileEntry is the in-memory record for one known file. Entries are
// created at init (recovered from the directory page) or at
// create-open, and live until the filesystem is reinitialized.
type fileEntry struct {
	filename   string
	startBlock octopos.BlockID // first payload block, 0 while the file is empty
	numBlocks  uint32
	size       uint32 // in bytes
	dirOff     int    // byte offset of this record in the directory page
	opened     bool
}

// FileInfo describes one file for callers walking the partition.
type FileInfo struct {
	Name       string
	StartBlock octopos.BlockID
	NumBlocks  uint32
	Size       uint32
}

// lookup returns the entry matching filename. Names are expected to
// be unique; if a duplicate was ever created, only the first entry is
// found.
func (fs *FileSystem) lookup(filename string) *fileEntry {
	for _, f := range fs.files {
		if f.filename == filename {
			return f
		}
	}
	return nil
}

// Files returns a snapshot of all known files in creation order.
func (fs *FileSystem) Files() []FileInfo {
	infos := make([]FileInfo, 0, len(fs.files))
	for _, f := range fs.files {
		infos = append(infos, FileInfo{
			Name:       f.filename,
			StartBlock: f.startBlock,
			NumBlocks:  f.numBlocks,
			Size:       f.size,
		})
	}
	return infos
}

// Stat reports the named file, if known.
func (fs *FileSystem) Stat(filename string) (FileInfo, bool) {
	f := fs.lookup(filename)
	if f == nil {
		return FileInfo{}, false
	}
	return FileInfo{
		Name:       f.filename,
		StartBlock: f.startBlock,
		NumBlocks:  f.numBlocks,
		Size:       f.size,
	}, true
}
