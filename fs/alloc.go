package fs

import (
	octopos "github.com/trusslab/octopos-filesystem"
)

// Block allocation is strictly append-only: a file is a single
// contiguous run, new runs start after the current high-water mark,
// and nothing is ever reclaimed. A file that cannot grow in place
// cannot grow at all.

// expandEmptyFile gives a file its first run of blocks, placed after
// the last block of the last-placed file.
func (fs *FileSystem) expandEmptyFile(f *fileEntry, neededBlocks uint32) int {
	start := octopos.BlockID(octopos.DirBlocks)

	for _, other := range fs.files {
		if other.startBlock >= start {
			start = other.startBlock + octopos.BlockID(other.numBlocks)
		}
	}

	if uint32(start)+neededBlocks >= fs.partitionBlocks {
		return octopos.ErrFound
	}

	zero := make([]byte, octopos.BlockSize)
	for i := uint32(0); i < neededBlocks; i++ {
		fs.dev.WriteBlocks(zero, start+octopos.BlockID(i), 1)
	}

	f.startBlock = start
	f.numBlocks = neededBlocks

	return 0
}

// expandExistingFile grows a file's run in place. The blocks right
// after the run must not hold the start of another file.
func (fs *FileSystem) expandExistingFile(f *fileEntry, neededBlocks uint32) int {
	end := f.startBlock + octopos.BlockID(f.numBlocks)

	for _, other := range fs.files {
		if other.startBlock >= end && other.startBlock < end+octopos.BlockID(neededBlocks) {
			return octopos.ErrFound
		}
	}

	if uint32(end)+neededBlocks >= fs.partitionBlocks {
		return octopos.ErrFound
	}

	zero := make([]byte, octopos.BlockSize)
	for i := uint32(0); i < neededBlocks; i++ {
		fs.dev.WriteBlocks(zero, end+octopos.BlockID(i), 1)
	}

	f.numBlocks += neededBlocks

	return 0
}

// expandFileSize grows f to hold size bytes overall, allocating
// blocks when the slack in the current last block does not cover the
// growth. On success the new size is persisted to the directory.
func (fs *FileSystem) expandFileSize(f *fileEntry, size uint32) int {
	if f.size >= size {
		return 0
	}

	emptyFile := f.size == 0
	var neededSize uint32
	if emptyFile {
		neededSize = size
	} else {
		neededSize = size - f.size
	}

	// a last block filled exactly has no slack
	leftover := octopos.BlockSize - (f.size % octopos.BlockSize)
	if leftover == octopos.BlockSize || leftover < neededSize {
		neededBlocks := neededSize / octopos.BlockSize
		if neededSize%octopos.BlockSize != 0 {
			neededBlocks++
		}

		var ret int
		if emptyFile {
			ret = fs.expandEmptyFile(f, neededBlocks)
		} else {
			ret = fs.expandExistingFile(f, neededBlocks)
		}
		if ret != 0 {
			return ret
		}
	}

	f.size = size
	if ret := fs.updateFileInDir(f); ret != 0 {
		// the directory is now inconsistent with the in-memory entry
		fs.log.Warnf("couldn't update file %q in directory: %d", f.filename, ret)
	}
	fs.flushDir()

	return 0
}

// releaseBlocks would return f's blocks to the allocator. Delete is
// unsupported and the allocator never reuses space, so there is
// nothing to do.
func (fs *FileSystem) releaseBlocks(f *fileEntry) {
}
