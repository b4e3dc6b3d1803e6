package fs

import (
	octopos "github.com/trusslab/octopos-filesystem"
)

// readFromBlock copies n bytes at blockOff within one block into
// dst. Returns n on success, 0 on a bounds violation or a short
// device read.
func (fs *FileSystem) readFromBlock(dst []byte, num octopos.BlockID, blockOff, n uint32) uint32 {
	var buf [octopos.BlockSize]byte

	if blockOff+n > octopos.BlockSize {
		return 0
	}

	if fs.dev.ReadBlocks(buf[:], num, 1) != octopos.BlockSize {
		return 0
	}

	copy(dst[:n], buf[blockOff:blockOff+n])

	return n
}

// writeToBlock splices n bytes at blockOff into one block. Partial
// writes read-modify-write the block; a full-block write skips the
// read. Returns the bytes actually written.
func (fs *FileSystem) writeToBlock(src []byte, num octopos.BlockID, blockOff, n uint32) uint32 {
	var buf [octopos.BlockSize]byte

	if blockOff+n > octopos.BlockSize {
		return 0
	}

	if !(blockOff == 0 && n == octopos.BlockSize) {
		if fs.dev.ReadBlocks(buf[:], num, 1) != octopos.BlockSize {
			return 0
		}
	}

	copy(buf[blockOff:blockOff+n], src[:n])

	written := fs.dev.WriteBlocks(buf[:], num, 1)
	if written >= n {
		return n
	}
	return written
}
