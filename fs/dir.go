package fs

import (
	"bytes"
	"encoding/binary"

	octopos "github.com/trusslab/octopos-filesystem"
)

// Directory page layout. The page occupies blocks [0, DirBlocks) and
// stays resident; every mutation is flushed back whole.
//
//	off 0..3  signature '$' '%' '^' '&'
//	off 4..5  little-endian u16 file count
//	off 6..   packed records:
//	            u16 filename length
//	            filename bytes + NUL
//	            u32 start block
//	            u32 num blocks
//	            u32 size
//
// A record is filename length + 15 bytes. Records never move and
// never change length (no rename, no delete), so in-place rewrites
// are always size-preserving and the page needs no journal.

var dirSignature = [4]byte{'$', '%', '^', '&'}

// dirRecordOverhead is the record size beyond the filename bytes.
const dirRecordOverhead = 15

func (fs *FileSystem) flushDir() {
	fs.dev.WriteBlocks(fs.dirData[:], 0, octopos.DirBlocks)
}

func (fs *FileSystem) readDir() {
	fs.dev.ReadBlocks(fs.dirData[:], 0, octopos.DirBlocks)
}

// updateFileInDir rewrites the record for f at its directory offset.
func (fs *FileSystem) updateFileInDir(f *fileEntry) int {
	off := f.dirOff

	nameLen := len(f.filename)
	if nameLen > octopos.MaxFilenameSize {
		return octopos.ErrInvalid
	}

	if off+nameLen+dirRecordOverhead > octopos.DirDataSize {
		return octopos.ErrMemory
	}

	binary.LittleEndian.PutUint16(fs.dirData[off:], uint16(nameLen))
	off += 2

	copy(fs.dirData[off:], f.filename)
	fs.dirData[off+nameLen] = 0
	off += nameLen + 1

	binary.LittleEndian.PutUint32(fs.dirData[off:], uint32(f.startBlock))
	off += 4

	binary.LittleEndian.PutUint32(fs.dirData[off:], f.numBlocks)
	off += 4

	binary.LittleEndian.PutUint32(fs.dirData[off:], f.size)

	return 0
}

// addFileToDir appends a record for f after the last one, bumps the
// file count, and flushes. Fails with ErrMemory when the page is
// full.
func (fs *FileSystem) addFileToDir(f *fileEntry) int {
	f.dirOff = fs.dirPtr

	if ret := fs.updateFileInDir(f); ret != 0 {
		fs.log.Debugf("couldn't add file %q to directory: %d", f.filename, ret)
		return ret
	}

	fs.dirPtr += len(f.filename) + dirRecordOverhead

	count := binary.LittleEndian.Uint16(fs.dirData[4:6])
	binary.LittleEndian.PutUint16(fs.dirData[4:6], count+1)

	fs.flushDir()

	return 0
}

// recoverDir decodes the records of a directory page that carried a
// valid signature. Decoding stops silently at the first record that
// fails a bounds check; any records after it are lost.
func (fs *FileSystem) recoverDir() {
	count := int(binary.LittleEndian.Uint16(fs.dirData[4:6]))
	fs.dirPtr = 6

	for i := 0; i < count; i++ {
		off := fs.dirPtr

		if fs.dirPtr+2 > octopos.DirDataSize {
			break
		}

		nameLen := int(binary.LittleEndian.Uint16(fs.dirData[fs.dirPtr:]))

		if fs.dirPtr+nameLen+dirRecordOverhead > octopos.DirDataSize {
			break
		}
		fs.dirPtr += 2

		if nameLen > octopos.MaxFilenameSize {
			break
		}

		name := fs.dirData[fs.dirPtr : fs.dirPtr+nameLen]
		if n := bytes.IndexByte(name, 0); n >= 0 {
			name = name[:n]
		}
		fs.dirPtr += nameLen + 1

		f := &fileEntry{
			filename: string(name),
			dirOff:   off,
		}

		f.startBlock = octopos.BlockID(binary.LittleEndian.Uint32(fs.dirData[fs.dirPtr:]))
		fs.dirPtr += 4
		f.numBlocks = binary.LittleEndian.Uint32(fs.dirData[fs.dirPtr:])
		fs.dirPtr += 4
		f.size = binary.LittleEndian.Uint32(fs.dirData[fs.dirPtr:])
		fs.dirPtr += 4

		fs.files = append(fs.files, f)
	}
}

// formatDir initializes a fresh page: signature, zero file count.
func (fs *FileSystem) formatDir() {
	copy(fs.dirData[:4], dirSignature[:])
	fs.dirData[4] = 0
	fs.dirData[5] = 0
	fs.dirPtr = 6

	fs.flushDir()
}
