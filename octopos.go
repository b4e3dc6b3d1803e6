package octopos // import "github.com/trusslab/octopos-filesystem"

// Basic Types

// BlockID addresses one block of the partition, 0..PartitionBlocks-1.
type BlockID uint32

// Block Layer

// Frozen layout constants. Changing any of these breaks every
// partition written so far.
const (
	// BlockSize is the size of one partition block in bytes.
	BlockSize = 512

	// DirBlocks is the number of blocks at the start of the
	// partition that hold the directory page.
	DirBlocks = 2

	// DirDataSize is the byte size of the resident directory page.
	DirDataSize = BlockSize * DirBlocks

	// MaxFD bounds the handle namespace. Handles are in [1, MaxFD);
	// 0 is the error sentinel. Must be divisible by 8.
	MaxFD = 64

	// MaxFilenameSize is the longest filename, in bytes, the directory
	// accepts; the trailing NUL stored on disk is not counted.
	MaxFilenameSize = 256
)

// Open modes accepted by FileSystem.Open.
const (
	ModeOpen       uint32 = 0
	ModeOpenCreate uint32 = 1
)

// Status codes used by the core and returned by some operations.
// These are magic values carried over from the partition ABI, not
// error types; downstream tools compare against them directly.
const (
	ErrInvalid = -2
	ErrExist   = -5
	ErrMemory  = -6
	ErrFound   = -7
)

// BlockDevice is the storage the partition lives on: a linear array
// of fixed-size blocks with whole-block read and write.
//
// Both operations return the number of bytes transferred; a short
// count is the only failure signal. Reading a block that has never
// been written yields a zero-filled block.
type BlockDevice interface {
	ReadBlocks(buf []byte, start BlockID, count uint32) uint32
	WriteBlocks(buf []byte, start BlockID, count uint32) uint32
}
