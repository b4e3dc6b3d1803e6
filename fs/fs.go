package fs

import (
	"bytes"
	"log/slog"

	"github.com/chainguard-dev/clog"

	octopos "github.com/trusslab/octopos-filesystem"
)

// FileSystem is the core state: the resident directory page, the
// file registry, and the handle table, laid over one block device.
// It is single-threaded; callers serialize access themselves.
type FileSystem struct {
	dev octopos.BlockDevice
	log *clog.Logger

	partitionBlocks uint32

	dirData [octopos.DirDataSize]byte
	dirPtr  int

	files []*fileEntry

	fds fdTable
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *clog.Logger) Option {
	return func(fs *FileSystem) {
		fs.log = log
	}
}

// New wires a FileSystem to dev. Call Init before any file
// operation.
func New(dev octopos.BlockDevice, opts ...Option) *FileSystem {
	fs := &FileSystem{
		dev: dev,
		log: clog.New(slog.Default().Handler()),
	}

	for _, opt := range opts {
		opt(fs)
	}

	return fs
}

// Init prepares the filesystem over a partition of the given size in
// blocks: it reads the directory page and either recovers the file
// records behind a valid signature or formats a fresh page. Init may
// be called again on the same value to reinitialize.
func (fs *FileSystem) Init(partitionBlocks uint32) {
	fs.files = nil
	fs.dirPtr = 0
	fs.partitionBlocks = partitionBlocks
	fs.fds.reset()

	fs.readDir()

	if bytes.Equal(fs.dirData[:4], dirSignature[:]) {
		fs.recoverDir()
	} else {
		fs.formatDir()
	}
}

// Close flushes the directory page. Every mutation already flushes,
// so this is idempotent.
func (fs *FileSystem) Close() {
	fs.flushDir()
}

// Open returns a handle in [1, MaxFD) for filename, or 0 on any
// error: unknown mode, file already open, no such file (ModeOpen),
// directory page full, or handle table full. ModeOpenCreate creates
// an empty file when the name is unknown. Callers must not create
// duplicate names; lookups only ever find the first.
func (fs *FileSystem) Open(filename string, mode uint32) uint32 {
	if mode != octopos.ModeOpen && mode != octopos.ModeOpenCreate {
		fs.log.Debugf("invalid mode %d for opening a file", mode)
		return 0
	}

	file := fs.lookup(filename)
	if file != nil && file.opened {
		return 0
	}

	if file == nil && mode == octopos.ModeOpenCreate {
		file = &fileEntry{filename: filename}

		if ret := fs.addFileToDir(file); ret != 0 {
			fs.releaseBlocks(file)
			return 0
		}

		fs.files = append(fs.files, file)
	}

	if file == nil {
		return 0
	}

	ret := fs.fds.alloc()
	if ret < 0 {
		return 0
	}

	fd := uint32(ret)
	if fd == 0 || fd >= octopos.MaxFD {
		return 0
	}

	// shouldn't happen, but let's check
	if fs.fds.files[fd] != nil {
		return 0
	}

	fs.fds.files[fd] = file
	file.opened = true

	return fd
}

// openFile validates fd and returns the entry it maps to, or nil.
func (fs *FileSystem) openFile(fd uint32) *fileEntry {
	if fd == 0 || fd >= octopos.MaxFD {
		fs.log.Debugf("fd is 0 or too large (%d)", fd)
		return nil
	}

	f := fs.fds.files[fd]
	if f == nil {
		fs.log.Debugf("invalid fd %d", fd)
		return nil
	}

	if !f.opened {
		fs.log.Debugf("fd %d: file not opened", fd)
		return nil
	}

	return f
}

// Write stores data at the byte offset within the open file fd and
// returns the bytes actually written. The file grows when needed,
// but only into blocks right after its current run; a write that
// cannot be fully backed is silently clipped. Writing past the end
// of the file writes nothing.
func (fs *FileSystem) Write(fd uint32, data []byte, offset uint32) uint32 {
	f := fs.openFile(fd)
	if f == nil {
		return 0
	}

	size := uint32(len(data))

	if f.size < offset+size {
		if offset > f.size {
			fs.log.Debugf("invalid offset (offset = %d, file size = %d)", offset, f.size)
			return 0
		}

		// grow as far as the allocator allows; a failure just
		// leaves the file at its old size
		fs.expandFileSize(f, offset+size)
	}

	if offset >= f.size {
		return 0
	}

	// partial write
	if f.size < offset+size {
		size = f.size - offset
	}

	blockNum := offset / octopos.BlockSize
	blockOff := offset % octopos.BlockSize

	var written uint32
	next := octopos.BlockSize - blockOff
	if next > size {
		next = size
	}

	for written < size {
		ret := fs.writeToBlock(data[written:], f.startBlock+octopos.BlockID(blockNum), blockOff, next)
		if ret != next {
			written += ret
			break
		}

		written += next
		blockNum++
		blockOff = 0

		if size-written >= octopos.BlockSize {
			next = octopos.BlockSize
		} else {
			next = size - written
		}
	}

	return written
}

// Read copies up to len(out) bytes at the byte offset within the
// open file fd into out and returns the bytes actually read. Reads
// past the end of the file return 0 and leave out untouched.
func (fs *FileSystem) Read(fd uint32, out []byte, offset uint32) uint32 {
	f := fs.openFile(fd)
	if f == nil {
		return 0
	}

	size := uint32(len(out))

	if offset >= f.size {
		return 0
	}

	// partial read
	if f.size < offset+size {
		size = f.size - offset
	}

	blockNum := offset / octopos.BlockSize
	blockOff := offset % octopos.BlockSize

	var read uint32
	next := octopos.BlockSize - blockOff
	if next > size {
		next = size
	}

	for read < size {
		ret := fs.readFromBlock(out[read:], f.startBlock+octopos.BlockID(blockNum), blockOff, next)
		if ret != next {
			read += ret
			break
		}

		read += next
		blockNum++
		blockOff = 0

		if size-read >= octopos.BlockSize {
			next = octopos.BlockSize
		} else {
			next = size - read
		}
	}

	return read
}

// CloseFile releases the handle fd. Returns 0 on success, ErrInvalid
// for a handle that is not open.
func (fs *FileSystem) CloseFile(fd uint32) int {
	f := fs.openFile(fd)
	if f == nil {
		return octopos.ErrInvalid
	}

	f.opened = false
	fs.fds.files[fd] = nil
	fs.fds.release(fd)

	return 0
}
