package fs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	octopos "github.com/trusslab/octopos-filesystem"
)

type op interface {
	Do(*testing.T, *FileSystem)
}

type openOp struct {
	filename string
	mode     uint32

	fd *uint32

	expFail bool
}

func (op openOp) Do(t *testing.T, fsys *FileSystem) {
	r := require.New(t)

	fd := fsys.Open(op.filename, op.mode)

	if op.expFail {
		r.Equal(uint32(0), fd, "open %q should fail", op.filename)
		return
	}

	r.NotEqual(uint32(0), fd, "open %q", op.filename)
	r.Less(fd, uint32(octopos.MaxFD))

	if op.fd != nil {
		*op.fd = fd
	}
}

type writeOp struct {
	fd     *uint32
	data   []byte
	offset uint32

	expN uint32
}

func (op writeOp) Do(t *testing.T, fsys *FileSystem) {
	n := fsys.Write(*op.fd, op.data, op.offset)
	require.Equal(t, op.expN, n, "write at offset %d", op.offset)
}

type readOp struct {
	fd      *uint32
	readlen int
	offset  uint32

	exp  []byte
	expN uint32
}

func (op readOp) Do(t *testing.T, fsys *FileSystem) {
	r := require.New(t)

	if op.readlen == 0 {
		op.readlen = len(op.exp)
	}

	buf := make([]byte, op.readlen)
	n := fsys.Read(*op.fd, buf, op.offset)

	r.Equal(op.expN, n, "read at offset %d", op.offset)
	r.True(bytes.Equal(buf[:op.expN], op.exp), "read back %q, want %q", buf[:op.expN], op.exp)
}

type closeOp struct {
	fd *uint32

	expRet int
}

func (op closeOp) Do(t *testing.T, fsys *FileSystem) {
	require.Equal(t, op.expRet, fsys.CloseFile(*op.fd))
}

type reinitOp struct {
	partitionBlocks uint32
}

func (op reinitOp) Do(t *testing.T, fsys *FileSystem) {
	fsys.Close()
	fsys.Init(op.partitionBlocks)
}

// invariantsOp checks the layout basics that must hold after any
// sequence of operations: block runs disjoint and inside the payload
// area, sizes within the allocation, empty files unallocated.
type invariantsOp struct{}

func (op invariantsOp) Do(t *testing.T, fsys *FileSystem) {
	r := require.New(t)

	for _, f := range fsys.files {
		if f.numBlocks == 0 {
			r.Equal(uint32(0), f.size, "file %q", f.filename)
			r.Equal(octopos.BlockID(0), f.startBlock, "file %q", f.filename)
			continue
		}

		r.NotEqual(uint32(0), f.size, "file %q", f.filename)
		r.GreaterOrEqual(f.startBlock, octopos.BlockID(octopos.DirBlocks), "file %q", f.filename)
		r.LessOrEqual(uint32(f.startBlock)+f.numBlocks, fsys.partitionBlocks, "file %q", f.filename)
		r.LessOrEqual(f.size, f.numBlocks*octopos.BlockSize, "file %q", f.filename)

		for _, other := range fsys.files {
			if other == f || other.numBlocks == 0 {
				continue
			}
			disjoint := other.startBlock+octopos.BlockID(other.numBlocks) <= f.startBlock ||
				f.startBlock+octopos.BlockID(f.numBlocks) <= other.startBlock
			r.True(disjoint, "files %q and %q overlap", f.filename, other.filename)
		}
	}
}
