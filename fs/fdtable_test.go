package fs

import (
	"testing"

	"github.com/stretchr/testify/require"

	octopos "github.com/trusslab/octopos-filesystem"
)

func TestFDTableAllocOrder(t *testing.T) {
	r := require.New(t)

	var tbl fdTable
	tbl.reset()

	// lowest free bit first, and 0 is never issued
	for want := 1; want < octopos.MaxFD; want++ {
		r.Equal(want, tbl.alloc())
	}

	r.Equal(octopos.ErrExist, tbl.alloc())
}

func TestFDTableReleaseReuse(t *testing.T) {
	r := require.New(t)

	var tbl fdTable
	tbl.reset()

	r.Equal(1, tbl.alloc())
	r.Equal(2, tbl.alloc())
	r.Equal(3, tbl.alloc())

	tbl.release(2)
	r.Equal(2, tbl.alloc())

	tbl.release(1)
	tbl.release(3)
	r.Equal(1, tbl.alloc())
	r.Equal(3, tbl.alloc())
}

func TestFDTableReleaseOutOfRange(t *testing.T) {
	var tbl fdTable
	tbl.reset()

	// must not panic or disturb the table
	tbl.release(octopos.MaxFD)
	tbl.release(octopos.MaxFD + 100)

	require.Equal(t, 1, tbl.alloc())
}

func TestFDTableResetClearsEverything(t *testing.T) {
	r := require.New(t)

	var tbl fdTable
	tbl.reset()

	f := &fileEntry{filename: "f"}
	fd := tbl.alloc()
	tbl.files[fd] = f

	tbl.reset()

	r.Nil(tbl.files[fd])
	r.Equal(1, tbl.alloc())
}
