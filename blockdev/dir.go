// Package blockdev provides BlockDevice implementations backing an
// OctopOS partition: Dir stores one host file per block, Mem keeps
// the partition in memory.
package blockdev

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"

	octopos "github.com/trusslab/octopos-filesystem"
)

// Dir is a block device that keeps each block in its own file,
// block<N>.txt, under a single directory. This is the reference
// backing used by the host-side tools; blocks that were never
// written have no file and read as zeros.
type Dir struct {
	root string
	log  *clog.Logger
}

// NewDir opens (creating if needed) a block store rooted at root.
// A nil log falls back to the default logger.
func NewDir(root string, log *clog.Logger) (*Dir, error) {
	if log == nil {
		log = clog.New(slog.Default().Handler())
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating block store %s: %w", root, err)
	}

	return &Dir{root: root, log: log}, nil
}

func (d *Dir) blockPath(num octopos.BlockID) string {
	return filepath.Join(d.root, fmt.Sprintf("block%d.txt", num))
}

// ReadBlocks reads count whole blocks starting at start into buf.
// A block with no backing file is materialized as zeros first, so it
// reads back zero-filled.
func (d *Dir) ReadBlocks(buf []byte, start octopos.BlockID, count uint32) uint32 {
	if uint32(len(buf)) < count*octopos.BlockSize {
		return 0
	}

	var read uint32
	for i := uint32(0); i < count; i++ {
		num := start + octopos.BlockID(i)

		data, err := os.ReadFile(d.blockPath(num))
		if errors.Is(err, os.ErrNotExist) {
			zero := make([]byte, octopos.BlockSize)
			d.WriteBlocks(zero, num, 1)
			data, err = os.ReadFile(d.blockPath(num))
		}
		if err != nil {
			d.log.Warnf("failed to open block file %s: %v", d.blockPath(num), err)
			return read
		}

		n := copy(buf[i*octopos.BlockSize:(i+1)*octopos.BlockSize], data)
		read += uint32(n)
		if n != octopos.BlockSize {
			return read
		}
	}

	return read
}

// WriteBlocks writes count whole blocks starting at start from buf.
func (d *Dir) WriteBlocks(buf []byte, start octopos.BlockID, count uint32) uint32 {
	if uint32(len(buf)) < count*octopos.BlockSize {
		return 0
	}

	var written uint32
	for i := uint32(0); i < count; i++ {
		num := start + octopos.BlockID(i)

		err := os.WriteFile(d.blockPath(num), buf[i*octopos.BlockSize:(i+1)*octopos.BlockSize], 0o644)
		if err != nil {
			d.log.Warnf("failed to write block file %s: %v", d.blockPath(num), err)
			return written
		}
		written += octopos.BlockSize
	}

	return written
}
