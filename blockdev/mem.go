package blockdev

import (
	octopos "github.com/trusslab/octopos-filesystem"
)

// Mem is an in-memory block device. Blocks that were never written
// read as zeros.
type Mem struct {
	blocks map[octopos.BlockID][]byte
}

// NewMem returns an empty in-memory device.
func NewMem() *Mem {
	return &Mem{blocks: make(map[octopos.BlockID][]byte)}
}

// ReadBlocks reads count whole blocks starting at start into buf.
func (m *Mem) ReadBlocks(buf []byte, start octopos.BlockID, count uint32) uint32 {
	if uint32(len(buf)) < count*octopos.BlockSize {
		return 0
	}

	for i := uint32(0); i < count; i++ {
		dst := buf[i*octopos.BlockSize : (i+1)*octopos.BlockSize]

		if data, ok := m.blocks[start+octopos.BlockID(i)]; ok {
			copy(dst, data)
		} else {
			for j := range dst {
				dst[j] = 0
			}
		}
	}

	return count * octopos.BlockSize
}

// WriteBlocks writes count whole blocks starting at start from buf.
func (m *Mem) WriteBlocks(buf []byte, start octopos.BlockID, count uint32) uint32 {
	if uint32(len(buf)) < count*octopos.BlockSize {
		return 0
	}

	for i := uint32(0); i < count; i++ {
		data := make([]byte, octopos.BlockSize)
		copy(data, buf[i*octopos.BlockSize:(i+1)*octopos.BlockSize])
		m.blocks[start+octopos.BlockID(i)] = data
	}

	return count * octopos.BlockSize
}
