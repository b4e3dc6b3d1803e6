package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	octopos "github.com/trusslab/octopos-filesystem"
)

func testConfig(t *testing.T) *Config {
	return &Config{
		Blocks: 1000,
		Store:  filepath.Join(t.TempDir(), "blocks"),
	}
}

func TestWriteThenReadBack(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	cfg := testConfig(t)

	r.NoError(FormatImpl(ctx, cfg))

	data := []byte("boot payload")
	r.NoError(WriteImpl(ctx, cfg, "boot.img", data, 0))

	fsys, err := openFS(ctx, cfg)
	r.NoError(err)
	defer fsys.Close()

	info, ok := fsys.Stat("boot.img")
	r.True(ok)
	r.Equal(uint32(len(data)), info.Size)

	fd := fsys.Open("boot.img", octopos.ModeOpen)
	r.NotEqual(uint32(0), fd)
	defer fsys.CloseFile(fd)

	got := make([]byte, len(data))
	r.Equal(uint32(len(data)), fsys.Read(fd, got, 0))
	r.Equal(data, got)
}

func TestFormatDropsFiles(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	cfg := testConfig(t)

	r.NoError(WriteImpl(ctx, cfg, "stale", []byte("old data"), 0))

	r.NoError(FormatImpl(ctx, cfg))

	fsys, err := openFS(ctx, cfg)
	r.NoError(err)
	defer fsys.Close()

	r.Empty(fsys.Files())
	r.Equal(uint32(0), fsys.Open("stale", octopos.ModeOpen))
}

func TestWritePastEndFails(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	cfg := testConfig(t)

	r.NoError(WriteImpl(ctx, cfg, "f", []byte("1234"), 0))
	r.Error(WriteImpl(ctx, cfg, "f", []byte("5678"), 100))
}
