package extract

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantmind-br/unpakr/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compressedLeft reports whether any recognized archive remains under root
func compressedLeft(t *testing.T, root string) []string {
	t.Helper()

	var left []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && domain.KindOf(p) != domain.KindUnknown {
			left = append(left, p)
		}
		return nil
	})
	require.NoError(t, err)
	return left
}

func TestWalkTree_SnapshotReachesNestedArchives(t *testing.T) {
	t.Parallel()

	// a.tar contains b.tar; b.tar is only created on disk mid-walk, so
	// it must be reached through the explicit recursion into a.tar's
	// output, not by re-scanning the root.
	root := t.TempDir()
	inner := tarBytes(t, []tarEntry{{name: "c.txt", body: "deepest\n"}})
	writeFile(t, filepath.Join(root, "a.tar"), tarBytes(t, []tarEntry{
		{name: "b.tar", body: string(inner)},
	}))

	s := newTestService(t)
	stats, err := s.WalkTree(context.Background(), root, domain.WalkOptions{
		CreateDir: true,
		MaxDepth:  32,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Extracted)
	assert.Equal(t, "deepest\n", readFile(t, filepath.Join(root, "a", "b", "c.txt")))
}

func TestWalkTree_DeleteIsThreadedThroughRecursion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	inner := tarBytes(t, []tarEntry{{name: "c.txt", body: "deepest\n"}})
	writeFile(t, filepath.Join(root, "a.tar"), tarBytes(t, []tarEntry{
		{name: "b.tar", body: string(inner)},
	}))

	s := newTestService(t)
	stats, err := s.WalkTree(context.Background(), root, domain.WalkOptions{
		CreateDir: true,
		Delete:    true,
		MaxDepth:  32,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Extracted)
	assert.Empty(t, compressedLeft(t, root))
	assert.FileExists(t, filepath.Join(root, "a", "b", "c.txt"))
}

func TestWalkTree_GzipFileResultIsDispatched(t *testing.T) {
	t.Parallel()

	// inner.tar.gz decompresses to inner.tar (a bare file, not a
	// directory); the walker must pick that file up directly.
	root := t.TempDir()
	inner := tarBytes(t, []tarEntry{{name: "payload.txt", body: "payload\n"}})
	writeFile(t, filepath.Join(root, "inner.tar.gz"), gzipBytes(t, inner))

	s := newTestService(t)
	stats, err := s.WalkTree(context.Background(), root, domain.WalkOptions{
		CreateDir: true,
		Delete:    true,
		MaxDepth:  32,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Extracted)
	assert.Equal(t, "payload\n", readFile(t, filepath.Join(root, "inner", "payload.txt")))
	assert.Empty(t, compressedLeft(t, root))
}

func TestWalkTree_UnrecognizedFilesAreSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.md"), []byte("# hi\n"))
	writeFile(t, filepath.Join(root, "data.zip"), []byte("PK\x03\x04"))

	s := newTestService(t)
	stats, err := s.WalkTree(context.Background(), root, domain.WalkOptions{MaxDepth: 32})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Extracted)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, "# hi\n", readFile(t, filepath.Join(root, "readme.md")))
	assert.FileExists(t, filepath.Join(root, "data.zip"))
}

func TestWalkTree_OneBadArchiveDoesNotAbortTheWalk(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken.tgz"), []byte("not gzip at all"))
	writeFile(t, filepath.Join(root, "good.tar"), tarBytes(t, []tarEntry{
		{name: "ok.txt", body: "fine\n"},
	}))

	s := newTestService(t)
	stats, err := s.WalkTree(context.Background(), root, domain.WalkOptions{
		CreateDir: true,
		Delete:    true,
		MaxDepth:  32,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Extracted)
	assert.Equal(t, 1, stats.Failed)

	// the bad archive survives, the good one was extracted and deleted
	assert.FileExists(t, filepath.Join(root, "broken.tgz"))
	assert.NoFileExists(t, filepath.Join(root, "good.tar"))
	assert.Equal(t, "fine\n", readFile(t, filepath.Join(root, "good", "ok.txt")))
}

func TestWalkTree_MaxDepthStopsDescent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	inner := tarBytes(t, []tarEntry{{name: "c.txt", body: "deep\n"}})
	writeFile(t, filepath.Join(root, "a.tar"), tarBytes(t, []tarEntry{
		{name: "b.tar", body: string(inner)},
	}))

	s := newTestService(t)
	stats, err := s.WalkTree(context.Background(), root, domain.WalkOptions{
		CreateDir: true,
		MaxDepth:  1,
	})
	require.NoError(t, err)

	// a.tar extracted at depth 0, but descent into its output is cut off
	assert.Equal(t, 1, stats.Extracted)
	assert.GreaterOrEqual(t, stats.Failed, 1)
	assert.FileExists(t, filepath.Join(root, "a", "b.tar"))
	assert.NoDirExists(t, filepath.Join(root, "a", "b"))
}

func TestWalkTree_CancelledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.tar"), tarBytes(t, []tarEntry{
		{name: "f.txt", body: "x"},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestService(t)
	_, err := s.WalkTree(ctx, root, domain.WalkOptions{MaxDepth: 32})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), context.Canceled.Error()))
}
