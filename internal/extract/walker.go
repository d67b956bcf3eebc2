package extract

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/quantmind-br/unpakr/internal/domain"
)

// WalkTree recursively extracts every recognized archive under root.
// The file list is a single snapshot taken before any extraction starts;
// archives written to disk by an earlier extraction in the same pass are
// reached only through the explicit recursion into each result, never by
// re-scanning the growing tree.
//
// A failing archive is logged, counted in the stats and skipped; the walk
// itself only fails on enumeration errors or cancellation.
func (s *Service) WalkTree(ctx context.Context, root string, opts domain.WalkOptions) (domain.WalkStats, error) {
	return s.walkTree(ctx, root, opts, 0)
}

func (s *Service) walkTree(ctx context.Context, root string, opts domain.WalkOptions, depth int) (domain.WalkStats, error) {
	var stats domain.WalkStats

	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		s.logger.Warn().Str("dir", root).Int("depth", depth).
			Err(domain.ErrDepthExceeded).Msg("Not descending further")
		stats.Failed++
		return stats, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return stats, domain.NewExtractError(domain.OpWalk, root, err)
	}

	for _, p := range files {
		st, err := s.extractOne(ctx, p, opts, depth)
		stats.Add(st)
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// extractOne dispatches one file by kind and recurses into whatever it
// produced. Extraction failures are tolerated here so one bad archive
// cannot abort the batch; only cancellation and enumeration errors
// propagate.
func (s *Service) extractOne(ctx context.Context, path string, opts domain.WalkOptions, depth int) (domain.WalkStats, error) {
	var stats domain.WalkStats

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		s.logger.Warn().Str("path", path).Int("depth", depth).
			Err(domain.ErrDepthExceeded).Msg("Not descending further")
		stats.Failed++
		return stats, nil
	}

	var res domain.Result
	var err error

	switch domain.KindOf(path) {
	case domain.KindTar:
		var dir string
		dir, err = s.Tar(ctx, path, domain.TarOptions{
			CreateDir: opts.CreateDir,
			Delete:    opts.Delete,
		})
		res = domain.Result{Path: dir, IsDir: true}

	case domain.KindGzip:
		res, err = s.Gzip(ctx, path, domain.GzipOptions{
			CreateDir: opts.GzCreateDir,
			Delete:    opts.Delete,
		})

	default:
		stats.Skipped++
		return stats, nil
	}

	if err != nil {
		s.logger.Error().Err(err).Str("archive", path).Msg("Extraction failed, continuing walk")
		stats.Failed++
		return stats, nil
	}

	stats.Extracted++
	if s.onExtract != nil {
		s.onExtract(path)
	}

	nested, err := s.walkResult(ctx, res, opts, depth+1)
	stats.Add(nested)
	return stats, err
}
