package extract

import (
	"context"

	"github.com/quantmind-br/unpakr/internal/domain"
	"github.com/quantmind-br/unpakr/internal/utils"
)

// Service performs archive extraction against the local filesystem. Apart
// from its logger and the optional progress callback it carries no state;
// the filesystem is the source of truth.
type Service struct {
	logger    *utils.Logger
	onExtract func(path string)
}

// ServiceOptions contains options for creating an extraction service
type ServiceOptions struct {
	Logger *utils.Logger

	// OnExtract is invoked after every successful extraction with the
	// source archive path. Used by the CLI to drive progress output.
	OnExtract func(path string)
}

// NewService creates a new extraction service
func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	return &Service{
		logger:    logger.WithComponent("extract"),
		onExtract: opts.OnExtract,
	}
}

// Extract unpacks a single archive file, deciding tar-family versus gzip
// once from the extension. The top-level file always gets a fresh
// destination directory and is never deleted; opts.Delete, opts.CreateDir
// and opts.GzCreateDir only shape the nested extractions discovered when
// opts.Recursive walks the result.
func (s *Service) Extract(ctx context.Context, path string, opts domain.Options) (domain.WalkStats, error) {
	var stats domain.WalkStats

	var res domain.Result
	switch domain.KindOf(path) {
	case domain.KindTar:
		dir, err := s.Tar(ctx, path, domain.TarOptions{
			Dest:      opts.Dest,
			CreateDir: true,
			Delete:    false,
		})
		if err != nil {
			return stats, err
		}
		res = domain.Result{Path: dir, IsDir: true}

	case domain.KindGzip:
		r, err := s.Gzip(ctx, path, domain.GzipOptions{
			Dest:      opts.Dest,
			CreateDir: true,
			Delete:    false,
		})
		if err != nil {
			return stats, err
		}
		res = r

	default:
		s.logger.Error().Str("path", path).Msg("Unrecognized file extension")
		return stats, domain.NewExtractError(domain.OpDispatch, path, domain.ErrUnsupportedExtension)
	}

	stats.Extracted++
	if s.onExtract != nil {
		s.onExtract(path)
	}

	if !opts.Recursive {
		return stats, nil
	}

	walkOpts := domain.WalkOptions{
		Delete:      opts.Delete,
		CreateDir:   opts.CreateDir,
		GzCreateDir: opts.GzCreateDir,
		MaxDepth:    opts.MaxDepth,
	}

	nested, err := s.walkResult(ctx, res, walkOpts, 0)
	stats.Add(nested)
	return stats, err
}

// walkResult descends into whatever an extraction produced: a directory is
// walked, a single file (gzip output such as "x.tar") is dispatched
// directly.
func (s *Service) walkResult(ctx context.Context, res domain.Result, opts domain.WalkOptions, depth int) (domain.WalkStats, error) {
	if res.IsDir {
		return s.walkTree(ctx, res.Path, opts, depth)
	}
	return s.extractOne(ctx, res.Path, opts, depth)
}
