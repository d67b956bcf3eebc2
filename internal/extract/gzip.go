package extract

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/quantmind-br/unpakr/internal/domain"
	"github.com/quantmind-br/unpakr/internal/utils"
)

// Gzip extracts a single-member .gz file. The output file is the source
// stem in the destination directory, so only one suffix is stripped:
// "x.tar.gz" becomes "x.tar", which a later walk picks up as a tar
// archive. With CreateDir the output lands in its own fresh directory and
// the Result points at that directory; otherwise the Result is the bare
// output file.
func (s *Service) Gzip(ctx context.Context, path string, opts domain.GzipOptions) (domain.Result, error) {
	if !utils.PathExists(path) {
		return domain.Result{}, domain.NewExtractError(domain.OpOpen, path, domain.ErrNotFound)
	}

	dest := opts.Dest
	if dest == "" {
		dest = filepath.Dir(path)
	}

	if opts.CreateDir {
		dest = UniqueDirPath(filepath.Join(dest, utils.Stem(path)))
		s.logger.Info().Str("phase", "mkdir").Str("dir", dest).Msg("Creating directory")
		if err := os.Mkdir(dest, 0755); err != nil {
			return domain.Result{}, domain.NewExtractError(domain.OpMkdir, path, err)
		}
	}

	outPath := filepath.Join(dest, utils.Stem(path))

	s.logger.Info().Str("phase", "extract").Str("archive", path).Str("file", outPath).Msg("Extracting gzip file")
	if err := s.gunzipFile(ctx, path, outPath); err != nil {
		return domain.Result{}, err
	}
	s.logger.Debug().Str("archive", path).Msg("Extraction done")

	if opts.Delete {
		if err := os.Remove(path); err != nil {
			return domain.Result{}, domain.NewExtractError(domain.OpDelete, path, err)
		}
		s.logger.Info().Str("phase", "delete").Str("archive", path).Msg("Deleted source archive")
	}

	if opts.CreateDir {
		return domain.Result{Path: dest, IsDir: true}, nil
	}
	return domain.Result{Path: outPath, IsDir: false}, nil
}

// gunzipFile decompresses the whole stream into outPath. All handles are
// closed before returning so the caller may delete the source afterwards.
func (s *Service) gunzipFile(ctx context.Context, path, outPath string) error {
	if err := ctx.Err(); err != nil {
		return domain.NewExtractError(domain.OpDecompress, path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.NewExtractError(domain.OpOpen, path, err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return domain.NewExtractError(domain.OpDecompress, path, err)
	}
	defer gzr.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return domain.NewExtractError(domain.OpWrite, path, err)
	}

	if _, err := io.Copy(out, gzr); err != nil {
		out.Close()
		return domain.NewExtractError(domain.OpWrite, path, err)
	}
	if err := out.Close(); err != nil {
		return domain.NewExtractError(domain.OpWrite, path, err)
	}

	return nil
}
