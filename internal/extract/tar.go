package extract

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/quantmind-br/unpakr/internal/domain"
	"github.com/quantmind-br/unpakr/internal/utils"
)

// Tar extracts a tar-family archive (.tar, .tgz, .tbz, .tb2) and returns
// the directory its members were written to. The compression layer is
// chosen by extension, never by content. The source file is removed only
// after every member has been written and all readers are closed.
func (s *Service) Tar(ctx context.Context, path string, opts domain.TarOptions) (string, error) {
	if !utils.PathExists(path) {
		return "", domain.NewExtractError(domain.OpOpen, path, domain.ErrNotFound)
	}

	dest := opts.Dest
	if dest == "" {
		dest = filepath.Dir(path)
	}

	if opts.CreateDir {
		dest = UniqueDirPath(filepath.Join(dest, utils.Stem(path)))
		s.logger.Info().Str("phase", "mkdir").Str("dir", dest).Msg("Creating directory")
		if err := os.Mkdir(dest, 0755); err != nil {
			return "", domain.NewExtractError(domain.OpMkdir, path, err)
		}
	}

	s.logger.Info().Str("phase", "extract").Str("archive", path).Str("dir", dest).Msg("Extracting archive")
	if err := s.extractTarMembers(ctx, path, dest); err != nil {
		return "", err
	}
	s.logger.Debug().Str("archive", path).Msg("Extraction done")

	if opts.Delete {
		if err := os.Remove(path); err != nil {
			return "", domain.NewExtractError(domain.OpDelete, path, err)
		}
		s.logger.Info().Str("phase", "delete").Str("archive", path).Msg("Deleted source archive")
	}

	return dest, nil
}

// extractTarMembers streams every member of the archive into dest. Readers
// are scoped to this function so they are released before the caller
// considers deleting the source.
func (s *Service) extractTarMembers(ctx context.Context, path, dest string) error {
	f, err := os.Open(path)
	if err != nil {
		return domain.NewExtractError(domain.OpOpen, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch utils.Ext(path) {
	case ".tgz":
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return domain.NewExtractError(domain.OpDecompress, path, err)
		}
		defer gzr.Close()
		r = gzr
	case ".tbz", ".tb2":
		r = bzip2.NewReader(f)
	}

	tr := tar.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return domain.NewExtractError(domain.OpDecompress, path, err)
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.NewExtractError(domain.OpDecompress, path, err)
		}

		targetPath := filepath.Join(dest, header.Name)

		// skip members that would escape the destination
		if !strings.HasPrefix(filepath.Clean(targetPath), filepath.Clean(dest)) {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return domain.NewExtractError(domain.OpWrite, path, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return domain.NewExtractError(domain.OpWrite, path, err)
			}

			file, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return domain.NewExtractError(domain.OpWrite, path, err)
			}

			if _, err := io.Copy(file, tr); err != nil {
				file.Close()
				return domain.NewExtractError(domain.OpWrite, path, err)
			}
			if err := file.Close(); err != nil {
				return domain.NewExtractError(domain.OpWrite, path, err)
			}
		}
	}

	return nil
}
