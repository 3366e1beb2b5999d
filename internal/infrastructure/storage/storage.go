package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// URLPrefix is the public path uploaded files are served under.
const URLPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ImageStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (url string, err error)
	Remove(ctx context.Context, url string) error
}

type LocalImageStorage struct {
	dir string
}

func CreateLocalImageStorage(dir string) (*LocalImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &LocalImageStorage{dir: dir}, nil
}

func (s *LocalImageStorage) Dir() string {
	return s.dir
}

func (s *LocalImageStorage) Save(ctx context.Context, file *multipart.FileHeader) (url string, err error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", errs.ErrNotAnImage
	}

	src, err := file.Open()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SaveImage").Msg("")
		return "", err
	}
	defer src.Close()

	name := ulid.Make().String() + ext
	if err = writeFile(filepath.Join(s.dir, name), src); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SaveImage").Msg("")
		return "", err
	}

	return URLPrefix + "/" + name, nil
}

// writeFile leaves nothing behind at path when the copy fails.
func writeFile(path string, src io.Reader) (err error) {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
	}

	return err
}

// Remove deletes a previously saved file. URLs not produced by Save are ignored.
func (s *LocalImageStorage) Remove(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, URLPrefix+"/") {
		return nil
	}

	name := filepath.Base(url)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		log.Ctx(ctx).Error().Err(err).Str("component", "RemoveImage").Msg("")
		return err
	}

	return nil
}
