package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const ImagesRoute = "/images"

type DiskStorage struct {
	dir     string
	baseURL string
}

func NewDiskStorage(dir string, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	return &DiskStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStorage) Dir() string {
	return s.dir
}

// Save writes the payload as <prefix>_<ulid><ext> and returns its public URL.
func (s *DiskStorage) Save(ctx context.Context, prefix string, originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s%s", prefix, ulid.Make().String(), strings.ToLower(filepath.Ext(originalName)))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Save").Msg("")
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Save").Msg("")
		os.Remove(dst.Name())
		return "", err
	}

	return s.baseURL + ImagesRoute + "/" + name, nil
}
