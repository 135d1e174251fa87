package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PhotoStore guarda las fotos en un directorio local y devuelve URLs
// relativas bajo urlPrefix (el router sirve ese prefijo con un FileServer).
type PhotoStore struct {
	dir       string
	urlPrefix string
}

func NewPhotoStore(dir, urlPrefix string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &PhotoStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

func (s *PhotoStore) Dir() string { return s.dir }

func (s *PhotoStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}

	// write + rename para no dejar archivos a medias
	tmp := filepath.Join(s.dir, "."+name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path.Join(s.urlPrefix, name), nil
}

// Remove ignora URLs que no son de este store y archivos que ya no existen.
func (s *PhotoStore) Remove(_ context.Context, url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return nil
	}
	name, err := cleanName(strings.TrimPrefix(url, s.urlPrefix+"/"))
	if err != nil {
		return nil
	}
	err = os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func cleanName(name string) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("invalid photo name %q", name)
	}
	return base, nil
}
