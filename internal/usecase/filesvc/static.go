package filesvc

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/sir_venger/filedrop/internal/models"
)

// ReadStatic читает файл из статического каталога целиком в память.
// Любая ошибка (нет файла, нет прав, это каталог, выход за корень) сворачивается в models.ErrNotFound.
func (s *Files) ReadStatic(_ context.Context, file string) (models.ServedFile, error) {
	if file == "" {
		file = IndexFile
	}

	path, err := resolve(s.StaticDir, file)
	if err != nil {
		return models.ServedFile{}, errors.Wrapf(models.ErrNotFound, "rejected static path: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.ServedFile{}, errors.Wrapf(models.ErrNotFound, "unable to read %s: %v", path, err)
	}

	return models.ServedFile{
		Name:        file,
		Path:        path,
		ContentType: ContentTypeOf(path),
		Data:        data,
	}, nil
}
