package filesvc

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sir_venger/filedrop/internal/models"
)

// resolve склеивает root и name и проверяет, что результат остаётся строгим потомком root.
// Абсолютные имена и ссылки на родительский каталог отклоняются с models.ErrInvalidName.
func resolve(root, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.ContainsRune(name, 0) {
		return "", errors.Wrapf(models.ErrInvalidName, "%q", name)
	}

	root = filepath.Clean(root)
	path := filepath.Join(root, name)

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(models.ErrInvalidName, "%q escapes %s", name, root)
	}

	return path, nil
}
