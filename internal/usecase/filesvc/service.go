package filesvc

import (
	"context"
	"mime/multipart"
	"os"

	"github.com/pkg/errors"

	"github.com/sir_venger/filedrop/internal/logging"
	"github.com/sir_venger/filedrop/internal/models"
)

const (
	// IndexFile отдаётся на запрос корня.
	IndexFile = "index.html"

	defaultMaxBufferedBytes = 32 << 20
)

type (
	// PartReader выдаёт части multipart-тела по одной; *multipart.Reader подходит как есть.
	PartReader interface {
		NextPart() (*multipart.Part, error)
	}

	// Service объединяет выдачу статики и приём загрузок.
	Service interface {
		ReadStatic(ctx context.Context, file string) (models.ServedFile, error)
		Ingest(ctx context.Context, parts PartReader) (models.UploadResult, error)
	}
)

type Deps struct {
	StaticDir string
	UploadDir string
	Mode      models.CopyMode
	// MaxBufferedBytes ограничивает размер части в режиме CopyBuffer.
	MaxBufferedBytes int64
	Logger           *logging.Logger
}

type Files struct {
	Deps
}

// New конструирует сервис файлов с заданными зависимостями.
func New(deps Deps) *Files {
	if deps.Mode == "" {
		deps.Mode = models.CopyStream
	}
	if deps.MaxBufferedBytes <= 0 {
		deps.MaxBufferedBytes = defaultMaxBufferedBytes
	}
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)

// Prepare создаёт каталог загрузок, если его ещё нет. Статический каталог не создаётся.
func (s *Files) Prepare() error {
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return errors.Wrapf(err, "unable to create upload directory %s", s.UploadDir)
	}
	return nil
}
