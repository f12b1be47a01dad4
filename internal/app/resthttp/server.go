package resthttp

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sir_venger/filedrop/internal/config"
	"github.com/sir_venger/filedrop/internal/logging"
	"github.com/sir_venger/filedrop/internal/models"
	"github.com/sir_venger/filedrop/internal/usecase/filesvc"
	"github.com/sir_venger/filedrop/pkg/httperrors"
	"github.com/sir_venger/filedrop/pkg/uploadproto"
)

type Server struct {
	FilesService filesvc.Service
	Cfg          *config.Config
	log          *logging.Logger
}

// NewServer конструктор: готовит каталог загрузок и собирает роутер.
func NewServer(cfg *config.Config, logger *logging.Logger) (http.Handler, *Server, error) {
	files, err := buildFileService(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		FilesService: files,
		Cfg:          cfg,
		log:          logger.Sublogger("http"),
	}

	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID)
	rtr.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: srv.log, NoColor: color.NoColor}))
	rtr.Use(middleware.Recoverer)

	rtr.Get("/", srv.getIndex)
	rtr.Get("/{file}", srv.getStatic)
	rtr.Post(uploadproto.UploadPath, srv.postUpload)
	rtr.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.Write(w, models.ErrNotFound)
	})

	return rtr, srv, nil
}

func buildFileService(cfg *config.Config, logger *logging.Logger) (*filesvc.Files, error) {
	files := filesvc.New(filesvc.Deps{
		StaticDir:        cfg.StaticDir,
		UploadDir:        cfg.UploadDir,
		Mode:             cfg.Upload.Mode,
		MaxBufferedBytes: cfg.Upload.MaxBufferedBytes,
		Logger:           logger,
	})

	if err := files.Prepare(); err != nil {
		return nil, err
	}

	return files, nil
}
