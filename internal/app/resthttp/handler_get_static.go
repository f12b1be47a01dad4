package resthttp

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/sir_venger/filedrop/internal/models"
	"github.com/sir_venger/filedrop/internal/usecase/filesvc"
	"github.com/sir_venger/filedrop/pkg/httperrors"
)

func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	s.serveStatic(w, r, filesvc.IndexFile)
}

func (s *Server) getStatic(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")

	// Chi маршрутизирует по RawPath, если он есть, и тогда сегмент ещё экранирован.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(file)
		if err != nil {
			s.log.Debugf("bad static path %q: %v", file, err)
			httperrors.Write(w, errors.Wrap(models.ErrNotFound, err.Error()))
			return
		}
		file = unescaped
	}

	s.serveStatic(w, r, file)
}

// serveStatic отдаёт файл целиком с Content-Type по расширению либо 404.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request, file string) {
	f, err := s.FilesService.ReadStatic(r.Context(), file)
	if err != nil {
		s.log.Debugf("%v", err)
		httperrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Data)
}
