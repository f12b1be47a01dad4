package resthttp

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/sir_venger/filedrop/internal/models"
	"github.com/sir_venger/filedrop/pkg/httperrors"
	"github.com/sir_venger/filedrop/pkg/uploadproto"
)

// postUpload принимает multipart/form-data и делегирует запись частей сервису файлов.
// Лимит тела по умолчанию отключён; положительный upload.max_body_bytes включает http.MaxBytesReader.
func (s *Server) postUpload(w http.ResponseWriter, r *http.Request) {
	if limit := s.Cfg.Upload.MaxBodyBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	parts, err := r.MultipartReader()
	if err != nil {
		s.log.Warn(errors.Wrap(models.ErrMalformed, err.Error()))
		httperrors.Write(w, models.ErrMalformed)
		return
	}

	res, err := s.FilesService.Ingest(r.Context(), parts)
	w.Header().Set(uploadproto.HeaderUploadID, res.BatchID)
	if err != nil {
		code, _ := httperrors.Status(err)
		if code >= http.StatusInternalServerError {
			s.log.Error(errors.Wrapf(err, "upload %s", res.BatchID))
		} else {
			s.log.Warn(errors.Wrapf(err, "upload %s", res.BatchID))
		}
		httperrors.Write(w, err)
		return
	}

	s.log.Infof("upload %s: stored %d file(s), %s, skipped %d part(s)",
		res.BatchID, len(res.Files), humanize.IBytes(uint64(res.Size())), res.Skipped)
	httperrors.WriteText(w, http.StatusOK, uploadproto.BodyUploaded)
}
