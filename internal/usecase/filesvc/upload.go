package filesvc

import (
	"bytes"
	"context"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sir_venger/filedrop/internal/models"
)

// Ingest обрабатывает части multipart-тела строго по очереди, пока они не закончатся.
// Части без имени файла пропускаются. Первая же ошибка прерывает обработку оставшихся частей;
// уже записанные файлы (в том числе частично записанный текущий) остаются на диске.
func (s *Files) Ingest(ctx context.Context, parts PartReader) (models.UploadResult, error) {
	res := models.UploadResult{BatchID: uuid.NewString()}
	log := s.Logger.Sublogger("upload").Sublogger(res.BatchID)

	for {
		if err := ctx.Err(); err != nil {
			return res, failure(err, "upload interrupted")
		}

		part, err := parts.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, failure(err, "unable to read next part")
		}

		stored, err := s.storePart(part)
		_ = part.Close()
		if err != nil {
			return res, err
		}
		if stored == nil {
			log.Debugf("skipped part %q without file name", part.FormName())
			res.Skipped++
			continue
		}

		log.Infof("Saved file: %s (%s)", stored.Path, humanize.IBytes(uint64(stored.Size)))
		res.Files = append(res.Files, *stored)
	}

	return res, nil
}

// storePart пишет одну часть в каталог загрузок. Возвращает nil без ошибки, если у части нет имени файла.
func (s *Files) storePart(part *multipart.Part) (*models.StoredFile, error) {
	name := part.FileName()
	if name == "" {
		return nil, nil
	}

	path, err := resolve(s.UploadDir, name)
	if err != nil {
		return nil, err
	}

	var n int64
	if s.Mode == models.CopyBuffer {
		n, err = s.bufferedCopy(path, part)
	} else {
		n, err = streamCopy(path, part)
	}
	if err != nil {
		return nil, err
	}

	return &models.StoredFile{Name: name, Path: path, Size: n}, nil
}

// streamCopy переносит байты части в файл по мере поступления из сети.
func streamCopy(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, failure(err, "unable to create %s", path)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return n, failure(err, "unable to write %s", path)
	}
	if err = f.Close(); err != nil {
		return n, failure(err, "unable to close %s", path)
	}

	return n, nil
}

// bufferedCopy читает часть в память целиком (не больше MaxBufferedBytes) и только потом создаёт файл.
func (s *Files) bufferedCopy(path string, r io.Reader) (int64, error) {
	limit := s.MaxBufferedBytes
	// Лишний байт нужен, чтобы отличить часть ровно в limit от превышения.
	readLimit := limit
	if readLimit < math.MaxInt64 {
		readLimit++
	}
	data, err := io.ReadAll(io.LimitReader(r, readLimit))
	if err != nil {
		return 0, failure(err, "unable to read part for %s", path)
	}
	if int64(len(data)) > limit {
		return 0, errors.Wrapf(models.ErrTooLarge, "part for %s exceeds %s buffer", path, humanize.IBytes(uint64(limit)))
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, failure(err, "unable to create %s", path)
	}

	n, err := io.Copy(f, bytes.NewReader(data))
	if err != nil {
		_ = f.Close()
		return n, failure(err, "unable to write %s", path)
	}
	if err = f.Close(); err != nil {
		return n, failure(err, "unable to close %s", path)
	}

	return n, nil
}

// failure классифицирует ошибку ввода-вывода: превышение лимита тела даёт ErrTooLarge, остальное — ErrInternalIO.
func failure(err error, format string, args ...interface{}) error {
	args = append(args, err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errors.Wrapf(models.ErrTooLarge, format+": %v", args...)
	}

	return errors.Wrapf(models.ErrInternalIO, format+": %v", args...)
}
