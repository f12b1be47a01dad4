// Package uploadclient отправляет локальные файлы на сервер одним multipart-запросом,
// не буферизуя их в памяти.
package uploadclient

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/filedrop/pkg/uploadproto"
)

// File — один файл для отправки.
type File struct {
	Name   string
	Reader io.Reader
	// Size используется только для прогресс-бара; 0 — размер неизвестен.
	Size int64
}

// Result — ответ сервера на загрузку.
type Result struct {
	Status   int
	UploadID string
	Message  string
}

type Client interface {
	// Upload отправляет файлы на baseURL + /upload в порядке следования.
	Upload(ctx context.Context, baseURL string, files []File) (Result, error)
}

type httpClient struct {
	c        *http.Client
	progress io.Writer
}

// New создаёт HTTP-клиент по умолчанию. Если progress не nil, туда рисуется прогресс по каждому файлу.
func New(progress io.Writer) Client {
	return &httpClient{
		c:        &http.Client{},
		progress: progress,
	}
}

// Upload стримит multipart-тело через io.Pipe: запись частей идёт в отдельной горутине.
func (h *httpClient) Upload(ctx context.Context, baseURL string, files []File) (Result, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := h.writeParts(egCtx, mw, files)
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
		return err
	})

	u := strings.TrimRight(baseURL, "/") + uploadproto.UploadPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		_ = eg.Wait()
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.c.Do(req)
	// Сервер мог ответить, не дочитав тело; разблокируем писателя.
	_ = pr.Close()
	writeErr := eg.Wait()
	if err != nil {
		if writeErr != nil {
			return Result{}, errors.Wrap(writeErr, "unable to write request body")
		}
		return Result{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	res := Result{
		Status:   resp.StatusCode,
		UploadID: resp.Header.Get(uploadproto.HeaderUploadID),
		Message:  strings.TrimSpace(string(body)),
	}

	if resp.StatusCode != http.StatusOK {
		return res, errors.Errorf("upload failed: %s: %s", resp.Status, res.Message)
	}
	if writeErr != nil {
		return res, errors.Wrap(writeErr, "unable to write request body")
	}

	return res, nil
}

func (h *httpClient) writeParts(ctx context.Context, mw *multipart.Writer, files []File) error {
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		part, err := mw.CreateFormFile(uploadproto.FormField, f.Name)
		if err != nil {
			return err
		}

		var bar *progressBar
		src := f.Reader
		if h.progress != nil {
			bar = newProgressBar(h.progress, fmtPrefix(f.Name, i, len(files)), f.Size)
			bar.render(true, "")
			src = io.TeeReader(f.Reader, progressWriter{bar: bar})
		}

		if _, err = io.Copy(part, src); err != nil {
			bar.Fail(err)
			return errors.Wrapf(err, "unable to send %s", f.Name)
		}
		bar.Finish()
	}

	return nil
}
