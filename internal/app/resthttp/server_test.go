package resthttp

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sir_venger/filedrop/internal/config"
	"github.com/sir_venger/filedrop/internal/models"
	"github.com/sir_venger/filedrop/pkg/uploadproto"
)

type fixture struct {
	srv       *httptest.Server
	staticDir string
	uploadDir string
}

func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	base := t.TempDir()
	staticDir := filepath.Join(base, "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.html": "<!doctype html><h1>filedrop</h1>",
		"logo.svg":   `<svg xmlns="http://www.w3.org/2000/svg"/>`,
		"app.js":     "console.log(1)",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(staticDir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(base, "secret.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.StaticDir = staticDir
	cfg.UploadDir = filepath.Join(base, "uploads")
	if mutate != nil {
		mutate(cfg)
	}

	h, _, err := NewServer(cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, staticDir: staticDir, uploadDir: cfg.UploadDir}
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func multipartBody(t *testing.T, files ...[2]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		w, err := mw.CreateFormFile(uploadproto.FormField, f[0])
		if err != nil {
			t.Fatal(err)
		}
		if _, err = io.WriteString(w, f[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, url, contentType string, body io.Reader) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(url, contentType, body)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(b)
}

func TestGetStatic_ContentType(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := get(t, f.srv.URL+"/logo.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	want, _ := os.ReadFile(filepath.Join(f.staticDir, "logo.svg"))
	if !bytes.Equal(body, want) {
		t.Errorf("body = %q", body)
	}

	resp, _ = get(t, f.srv.URL+"/app.js")
	if ct := resp.Header.Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("app.js content type = %q", ct)
	}
}

func TestBundledPage_ServesUploadScript(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.StaticDir = filepath.Join("..", "..", "..", config.StaticDir)
	})

	resp, body := get(t, f.srv.URL+"/")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `src="/script.js"`) {
		t.Fatalf("index: status = %s, body = %q", resp.Status, body)
	}

	resp, body = get(t, f.srv.URL+"/script.js")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("script: status = %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("content type = %q", ct)
	}
	for _, want := range []string{`"/upload"`, `append("file"`, "upload.onprogress", `"drop"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("script does not contain %s", want)
		}
	}
}

func TestGetRoot_SameAsIndex(t *testing.T) {
	f := newFixture(t, nil)

	rootResp, root := get(t, f.srv.URL+"/")
	indexResp, index := get(t, f.srv.URL+"/index.html")

	if rootResp.StatusCode != http.StatusOK || indexResp.StatusCode != http.StatusOK {
		t.Fatalf("statuses = %s / %s", rootResp.Status, indexResp.Status)
	}
	if !bytes.Equal(root, index) {
		t.Errorf("root %q != index %q", root, index)
	}
	if rootResp.Header.Get("Content-Type") != "text/html" {
		t.Errorf("root content type = %q", rootResp.Header.Get("Content-Type"))
	}
}

func TestGetStatic_NotFound(t *testing.T) {
	f := newFixture(t, nil)

	for _, path := range []string{
		"/style.css", "/..%2fsecret.txt", "/%2e%2e", "/.%2e/secret.txt", "/nested/app.js",
	} {
		resp, body := get(t, f.srv.URL+path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %s", path, resp.Status)
		}
		if string(body) != "File not found" {
			t.Errorf("%s: body = %q", path, body)
		}
	}
}

func TestGetStatic_EscapedName(t *testing.T) {
	f := newFixture(t, nil)
	if err := os.WriteFile(filepath.Join(f.staticDir, "100%.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, body := get(t, f.srv.URL+"/100%25.png")
	if resp.StatusCode != http.StatusOK || string(body) != "png" {
		t.Fatalf("status = %s, body = %q", resp.Status, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
}

func TestPostUpload_Report(t *testing.T) {
	f := newFixture(t, nil)

	body, ct := multipartBody(t, [2]string{"report.txt", "hello"})
	resp, text := post(t, f.srv.URL+"/upload", ct, body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %s, body = %q", resp.Status, text)
	}
	if text != uploadproto.BodyUploaded {
		t.Errorf("body = %q", text)
	}
	if resp.Header.Get(uploadproto.HeaderUploadID) == "" {
		t.Error("missing upload id header")
	}
	got, err := os.ReadFile(filepath.Join(f.uploadDir, "report.txt"))
	if err != nil || string(got) != "hello" {
		t.Fatalf("report.txt = %q, %v", got, err)
	}
}

func TestPostUpload_ZeroParts(t *testing.T) {
	f := newFixture(t, nil)

	body, ct := multipartBody(t)
	resp, _ := post(t, f.srv.URL+"/upload", ct, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %s", resp.Status)
	}
	entries, err := os.ReadDir(f.uploadDir)
	if err != nil || len(entries) != 0 {
		t.Fatalf("upload dir entries = %v, %v", entries, err)
	}
}

func TestPostUpload_NotMultipart(t *testing.T) {
	f := newFixture(t, nil)

	resp, text := post(t, f.srv.URL+"/upload", "application/json", strings.NewReader(`{}`))
	if resp.StatusCode != http.StatusBadRequest || text != "Bad Request" {
		t.Fatalf("status = %s, body = %q", resp.Status, text)
	}
}

func TestPostUpload_IOFailureIsGeneric(t *testing.T) {
	f := newFixture(t, nil)
	// Подкладываем каталог на место файла назначения: os.Create упадёт с EISDIR.
	if err := os.MkdirAll(filepath.Join(f.uploadDir, "taken"), 0o755); err != nil {
		t.Fatal(err)
	}

	body, ct := multipartBody(t, [2]string{"taken", "x"}, [2]string{"later.txt", "y"})
	resp, text := post(t, f.srv.URL+"/upload", ct, body)

	if resp.StatusCode != http.StatusInternalServerError || text != "Internal Server Error" {
		t.Fatalf("status = %s, body = %q", resp.Status, text)
	}
	if _, err := os.Stat(filepath.Join(f.uploadDir, "later.txt")); !os.IsNotExist(err) {
		t.Error("parts after the failure were processed")
	}
}

func TestPostUpload_BodyLimit(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Upload.MaxBodyBytes = 512 })

	body, ct := multipartBody(t, [2]string{"big.bin", strings.Repeat("x", 4096)})
	resp, text := post(t, f.srv.URL+"/upload", ct, body)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %s, body = %q", resp.Status, text)
	}
}

func TestPostUpload_BufferedMode(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.Upload.Mode = models.CopyBuffer
		c.Upload.MaxBufferedBytes = 8
	})

	body, ct := multipartBody(t, [2]string{"small.txt", "tiny"})
	if resp, text := post(t, f.srv.URL+"/upload", ct, body); resp.StatusCode != http.StatusOK {
		t.Fatalf("small: status = %s, body = %q", resp.Status, text)
	}

	body, ct = multipartBody(t, [2]string{"large.txt", "far too large"})
	if resp, _ := post(t, f.srv.URL+"/upload", ct, body); resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("large: status = %s", resp.Status)
	}
}

func TestNewServer_CreatesUploadDir(t *testing.T) {
	f := newFixture(t, nil)

	info, err := os.Stat(f.uploadDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir not created: %v", err)
	}
}

func TestNewServer_UploadDirFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.StaticDir = filepath.Join(base, "static")
	cfg.UploadDir = filepath.Join(blocker, "uploads")

	if _, _, err := NewServer(cfg, nil); err == nil {
		t.Fatal("expected error when upload dir cannot be created")
	}
}
