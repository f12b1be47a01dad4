package config

import (
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sir_venger/filedrop/internal/logging"
	"github.com/sir_venger/filedrop/internal/models"
)

const (
	DefaultHost             = "0.0.0.0"
	DefaultPort             = 3000
	DefaultLogLevel         = "info"
	DefaultMaxBufferedBytes = 32 << 20

	// StaticDir и UploadDir фиксированы и не читаются из файла или окружения.
	StaticDir = "static"
	UploadDir = "uploads"
)

// Upload — параметры приёма multipart-загрузок.
type Upload struct {
	Mode             models.CopyMode `yaml:"mode" json:"mode"`
	MaxBufferedBytes int64           `yaml:"max_buffered_bytes" json:"max_buffered_bytes"`
	// MaxBodyBytes <= 0 отключает лимит тела запроса для /upload.
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes"`
}

type Config struct {
	Host       string `yaml:"host" json:"host"`
	Port       int    `yaml:"port" json:"port"`
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
	LogLevel   string `yaml:"log_level" json:"log_level"`
	Upload     Upload `yaml:"upload" json:"upload"`

	StaticDir string `yaml:"-" json:"static_dir"`
	UploadDir string `yaml:"-" json:"upload_dir"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
		Upload: Upload{
			Mode:             models.CopyStream,
			MaxBufferedBytes: DefaultMaxBufferedBytes,
		},
		StaticDir: StaticDir,
		UploadDir: UploadDir,
	}
}

// Load подгружает .env, читает YAML-конфигурацию (если файл есть), применяет ENV-переопределения.
// Пустой path означает CONFIG_PATH или ./config.yaml.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "unable to load .env")
	}

	if path == "" {
		path = getenv("CONFIG_PATH", "./config.yaml")
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, errors.Wrapf(err, "unable to parse %s", path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	return c, nil
}

// ENV override
func (c *Config) applyEnv() error {
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("invalid PORT %q", v)
		}
		c.Port = port
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("UPLOAD_MODE"); v != "" {
		c.Upload.Mode = models.CopyMode(strings.ToLower(v))
	}
	if v := os.Getenv("UPLOAD_MAX_BUFFERED_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Errorf("invalid UPLOAD_MAX_BUFFERED_BYTES %q", v)
		}
		c.Upload.MaxBufferedBytes = n
	}
	if v := os.Getenv("UPLOAD_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Errorf("invalid UPLOAD_MAX_BODY_BYTES %q", v)
		}
		c.Upload.MaxBodyBytes = n
	}

	return nil
}

// Addr возвращает адрес для net.Listen: listen_addr, либо host:port.
func (c *Config) Addr() string {
	if c.ListenAddr != "" {
		return c.ListenAddr
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate проверяет, что с конфигурацией можно стартовать.
func (c *Config) Validate() error {
	_, portStr, err := net.SplitHostPort(c.Addr())
	if err != nil {
		return errors.Wrapf(err, "invalid listen address %q", c.Addr())
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return errors.Errorf("invalid port %q", portStr)
	}

	if _, ok := logging.NameToLevel(c.LogLevel); !ok {
		return errors.Errorf("invalid log level %q", c.LogLevel)
	}

	if !c.Upload.Mode.Valid() {
		return errors.Errorf("invalid upload mode %q", c.Upload.Mode)
	}
	if c.Upload.Mode == models.CopyBuffer && c.Upload.MaxBufferedBytes <= 0 {
		return errors.New("buffered uploads require max_buffered_bytes > 0")
	}

	return checkDisjoint(c.StaticDir, c.UploadDir)
}

// checkDisjoint убеждается, что ни один из каталогов не вложен в другой.
func checkDisjoint(staticDir, uploadDir string) error {
	if staticDir == "" || uploadDir == "" {
		return errors.New("static and upload directories must be set")
	}

	a, err := filepath.Abs(staticDir)
	if err != nil {
		return errors.Wrap(err, "unable to resolve static directory")
	}
	b, err := filepath.Abs(uploadDir)
	if err != nil {
		return errors.Wrap(err, "unable to resolve upload directory")
	}

	if within(a, b) || within(b, a) {
		return errors.Errorf("static directory %s and upload directory %s overlap", a, b)
	}

	return nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
