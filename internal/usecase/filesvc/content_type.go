package filesvc

import (
	"path/filepath"
	"strings"
)

const defaultContentType = "application/octet-stream"

var extToContentType = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// ContentTypeOf выводит MIME-тип только по расширению файла, без чтения содержимого.
func ContentTypeOf(name string) string {
	if ct, ok := extToContentType[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}
