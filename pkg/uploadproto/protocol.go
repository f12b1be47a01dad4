// Package uploadproto описывает HTTP-контракт загрузки файлов, общий для сервера и клиента.
package uploadproto

// Параметры REST-протокола загрузки.
const (
	UploadPath     = "/upload"
	FormField      = "file"
	HeaderUploadID = "X-Upload-Id"
	BodyUploaded   = "File uploaded successfully"
)
