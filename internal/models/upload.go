package models

// CopyMode задаёт стратегию переноса байтов части в файл.
type CopyMode string

const (
	// CopyStream копирует поток части в файл инкрементально, с ограниченной памятью.
	CopyStream CopyMode = "stream"
	// CopyBuffer сначала читает часть целиком в память, затем пишет её на диск.
	CopyBuffer CopyMode = "buffer"
)

// Valid сообщает, известен ли режим копирования.
func (m CopyMode) Valid() bool {
	return m == CopyStream || m == CopyBuffer
}

// UploadResult возвращается после обработки multipart-тела.
type UploadResult struct {
	BatchID string
	Files   []StoredFile
	Skipped int
}

// Size возвращает суммарный объём записанных файлов.
func (r UploadResult) Size() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size
	}
	return total
}
