package models

// ServedFile — содержимое статического файла вместе с выведенным MIME-типом.
type ServedFile struct {
	Name        string
	Path        string
	ContentType string
	Data        []byte
}

// StoredFile описывает файл, записанный в каталог загрузок.
type StoredFile struct {
	Name string
	Path string
	Size int64
}
