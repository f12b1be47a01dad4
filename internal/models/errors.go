package models

import "errors"

var (
	// ErrNotFound — статический файл отсутствует или не читается по любой причине.
	ErrNotFound = errors.New("file not found")
	// ErrInternalIO — сбой при создании/записи файла загрузки или чтении multipart-потока.
	ErrInternalIO = errors.New("internal i/o failure")
	// ErrInvalidName — имя файла выходит за пределы корневого каталога.
	ErrInvalidName = errors.New("invalid file name")
	// ErrMalformed — тело запроса не является multipart/form-data.
	ErrMalformed = errors.New("malformed multipart request")
	// ErrTooLarge — превышен лимит размера тела или буфера части.
	ErrTooLarge = errors.New("payload too large")
)
