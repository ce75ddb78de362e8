package service

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных:
// пустой идентификатор контекста, неположительный размер пакета,
// запись без EnvelopeId или AuthToken
var ErrInvalidInput = errors.New("invalid input")
