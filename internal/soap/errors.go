package soap

import (
	"errors"
	"fmt"
)

// ErrTimeout возвращается, когда удаленный вызов превысил настроенный таймаут
var ErrTimeout = errors.New("request timed out")

// ErrServiceUnavailable возвращается, когда транспорт не смог достучаться до эндпоинта
var ErrServiceUnavailable = errors.New("service unavailable")

// ErrResponseRead возвращается, когда тело ответа не удалось прочитать после успешного статуса
var ErrResponseRead = errors.New("response body read failure")

// RemoteError возвращается, когда провайдер ответил неуспешным HTTP статусом.
// Сохраняет код, текст статуса и тело ответа (прочитанное по возможности).
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error: %s", e.Status)
}

// Коды классов ошибок для BatchResult.ErrorCode
const (
	CodeTimeout            = "timeout"
	CodeServiceUnavailable = "service_unavailable"
	CodeRemoteError        = "remote_error"
	CodeResponseRead       = "response_read_failure"
)

// ErrorCode классифицирует ошибку отправки пакета в один из кодов таксономии
func ErrorCode(err error) string {
	var remoteErr *RemoteError
	switch {
	case errors.Is(err, ErrTimeout):
		return CodeTimeout
	case errors.Is(err, ErrServiceUnavailable):
		return CodeServiceUnavailable
	case errors.Is(err, ErrResponseRead):
		return CodeResponseRead
	case errors.As(err, &remoteErr):
		return CodeRemoteError
	default:
		return ""
	}
}

// IsFatal сообщает, должна ли ошибка прервать весь запуск.
// Фатальны только два класса: Timeout и ServiceUnavailable.
func IsFatal(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrServiceUnavailable)
}
