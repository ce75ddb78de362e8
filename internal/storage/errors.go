package storage

import "errors"

// ErrRunNotFound возвращается, когда запуск не найден в истории
var ErrRunNotFound = errors.New("run not found")

// ErrRunConflict возвращается, когда запуск с таким run_id уже сохранен
var ErrRunConflict = errors.New("run already exists")
