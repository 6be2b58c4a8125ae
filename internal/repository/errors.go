package repository

import "errors"

var (
	// ErrSlotUnavailable — слот существует и не в статусе available.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrInUse — запись нельзя удалить, на неё ссылаются бронирования.
	ErrInUse = errors.New("record is referenced")
)
