package wire

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated      = errors.New("wire: недостаточно данных в буфере")
	ErrVarIntTooBig   = errors.New("wire: varint длиннее допустимого")
	ErrInvalidLength  = errors.New("wire: недопустимая длина")
	ErrStringTooLong  = errors.New("wire: строка длиннее допустимого")
	ErrProtocolDesync = errors.New("wire: рассинхронизация протокола")

	ErrNothingToUnread = errors.New("wire: нет прочитанного байта для возврата")
)

// DesyncError описывает расхождение между объявленной и фактической длиной данных.
// Такая ошибка фатальна для соединения: положение последующих байтов неизвестно.
type DesyncError struct {
	Where    string
	Expected int
	Actual   int
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("wire: рассинхронизация протокола (%s): ожидалось %d, получено %d",
		e.Where, e.Expected, e.Actual)
}

func (e *DesyncError) Unwrap() error {
	return ErrProtocolDesync
}
