package change_booking_status

import "context"

type BookingService interface {
	Reserve(ctx context.Context, bookingID, userID int64) error
	Return(ctx context.Context, bookingID, userID int64) error
	Cancel(ctx context.Context, bookingID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
