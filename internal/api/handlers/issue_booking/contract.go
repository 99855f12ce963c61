package issue_booking

import (
	"context"

	issueBooking "github.com/m04kA/SMC-RentalSchedule/internal/usecase/issue_booking"
)

type IssueBookingUseCase interface {
	Execute(ctx context.Context, req *issueBooking.Request) (*issueBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
