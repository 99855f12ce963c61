package list_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/api/handlers"
	"github.com/m04kA/SMC-RentalSchedule/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	resourceIDsStr string,
	startDateStr string,
	endDateStr string,
	statusStr string,
	userIDStr string,
	includeCancelledStr string,
	loc *time.Location,
) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		IncludeCancelled: false, // По умолчанию только активные
	}

	resourceIDs, err := handlers.ParseIDList(resourceIDsStr)
	if err != nil {
		return nil, err
	}
	req.ResourceIDs = resourceIDs

	if startDateStr != "" {
		date, err := handlers.ParseDate(startDateStr, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}

	if endDateStr != "" {
		date, err := handlers.ParseDate(endDateStr, loc)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.UserID = &userID
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
