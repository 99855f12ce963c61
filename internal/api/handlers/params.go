package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// ParseIDList разбирает список ID через запятую ("1,2,3"); пустая строка дает nil
func ParseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseDate разбирает дату YYYY-MM-DD как полночь в часовом поясе расписания
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(domain.DateFormat, raw, loc)
}

// ParseTimestamp разбирает момент времени в формате RFC 3339
func ParseTimestamp(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
