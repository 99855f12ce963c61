package extend_booking

// ExtendBookingRequest HTTP request model
type ExtendBookingRequest struct {
	End string `json:"end"` // Новое окончание, RFC 3339
}
