package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
)

// Request модель запроса на создание бронирования
// Одно бронирование создается на каждый ресурс, все в одной транзакции
type Request struct {
	UserID      int64                // ID пользователя
	ResourceIDs []int64              // Комнаты и/или единицы инвентаря
	Start       time.Time            // Начало интервала
	End         time.Time            // Конец интервала (не включается)
	UserName    string               // Кто занимает ресурс
	Project     string               // Проект/мероприятие
	PeopleCount int                  // Количество человек (для комнат)
	Status      domain.BookingStatus // draft или reserved, по умолчанию draft
	Notes       *string              // Дополнительные заметки (опционально)
}

// Response модель ответа с созданными бронированиями
type Response struct {
	BookingIDs []int64
	Bookings   []*domain.Booking
}
