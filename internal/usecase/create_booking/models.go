package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	Date        time.Time // Дата бронирования (без времени)
	SlotKey     string    // Ключ слота из каталога (например, "morning")
	UserName    string    // Имя пользователя
	Address     string    // Адрес
	PhoneNumber string    // Телефон в международном формате
	OwnerUserID *string   // ID аутентифицированного пользователя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           string    // ID бронирования - он же capability-токен ссылки
	BookingDate  time.Time // Дата бронирования
	SlotKey      string    // Ключ слота
	UserName     string    // Имя пользователя
	Address      string    // Адрес
	PhoneNumber  string    // Телефон
	Status       string    // Всегда "pending" при создании
	PendingSince time.Time // Начало окна подтверждения

	// Ссылки для дальнейших шагов пользователя
	ConfirmURL  string // capability-ссылка подтверждения
	WhatsAppURL string // wa.me-ссылка с предзаполненным сообщением

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
