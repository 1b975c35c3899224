package resolve_slots

import "time"

// Request модель запроса статусов слотов на дату
type Request struct {
	Date time.Time // Дата без времени
}

// SlotStatus статус одного слота каталога на выбранную дату
type SlotStatus struct {
	Key          string     // Ключ слота
	Label        string     // Отображаемое название
	Time         string     // Интервал времени ("6AM - 1PM")
	Status       string     // available / pending / confirmed / cancelled
	PendingSince *time.Time // Для клиентского отсчёта окна подтверждения
}

// Response статусы всех слотов каталога на дату
type Response struct {
	Date                 time.Time
	Slots                []SlotStatus
	BookingSystemEnabled bool // Гейт для UI: показывать ли форму бронирования
	MaintenanceMode      bool
}
