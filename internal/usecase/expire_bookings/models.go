package expire_bookings

// Response результат прогона sweeper-а
type Response struct {
	ExpiredCount int `json:"expiredCount"`
}
