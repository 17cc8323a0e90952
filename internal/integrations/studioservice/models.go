package studioservice

// Studio модель студии из StudioService
type Studio struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Address    string  `json:"address"`
	ManagerIDs []int64 `json:"manager_ids"` // операторы студии (админский доступ)
	LayoutIDs  []int64 `json:"layout_ids"`
}

// Layout модель съемочного сетапа (зала) из StudioService
type Layout struct {
	ID           int64    `json:"id"`
	StudioID     int64    `json:"studio_id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	SessionPrice *float64 `json:"session_price,omitempty"`
	IsActive     bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от StudioService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
