package models

import "time"

// User is a bot user registered on first /start. Rows are insert-if-absent:
// re-registration is a no-op and nothing mutates or deletes a user afterwards.
type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	LanguageCode string    `json:"language_code"`
	CreatedAt    time.Time `json:"created_at"`
}
