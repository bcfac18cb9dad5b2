package model

// User is a chat user known to the bot. Created on first /start,
// never deleted automatically.
type User struct {
	TelegramID int64  `db:"telegram_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Username   string `db:"username"`
	IsAdmin    bool   `db:"is_admin"`
}
