package domain

// Table is a mongo collection name
type Table string

const (
	TableBotUsers    Table = "bot_users"
	TableUserActions Table = "user_actions"
)
