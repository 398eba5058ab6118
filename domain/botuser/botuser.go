package botuser

import (
	"time"

	"github.com/x-xyz/yieldbot/base/ctx"
)

// actions the bot records for analytics
const (
	ActionStart            = "start"
	ActionShowMenu         = "show_menu"
	ActionShowTop1         = "show_top_1"
	ActionShowTop3         = "show_top_3"
	ActionShowAssets       = "show_assets"
	ActionShowChains       = "show_chains"
	ActionSelectAsset      = "select_asset"
	ActionSelectChain      = "select_chain"
	ActionSubscribe        = "subscribe"
	ActionUnsubscribe      = "unsubscribe"
	ActionFeedback         = "feedback"
	ActionRefresh          = "refresh"
	ActionBackToMain       = "back_to_main"
	ActionShowAnalytics    = "show_analytics"
	ActionNotificationSent = "notification_sent"
)

var ignoredActions = map[string]bool{
	ActionBackToMain:       true,
	ActionShowAnalytics:    true,
	ActionNotificationSent: true,
}

// IsIgnoredAction reports whether action is never written to the action log
func IsIgnoredAction(action string) bool {
	return ignoredActions[action]
}

type User struct {
	TelegramId string    `json:"telegramId" bson:"telegram_id"`
	Username   string    `json:"username" bson:"username"`
	Subscribed bool      `json:"subscribed" bson:"subscribed"`
	IsAdmin    bool      `json:"isAdmin" bson:"is_admin"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

type Action struct {
	TelegramId string    `json:"telegramId" bson:"user_id"`
	Username   string    `json:"username" bson:"username"`
	Action     string    `json:"action" bson:"action"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

type ActionCount struct {
	Action string `json:"action" bson:"_id"`
	Count  int    `json:"count" bson:"count"`
}

type NewUsers struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
	Total int `json:"total"`
}

type Analytics struct {
	NewUsers     NewUsers      `json:"newUsers"`
	Actions      []ActionCount `json:"actions"`
	TodayActions []ActionCount `json:"todayActions"`
}

type Repo interface {
	// FindOne returns nil without error when the user does not exist
	FindOne(c ctx.Ctx, telegramId string) (*User, error)
	Create(c ctx.Ctx, user User) error
	FindSubscribed(c ctx.Ctx) ([]*User, error)
	UpdateSubscription(c ctx.Ctx, telegramId string, subscribed bool) error
	FindAdminIds(c ctx.Ctx) ([]string, error)
	// CountCreatedSince counts users created at or after since. A zero since counts everyone.
	CountCreatedSince(c ctx.Ctx, since time.Time) (int, error)
}

type ActionRepo interface {
	Create(c ctx.Ctx, action Action) error
	// CountByType groups actions created at or after since by type, ignoring the excluded users
	CountByType(c ctx.Ctx, since time.Time, excludeIds []string) ([]ActionCount, error)
}

type Usecase interface {
	GetOrCreate(c ctx.Ctx, telegramId, username string) (*User, error)
	Get(c ctx.Ctx, telegramId string) (*User, error)
	FindSubscribed(c ctx.Ctx) ([]*User, error)
	UpdateSubscription(c ctx.Ctx, telegramId string, subscribed bool) error
	IsAdmin(c ctx.Ctx, telegramId string) bool
	LogAction(c ctx.Ctx, action, telegramId, username string)
	Analytics(c ctx.Ctx, now time.Time) (*Analytics, error)
}
