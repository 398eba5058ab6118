package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/x-xyz/yieldbot/domain/botuser"
)

const (
	tvlNotice = "_Only the pools with more than $1M TVL are shown_"

	textSelectAsset     = "Select Asset:"
	textSelectChain     = "Select Chain:"
	textNoTop           = "Failed to retrieve data about the best APY."
	textNoTopThree      = "Failed to retrieve data about the top APY opportunities."
	textNoAssets        = "Sorry, I couldn't retrieve the list of assets at the moment. Please try again later."
	textNoChains        = "Sorry, I couldn't retrieve the list of chains at the moment. Please try again later."
	textAccessDenied    = "Access denied. This feature is available only for administrators."
	textNoAnalytics     = "Failed to generate analytics report."
	textSubscribed      = "You are subscribed to the daily top pool update."
	textUnsubscribed    = "You are unsubscribed from the daily top pool update. Send /subscribe to come back."
	textSubscribeFailed = "Failed to update your subscription. Please try again later."
)

func welcomeText(notificationTime string) string {
	return "Welcome to the Stablecoin Yield Bot by Yieldex!\n" +
		"This bot tracks the most profitable stablecoin pools in the DeFi market sorted by total APY (native+reward) and shares updates daily.\n\n" +
		"What would you like to do next?\n\n" +
		fmt.Sprintf("_(The data about the best pool is sent at %s UTC daily)_", notificationTime)
}

func feedbackText(contact string) string {
	return "To request a feature or leave feedback, feel free to send a DM to " + contact
}

// DigestText is the top pool message, used by the menu and the daily digest
func DigestText(now time.Time, ranked string) string {
	return fmt.Sprintf("💰TOP STABLECOIN POOL %s\n\n%s\n\n%s", now.UTC().Format(dateLayout), ranked, tvlNotice)
}

func topThreeText(now time.Time, list string) string {
	return fmt.Sprintf("💰TOP STABLECOIN POOLS %s\n\n%s\n\n%s", now.UTC().Format(dateLayout), list, tvlNotice)
}

func topCommandText(list string) string {
	return "✨ TOP STABLE OPPORTUNITIES ✨\n\n" + list
}

func assetText(asset, list string) string {
	return fmt.Sprintf("*Top APY for %s*\n\n%s", EscapeMarkdown(asset), list)
}

func noAssetText(asset string) string {
	return fmt.Sprintf("Failed to retrieve APY data for asset %s.", asset)
}

func chainText(chain, list string) string {
	return fmt.Sprintf("✨ TOP OPPORTUNITIES ON %s ✨\n\n%s", EscapeMarkdown(strings.ToUpper(chain)), list)
}

func noChainText(chain string) string {
	return fmt.Sprintf("No data available for chain %s.", chain)
}

func refreshText(status, runId string, records int, took time.Duration) string {
	return fmt.Sprintf("Refresh %s\nrun: %s\nrecords: %d\ntook: %s", status, runId, records, took.Round(time.Millisecond))
}

func tokenText(token string) string {
	return "Admin api token, valid for 24h:\n`" + token + "`"
}

func analyticsText(a *botuser.Analytics) string {
	sb := strings.Builder{}
	sb.WriteString("📊 *Bot Analytics Report*\n\n")
	sb.WriteString("👥 *Users*\n")
	fmt.Fprintf(&sb, "• Total: %d\n", a.NewUsers.Total)
	fmt.Fprintf(&sb, "• New today: %d\n", a.NewUsers.Today)
	fmt.Fprintf(&sb, "• New this week: %d\n", a.NewUsers.Week)
	fmt.Fprintf(&sb, "• New this month: %d\n\n", a.NewUsers.Month)

	sb.WriteString("🔄 *All Time Actions*\n")
	if len(a.Actions) == 0 {
		sb.WriteString("No actions recorded.\n")
	}
	for _, item := range a.Actions {
		fmt.Fprintf(&sb, "• %s: %d\n", EscapeMarkdown(item.Action), item.Count)
	}

	sb.WriteString("\n📈 *Today's Actions*\n")
	if len(a.TodayActions) == 0 {
		sb.WriteString("No actions recorded today.\n")
	}
	for _, item := range a.TodayActions {
		fmt.Fprintf(&sb, "• %s: %d\n", EscapeMarkdown(item.Action), item.Count)
	}
	return sb.String()
}
