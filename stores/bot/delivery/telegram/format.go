package telegram

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/yieldbot/domain/yield"
)

const (
	notAvailable = "N/A"
	dateLayout   = "02/01/06"
)

var (
	million  = decimal.NewFromInt(1000000)
	thousand = decimal.NewFromInt(1000)

	markdownEscaper = strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"`", "\\`",
		"[", "\\[",
	)
)

// EscapeMarkdown escapes the characters legacy Telegram markdown treats as entity markers
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatTvl renders tvl as $X.XM, $X.XK or $X
func FormatTvl(tvl float64) string {
	d := decimal.NewFromFloat(tvl)
	switch {
	case d.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(1) + "M"
	case d.GreaterThanOrEqual(thousand):
		return "$" + d.Div(thousand).StringFixed(1) + "K"
	default:
		return "$" + d.StringFixed(0)
	}
}

// FormatAPY renders a percentage with two decimals, N/A when missing
func FormatAPY(apy *float64) string {
	if apy == nil {
		return notAvailable
	}
	return decimal.NewFromFloat(*apy).StringFixed(2) + "%"
}

// RenderRecord is the fragment text of a record, without the rank emoji
func RenderRecord(r yield.Record) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "*%s* on *%s*\n", EscapeMarkdown(r.Asset), EscapeMarkdown(r.Chain))
	fmt.Fprintf(&sb, "   ┌ Protocol: *%s*\n", EscapeMarkdown(r.Protocol()))
	if r.SiteUrl != "" {
		fmt.Fprintf(&sb, "   ├ [Pool Site](%s)\n", r.SiteUrl)
	}
	fmt.Fprintf(&sb, "   ├ APY Total: *%s*\n", FormatAPY(r.APY))
	fmt.Fprintf(&sb, "   ├ APY Base: %s\n", FormatAPY(r.APYBase))
	fmt.Fprintf(&sb, "   ├ APY Reward: %s\n", FormatAPY(r.APYReward))
	fmt.Fprintf(&sb, "   ├ Avg APY 30d: %s\n", FormatAPY(r.APYMean30d))
	fmt.Fprintf(&sb, "   └ TVL: %s", FormatTvl(r.Tvl))
	return sb.String()
}

// RankedList joins the ranked fragments of records with a blank line
func RankedList(ranked func(r yield.Record, rank int) string, records []yield.Record) string {
	parts := make([]string, 0, len(records))
	for i, r := range records {
		parts = append(parts, ranked(r, i+1))
	}
	return strings.Join(parts, "\n\n")
}
