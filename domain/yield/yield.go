package yield

import (
	"strings"
	"time"

	"github.com/x-xyz/yieldbot/base/ctx"
)

const poolIdDelimiter = "_"

// Record is one row of the yield table
type Record struct {
	PoolId     string   `json:"pool_id"`
	Asset      string   `json:"asset"`
	Chain      string   `json:"chain"`
	APY        *float64 `json:"apy"`
	APYBase    *float64 `json:"apy_base"`
	APYReward  *float64 `json:"apy_reward"`
	APYMean30d *float64 `json:"apy_mean_30d"`
	Tvl        float64  `json:"tvl"`
	SiteUrl    string   `json:"site_url,omitempty"`
}

// Protocol is derived from the pool id. The first two segments tag the source
// and the asset, everything after them is the protocol name. Ids with fewer
// than three segments fall back to the first segment.
func (r Record) Protocol() string {
	parts := strings.Split(r.PoolId, poolIdDelimiter)
	if len(parts) >= 3 {
		return strings.Join(parts[2:], poolIdDelimiter)
	}
	return parts[0]
}

// TotalAPY returns the total yield, missing values rank as zero
func (r Record) TotalAPY() float64 {
	if r.APY == nil {
		return 0
	}
	return *r.APY
}

// Snapshot is the full record set fetched in one go. It is replaced as a whole
// and never mutated after being published.
type Snapshot []Record

// RecordStore fetches the latest snapshot from the remote yield table
type RecordStore interface {
	FetchAll(c ctx.Ctx) (Snapshot, error)
}

// RefreshStatus is the outcome of a full cache refresh
type RefreshStatus string

const (
	// Refreshed means a new snapshot was installed and every view recomputed
	Refreshed RefreshStatus = "refreshed"
	// RefreshFresh means the snapshot was still within its ttl so nothing was fetched
	RefreshFresh RefreshStatus = "fresh"
	// RefreshSkipped means another refresh was already running
	RefreshSkipped RefreshStatus = "skipped"
	// RefreshFailed means the fetch failed and previous values are kept
	RefreshFailed RefreshStatus = "failed"
)

type RefreshResult struct {
	RunId    string        `json:"runId"`
	Status   RefreshStatus `json:"status"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
}

// CacheStatus describes one named cache for the admin endpoint
type CacheStatus struct {
	Name        string        `json:"name"`
	Present     bool          `json:"present"`
	Valid       bool          `json:"valid"`
	Size        int           `json:"size"`
	RefreshedAt time.Time     `json:"refreshedAt"`
	Age         time.Duration `json:"age"`
}

// Reader serves the ranked views to the bot and http layers
type Reader interface {
	TopAPY(c ctx.Ctx) (Record, bool)
	TopThreeAPY(c ctx.Ctx) []Record
	TopTenAPY(c ctx.Ctx) []Record
	Assets(c ctx.Ctx) []string
	Chains(c ctx.Ctx) []string
	TopAPYForAsset(c ctx.Ctx, asset string) []Record
	TopAPYForChain(c ctx.Ctx, chain string) []Record
	// Ranked renders a record prefixed by the emoji of its 1-based rank
	Ranked(c ctx.Ctx, r Record, rank int) string
}

// Refresher triggers full refreshes of every cached view
type Refresher interface {
	UpdateAllCaches(c ctx.Ctx) RefreshResult
	ForceRefreshAllCaches(c ctx.Ctx) RefreshResult
	Status(c ctx.Ctx) []CacheStatus
}

// Service is the full cache surface
type Service interface {
	Reader
	Refresher
}

// RankEmoji decorates a 1-based rank
func RankEmoji(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏅"
	}
}
