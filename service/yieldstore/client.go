package yieldstore

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/yieldbot/base/metrics"
	"github.com/x-xyz/yieldbot/domain/yield"
)

const (
	DefaultRpc        = "get_latest_apy_data"
	DefaultTimeout    = 15 * time.Second
	DefaultAttempts   = 3
	DefaultRetryDelay = time.Second
	maxRetryDelay     = 10 * time.Second
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrNoUrl           = errors.New("yieldstore url is empty")
)

type ClientCfg struct {
	HttpClient http.Client
	// Url is the base url of the PostgREST endpoint, without /rest/v1
	Url     string
	Key     string
	Rpc     string
	Timeout time.Duration
	// Attempts bounds the calls of one fetch, failed calls are retried with an exponential backoff
	Attempts   int
	RetryDelay time.Duration
	Metrics    metrics.Service
}

// rawRecord is one row of the RPC result. Columns are decoded one by one so
// a bad column only defaults itself: text to "", numbers to null. Numeric
// columns may be null, a number or a quoted number.
type rawRecord map[string]json.RawMessage

const (
	colPoolId     = "pool_id"
	colAsset      = "asset"
	colChain      = "chain"
	colAPY        = "apy"
	colAPYBase    = "apy_base"
	colAPYReward  = "apy_reward"
	colAPYMean30d = "apy_mean_30d"
	colTvl        = "tvl"
	colSiteUrl    = "site_url"
)

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// text returns the string column key, reporting it in bad when it is not a string
func (r rawRecord) text(key string, bad *[]string) string {
	raw, ok := r[key]
	if !ok || isNull(raw) {
		return ""
	}
	s := ""
	if err := json.Unmarshal(raw, &s); err != nil {
		*bad = append(*bad, key)
		return ""
	}
	return s
}

// number returns the numeric column key, reporting it in bad when it holds no number
func (r rawRecord) number(key string, bad *[]string) *float64 {
	raw, ok := r[key]
	if !ok || isNull(raw) {
		return nil
	}
	d := decimal.NullDecimal{}
	if err := d.UnmarshalJSON(raw); err != nil || !d.Valid {
		*bad = append(*bad, key)
		return nil
	}
	f, _ := d.Decimal.Float64()
	return &f
}

// toRecord converts the row and returns the columns that had to be defaulted
func (r rawRecord) toRecord(validate *validator.Validate) (yield.Record, []string) {
	bad := []string{}
	rec := yield.Record{
		PoolId:     r.text(colPoolId, &bad),
		Asset:      r.text(colAsset, &bad),
		Chain:      r.text(colChain, &bad),
		APY:        r.number(colAPY, &bad),
		APYBase:    r.number(colAPYBase, &bad),
		APYReward:  r.number(colAPYReward, &bad),
		APYMean30d: r.number(colAPYMean30d, &bad),
		SiteUrl:    r.text(colSiteUrl, &bad),
	}
	if tvl := r.number(colTvl, &bad); tvl != nil {
		rec.Tvl = *tvl
	}
	if rec.SiteUrl != "" && validate.Var(rec.SiteUrl, "url") != nil {
		bad = append(bad, colSiteUrl)
		rec.SiteUrl = ""
	}
	return rec, bad
}
