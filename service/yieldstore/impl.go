package yieldstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldbot/base/backoff"
	bCtx "github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/log"
	"github.com/x-xyz/yieldbot/base/metrics"
	bValidator "github.com/x-xyz/yieldbot/base/validator"
	"github.com/x-xyz/yieldbot/domain/yield"
)

func NewClient(cfg *ClientCfg) yield.RecordStore {
	rpc := cfg.Rpc
	if rpc == "" {
		rpc = DefaultRpc
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	met := cfg.Metrics
	if met == nil {
		met = metrics.NewNop()
	}
	return &client{
		client:     cfg.HttpClient,
		url:        strings.TrimSuffix(cfg.Url, "/"),
		key:        cfg.Key,
		rpc:        rpc,
		timeout:    timeout,
		attempts:   attempts,
		retryDelay: retryDelay,
		met:        met,
		validate:   bValidator.Default(),
	}
}

type client struct {
	client     http.Client
	url        string
	key        string
	rpc        string
	timeout    time.Duration
	attempts   int
	retryDelay time.Duration
	met        metrics.Service
	validate   *validator.Validate
}

func (c *client) FetchAll(ctx bCtx.Ctx) (yield.Snapshot, error) {
	defer c.met.BumpTime("fetch.time", "rpc", c.rpc).End()

	if c.url == "" {
		return nil, ErrNoUrl
	}

	url := fmt.Sprintf("%s/rest/v1/rpc/%s", c.url, c.rpc)
	var data []byte
	err := backoff.NewExponential(c.retryDelay, maxRetryDelay).Retry(ctx, c.attempts, func() error {
		var postErr error
		data, postErr = c.post(ctx, url, []byte("{}"))
		return postErr
	})
	if err != nil {
		c.met.BumpSum("fetch.err", 1, "rpc", c.rpc)
		return nil, xerrors.Errorf("rpc %s: %w", c.rpc, err)
	}

	snap, err := c.decode(ctx, data)
	if err != nil {
		c.met.BumpSum("fetch.err", 1, "rpc", c.rpc)
		return nil, xerrors.Errorf("decode %s: %w", c.rpc, err)
	}
	c.met.BumpHistogram("fetch.records", float64(len(snap)), "rpc", c.rpc)
	return snap, nil
}

// decode unmarshals rows one by one. Only a row that is not a json object
// is dropped, any other defect defaults the affected columns.
func (c *client) decode(ctx bCtx.Ctx, data []byte) (yield.Snapshot, error) {
	rows := []json.RawMessage{}
	if err := json.Unmarshal(data, &rows); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}

	snap := make(yield.Snapshot, 0, len(rows))
	skipped := 0
	defaulted := 0
	for i, row := range rows {
		raw := rawRecord{}
		if err := json.Unmarshal(row, &raw); err != nil || raw == nil {
			ctx.WithFields(log.Fields{"row": i, "err": err}).Warn("malformed record skipped")
			skipped++
			continue
		}
		rec, bad := raw.toRecord(c.validate)
		if len(bad) > 0 {
			ctx.WithFields(log.Fields{"row": i, "poolId": rec.PoolId, "columns": bad}).Warn("invalid columns defaulted")
			defaulted++
		}
		snap = append(snap, rec)
	}
	if skipped > 0 {
		c.met.BumpSum("fetch.skipped", float64(skipped), "rpc", c.rpc)
	}
	if defaulted > 0 {
		c.met.BumpSum("fetch.defaulted", float64(defaulted), "rpc", c.rpc)
	}
	return snap, nil
}

func (c *client) post(ctx bCtx.Ctx, url string, body []byte) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("apikey", c.key)
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return data, nil
}
