package clock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"adguardrules/config"
	"adguardrules/logger"
)

const defaultTimeout = 10 * time.Second

var errNoTimeField = errors.New("no known time field in response")

// Clock 获取网络时间，按顺序尝试时间接口，全部失败时使用本地时间
type Clock struct {
	apis     []string
	timeout  time.Duration
	location *time.Location
	client   *http.Client
	local    func() time.Time
}

// New 根据配置创建 Clock
func New(cfg *config.ClockConfig) *Clock {
	c := &Clock{
		apis:     cfg.TimeAPIs,
		timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
		location: FixedZone(cfg.UTCOffsetHours),
		client:   &http.Client{},
		local:    time.Now,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	return c
}

// FixedZone 返回 UTC+hours 的固定时区
func FixedZone(hours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600)
}

// Now 返回当前时间，已转换到配置的时区
func (c *Clock) Now(ctx context.Context) time.Time {
	for _, api := range c.apis {
		t, err := c.query(ctx, api)
		if err != nil {
			logger.Warnf("时间接口 %s 不可用: %v", api, err)
			continue
		}
		t = t.In(c.location)
		logger.Debugf("使用时间接口 %s: %s", api, t.Format("2006-01-02 15:04:05"))
		return t
	}

	t := c.local().In(c.location)
	logger.Infof("所有网络时间接口均不可用，使用本地时间: %s", t.Format("2006-01-02 15:04:05"))
	return t
}

func (c *Clock) query(ctx context.Context, api string) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api, nil)
	if err != nil {
		return time.Time{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return time.Time{}, err
	}
	return parseResponse(body, c.location)
}

// timeResponse 兼容 worldtimeapi、淘宝和苏宁三种返回格式
type timeResponse struct {
	Datetime string `json:"datetime"`
	Data     struct {
		T json.RawMessage `json:"t"`
	} `json:"data"`
	SysTime1 string `json:"sysTime1"`
}

// parseResponse 按返回内容中出现的字段选择解析方式
func parseResponse(body []byte, loc *time.Location) (time.Time, error) {
	var r timeResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return time.Time{}, fmt.Errorf("decode time response: %w", err)
	}

	switch {
	case r.Datetime != "":
		return time.Parse(time.RFC3339Nano, r.Datetime)
	case len(r.Data.T) > 0:
		ms, err := strconv.ParseInt(strings.Trim(string(r.Data.T), `"`), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse data.t: %w", err)
		}
		return time.UnixMilli(ms), nil
	case r.SysTime1 != "":
		return parseSysTime(r.SysTime1, loc)
	default:
		return time.Time{}, errNoTimeField
	}
}

// parseSysTime 苏宁接口返回的时间没有时区，按配置时区解释
func parseSysTime(s string, loc *time.Location) (time.Time, error) {
	if len(s) == 14 {
		return time.ParseInLocation("20060102150405", s, loc)
	}
	return time.ParseInLocation("2006-01-02 15:04:05", s, loc)
}
