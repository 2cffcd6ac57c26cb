package config

import (
	"gopkg.in/yaml.v3"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultLogLevel  = "info"
)

var defaultTimeAPIs = []string{
	"http://worldtimeapi.org/api/timezone/Asia/Shanghai",
	"http://api.m.taobao.com/rest/api3.do?api=mtop.common.getTimestamp",
	"http://quan.suning.com/getSysTime.do",
}

// setDefaultValues 设置配置文件中缺失字段的默认值
func setDefaultValues(cfg *Config, rawData []byte) {
	keys := presentKeys(rawData)

	setFetchDefaults(&cfg.Fetch)
	setClockDefaults(&cfg.Clock, keys)
	setOutputDefaults(&cfg.Output, keys)

	if cfg.System.LogLevel == "" {
		cfg.System.LogLevel = defaultLogLevel
	}
}

// setFetchDefaults 设置下载配置的默认值
func setFetchDefaults(f *FetchConfig) {
	if f.TimeoutSeconds == 0 {
		f.TimeoutSeconds = 30
	}
	if f.MaxConcurrent == 0 {
		f.MaxConcurrent = 5
	}
	// Retries: 未设置时默认重试一次，负数表示不重试
	if f.Retries == 0 {
		f.Retries = 1
	}
	if f.Retries < 0 {
		f.Retries = 0
	}
	if f.UserAgent == "" {
		f.UserAgent = defaultUserAgent
	}
	if f.MaxSizeMB == 0 {
		f.MaxSizeMB = 50
	}
}

// setClockDefaults 设置时间配置的默认值
func setClockDefaults(c *ClockConfig, keys map[string]map[string]bool) {
	if len(c.TimeAPIs) == 0 && !keys["clock"]["time_apis"] {
		c.TimeAPIs = append([]string(nil), defaultTimeAPIs...)
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
	// 0 是合法的偏移量（UTC），只有未写出该字段时才使用北京时间
	if c.UTCOffsetHours == 0 && !keys["clock"]["utc_offset_hours"] {
		c.UTCOffsetHours = 8
	}
}

// setOutputDefaults 设置输出配置的默认值
func setOutputDefaults(o *OutputConfig, keys map[string]map[string]bool) {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.BlockFile == "" {
		o.BlockFile = "Black.txt"
	}
	if o.AllowFile == "" {
		o.AllowFile = "White.txt"
	}
	if o.ImpuritiesDir == "" {
		o.ImpuritiesDir = "Ipurities"
	}
	if o.BlockImpuritiesFile == "" {
		o.BlockImpuritiesFile = "Black with impurities.txt"
	}
	if o.AllowImpuritiesFile == "" {
		o.AllowImpuritiesFile = "White with impurities.txt"
	}
	if o.ExtractedFile == "" {
		o.ExtractedFile = "colorful.txt"
	}
	// 显式写出 keep_on_total_failure: false 时尊重用户设置
	if !o.KeepOnTotalFailure && !keys["output"]["keep_on_total_failure"] {
		o.KeepOnTotalFailure = true
	}
}

// presentKeys 返回原始 YAML 中出现过的二级字段
// 用于区分字段被省略与被显式设置为零值
// 顶层的标量字段会被跳过
func presentKeys(rawData []byte) map[string]map[string]bool {
	var raw map[string]yaml.Node
	keys := make(map[string]map[string]bool)
	if err := yaml.Unmarshal(rawData, &raw); err != nil {
		return keys
	}
	for section, node := range raw {
		if node.Kind != yaml.MappingNode {
			continue
		}
		fields := make(map[string]bool, len(node.Content)/2)
		// Content 中键和值交替出现
		for i := 0; i+1 < len(node.Content); i += 2 {
			fields[node.Content[i].Value] = true
		}
		keys[section] = fields
	}
	return keys
}
