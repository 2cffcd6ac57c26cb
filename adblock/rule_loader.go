package adblock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"adguardrules/config"
	"adguardrules/logger"

	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxConcurrentDownloads = 5
	defaultDownloadTimeout        = 30 * time.Second
	defaultMaxSizeMB              = 50
)

// ErrTooLarge 下载内容超过大小限制
var ErrTooLarge = errors.New("source exceeds size limit")

// RuleLoader 负责下载规则源文本
type RuleLoader struct {
	client        *http.Client
	maxConcurrent int
	timeout       time.Duration
	retries       int
	userAgent     string
	maxBytes      int64
	sources       *SourceManager
}

// NewRuleLoader 创建下载器，sources 可以为 nil
func NewRuleLoader(cfg *config.FetchConfig, sources *SourceManager) *RuleLoader {
	rl := &RuleLoader{
		client:        &http.Client{},
		maxConcurrent: cfg.MaxConcurrent,
		timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
		retries:       cfg.Retries,
		userAgent:     cfg.UserAgent,
		maxBytes:      int64(cfg.MaxSizeMB) * 1024 * 1024,
		sources:       sources,
	}
	if rl.maxConcurrent <= 0 {
		rl.maxConcurrent = defaultMaxConcurrentDownloads
	}
	if rl.timeout <= 0 {
		rl.timeout = defaultDownloadTimeout
	}
	if rl.maxBytes <= 0 {
		rl.maxBytes = defaultMaxSizeMB * 1024 * 1024
	}
	if rl.retries < 0 {
		rl.retries = 0
	}
	return rl
}

// FetchAll 并发下载所有规则源，结果顺序与配置顺序一致
// 单个规则源失败只记录在对应的 SourceText.Err 中
func (rl *RuleLoader) FetchAll(ctx context.Context, kind Kind, sources []config.SourceConfig) []SourceText {
	results := make([]SourceText, len(sources))

	var g errgroup.Group
	g.SetLimit(rl.maxConcurrent)
	for i, src := range sources {
		g.Go(func() error {
			logger.Debugf("[%s] 开始下载 %s: %s", kind.Label(), src.Name, src.URL)
			start := time.Now()
			text, attempts, err := rl.fetchWithRetry(ctx, src.URL)
			if rl.sources != nil {
				rl.sources.UpdateSourceStatus(kind, src.Name, len(text), attempts, time.Since(start), err)
			}
			if err != nil {
				logger.Warnf("[%s] 下载失败 %s: %v", kind.Label(), src.Name, err)
				text = ""
			}
			results[i] = SourceText{Name: src.Name, URL: src.URL, Text: text, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (rl *RuleLoader) fetchWithRetry(ctx context.Context, url string) (string, int, error) {
	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= rl.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", attempts, err
		}
		attempts++
		text, err := rl.fetchOnce(ctx, url)
		if err == nil {
			return text, attempts, nil
		}
		lastErr = err
		// 本地文件和超限内容重试无意义
		if isLocalSource(url) || errors.Is(err, ErrTooLarge) {
			break
		}
	}
	return "", attempts, lastErr
}

func (rl *RuleLoader) fetchOnce(ctx context.Context, url string) (string, error) {
	if isLocalSource(url) {
		return rl.loadLocalFile(strings.TrimPrefix(url, "file://"))
	}
	return rl.downloadRemoteFile(ctx, url)
}

func (rl *RuleLoader) downloadRemoteFile(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, rl.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if rl.userAgent != "" {
		req.Header.Set("User-Agent", rl.userAgent)
	}

	resp, err := rl.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	return readLimited(resp.Body, rl.maxBytes)
}

func (rl *RuleLoader) loadLocalFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return readLimited(file, rl.maxBytes)
}

// readLimited 读取全部内容，超过 limit 字节返回 ErrTooLarge
func readLimited(r io.Reader, limit int64) (string, error) {
	limitedReader := &io.LimitedReader{R: r, N: limit + 1}
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w (%d MB)", ErrTooLarge, limit/(1024*1024))
	}
	return string(data), nil
}

func isLocalSource(url string) bool {
	return strings.HasPrefix(url, "file://") || !strings.HasPrefix(url, "http")
}
