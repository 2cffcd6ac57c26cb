package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"adguardrules/adblock"
	"adguardrules/clock"
	"adguardrules/config"
	"adguardrules/logger"
)

func main() {
	// 定义命令行参数
	configPath := flag.String("c", "config.yaml", "配置文件路径")
	workDir := flag.String("w", "", "工作目录")
	checkDomain := flag.String("check", "", "检查域名在已生成规则中的匹配结果")
	verbose := flag.Bool("v", false, "详细输出")
	help := flag.Bool("h", false, "显示帮助信息")

	flag.Parse()

	if *help {
		printHelp()
		os.Exit(0)
	}

	// 确定工作目录和配置文件路径
	effectiveWorkDir := *workDir
	if effectiveWorkDir == "" {
		var err error
		effectiveWorkDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "错误：无法获取当前工作目录：%v\n", err)
			os.Exit(1)
		}
	}

	// 如果 -c 是相对路径，则与工作目录拼接
	effectiveConfigPath := *configPath
	if !filepath.IsAbs(effectiveConfigPath) {
		effectiveConfigPath = filepath.Join(effectiveWorkDir, effectiveConfigPath)
	}

	cfg, err := config.LoadConfig(effectiveConfigPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg.ResolvePaths(effectiveWorkDir)

	// 立即设置日志级别，确保后续所有日志都遵循配置
	logger.SetLevel(cfg.System.LogLevel)
	if *verbose {
		logger.SetLevel("debug")
	}
	logger.Debugf("Config loaded from %s, log level %s", effectiveConfigPath, logger.GetLevel())

	if *checkDomain != "" {
		os.Exit(runCheck(cfg, *checkDomain))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := adblock.NewManager(cfg, clock.New(&cfg.Clock))
	_, err = manager.Run(ctx)
	if logger.GetLevel() == logger.DebugLevel {
		for _, s := range manager.Sources().GetStatuses() {
			logger.Debugf("[%s] %s: %s, %d 字节, 尝试 %d 次, 耗时 %s %s",
				s.Kind, s.Name, s.Status, s.Bytes, s.Attempts, s.Duration.Round(time.Millisecond), s.LastError)
		}
	}
	if err != nil {
		if errors.Is(err, adblock.ErrAllSourcesFailed) {
			sources := manager.Sources()
			logger.Errorf("规则更新不完整: %v (黑名单失败: %s; 白名单失败: %s)", err,
				strings.Join(sources.FailedSources(adblock.KindBlock), ", "),
				strings.Join(sources.FailedSources(adblock.KindAllow), ", "))
		} else {
			logger.Errorf("规则更新失败: %v", err)
		}
		stop()
		os.Exit(1)
	}
}

// runCheck 检查域名并输出结果，返回退出码
func runCheck(cfg *config.Config, domain string) int {
	checker, err := adblock.LoadChecker(cfg.Output.BlockPath(), cfg.Output.AllowPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误：无法加载规则文件：%v\n", err)
		return 1
	}

	result, rule, err := checker.Check(domain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误：%v\n", err)
		return 1
	}

	switch result {
	case adblock.MatchBlocked:
		fmt.Printf("%s: 拦截 (%s)\n", domain, rule)
	case adblock.MatchAllowed:
		fmt.Printf("%s: 放行 (%s)\n", domain, rule)
	default:
		fmt.Printf("%s: 未命中任何规则\n", domain)
	}
	fmt.Printf("已加载规则 %d 条\n", checker.Count())
	return 0
}

func printHelp() {
	fmt.Print(`AdGuardRules - AdGuard 规则聚合与去重工具

使用方法：
  adguardrules [选项]

选项：
  -c <路径>       配置文件路径（默认：config.yaml，不存在时自动创建）
  -w <路径>       工作目录（默认：当前目录）
  -check <域名>   使用已生成的黑白名单检查域名，不下载规则
  -v              详细输出
  -h              显示此帮助信息

输出：
  Black.txt, White.txt                      去重后的黑白名单
  Ipurities/Black with impurities.txt       黑名单源的原始内容
  Ipurities/White with impurities.txt       白名单源的原始内容
  colorful.txt                              从黑名单源中提取的 @@ 规则（需开启 extract_allow_from_block）

退出码：
  0  成功
  1  配置错误、写入失败，或某类规则源全部下载失败

示例：
  # 更新规则
  adguardrules -c /etc/adguardrules/config.yaml -w /srv/rules

  # 检查域名
  adguardrules -check ads.example.com
`)
}
