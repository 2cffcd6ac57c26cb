package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// CreateDefaultConfig 创建默认配置文件
func CreateDefaultConfig(filePath string) error {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, []byte(DefaultConfigContent), 0644)
}

// LoadConfig 从 YAML 文件加载配置，文件不存在时自动创建默认配置
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := CreateDefaultConfig(filePath); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		data = []byte(DefaultConfigContent)
	}

	return Parse(data)
}

// Parse 解析配置内容，设置默认值并校验
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaultValues(&cfg, data)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验规则源配置
func (c *Config) Validate() error {
	if len(c.Sources.Block) == 0 {
		return fmt.Errorf("%w: no block sources configured", ErrInvalidConfig)
	}
	if len(c.Sources.Allow) == 0 {
		return fmt.Errorf("%w: no allow sources configured", ErrInvalidConfig)
	}
	if err := validateSources("block", c.Sources.Block); err != nil {
		return err
	}
	return validateSources("allow", c.Sources.Allow)
}

func validateSources(kind string, sources []SourceConfig) error {
	seen := make(map[string]struct{}, len(sources))
	for i, s := range sources {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: %s source #%d has no name", ErrInvalidConfig, kind, i+1)
		}
		if strings.TrimSpace(s.URL) == "" {
			return fmt.Errorf("%w: %s source %q has no url", ErrInvalidConfig, kind, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate %s source name %q", ErrInvalidConfig, kind, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// BlockPath 最终黑名单文件路径
func (o *OutputConfig) BlockPath() string {
	return filepath.Join(o.Dir, o.BlockFile)
}

// AllowPath 最终白名单文件路径
func (o *OutputConfig) AllowPath() string {
	return filepath.Join(o.Dir, o.AllowFile)
}

// BlockImpuritiesPath 黑名单杂质文件路径
func (o *OutputConfig) BlockImpuritiesPath() string {
	return filepath.Join(o.Dir, o.ImpuritiesDir, o.BlockImpuritiesFile)
}

// AllowImpuritiesPath 白名单杂质文件路径
func (o *OutputConfig) AllowImpuritiesPath() string {
	return filepath.Join(o.Dir, o.ImpuritiesDir, o.AllowImpuritiesFile)
}

// ExtractedPath 从黑名单源提取的放行规则文件路径
func (o *OutputConfig) ExtractedPath() string {
	return filepath.Join(o.Dir, o.ExtractedFile)
}

// ResolvePaths 将相对的输出目录解析到工作目录下
func (c *Config) ResolvePaths(workDir string) {
	if workDir != "" && !filepath.IsAbs(c.Output.Dir) {
		c.Output.Dir = filepath.Join(workDir, c.Output.Dir)
	}
}
