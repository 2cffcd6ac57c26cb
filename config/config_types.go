package config

// Config 主配置结构
type Config struct {
	Sources SourcesConfig `yaml:"sources" json:"sources"`
	Fetch   FetchConfig   `yaml:"fetch" json:"fetch"`
	Clock   ClockConfig   `yaml:"clock" json:"clock"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Author  AuthorConfig  `yaml:"author" json:"author"`
	System  SystemConfig  `yaml:"system" json:"system"`
}

// SourceConfig 单个规则源
type SourceConfig struct {
	Name string `yaml:"name" json:"name"`
	// 支持 http(s)://、file:// 以及本地路径
	URL string `yaml:"url" json:"url"`
}

// SourcesConfig 黑白名单规则源，顺序即杂质文件中的输出顺序
type SourcesConfig struct {
	Block []SourceConfig `yaml:"block" json:"block"`
	Allow []SourceConfig `yaml:"allow" json:"allow"`
	// 将黑名单源中的 @@ 规则一并提取到白名单
	ExtractAllowFromBlock bool `yaml:"extract_allow_from_block" json:"extract_allow_from_block"`
}

// FetchConfig 下载配置
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds"`
	MaxConcurrent  int    `yaml:"max_concurrent,omitempty" json:"max_concurrent"`
	Retries        int    `yaml:"retries,omitempty" json:"retries"`
	UserAgent      string `yaml:"user_agent,omitempty" json:"user_agent"`
	MaxSizeMB      int    `yaml:"max_size_mb,omitempty" json:"max_size_mb"`
}

// ClockConfig 网络时间配置
type ClockConfig struct {
	// 按顺序尝试，全部失败时使用本地时间
	TimeAPIs       []string `yaml:"time_apis,omitempty" json:"time_apis"`
	TimeoutSeconds int      `yaml:"timeout_seconds,omitempty" json:"timeout_seconds"`
	UTCOffsetHours int      `yaml:"utc_offset_hours" json:"utc_offset_hours"`
}

// OutputConfig 输出文件配置
type OutputConfig struct {
	Dir                 string `yaml:"dir,omitempty" json:"dir"`
	BlockFile           string `yaml:"block_file,omitempty" json:"block_file"`
	AllowFile           string `yaml:"allow_file,omitempty" json:"allow_file"`
	ImpuritiesDir       string `yaml:"impurities_dir,omitempty" json:"impurities_dir"`
	BlockImpuritiesFile string `yaml:"block_impurities_file,omitempty" json:"block_impurities_file"`
	AllowImpuritiesFile string `yaml:"allow_impurities_file,omitempty" json:"allow_impurities_file"`
	ExtractedFile       string `yaml:"extracted_file,omitempty" json:"extracted_file"`
	// 某类规则源全部下载失败时保留上一次生成的规则文件
	KeepOnTotalFailure bool `yaml:"keep_on_total_failure" json:"keep_on_total_failure"`
}

// AuthorConfig 写入规则文件头部的作者信息
type AuthorConfig struct {
	Name     string `yaml:"name,omitempty" json:"name"`
	Homepage string `yaml:"homepage,omitempty" json:"homepage"`
}

// SystemConfig 系统配置
type SystemConfig struct {
	LogLevel string `yaml:"log_level,omitempty" json:"log_level"`
}
