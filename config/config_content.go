package config

// DefaultConfigContent 默认配置文件内容，包含详细说明
const DefaultConfigContent = `# AdguardHome 规则合并配置文件

# 规则源配置
# name 为显示名称（写入杂质文件和日志），url 支持 http(s)://、file:// 或本地路径
sources:
  # 黑名单源
  block:
    - name: "AdGuard DNS filter"
      url: "https://adguardteam.github.io/HostlistsRegistry/assets/filter_1.txt"
    - name: "秋风的规则"
      url: "https://raw.githubusercontent.com/TG-Twilight/AWAvenue-Ads-Rule/main/AWAvenue-Ads-Rule.txt"
    - name: "GitHub加速"
      url: "https://raw.hellogithub.com/hosts"
    - name: "酷安广告规则"
      url: "https://raw.githubusercontent.com/Kuroba-Sayuki/FuLing-AdRules/Master/OtherRules/CoolapkRules.txt"
    - name: "广告规则"
      url: "https://raw.githubusercontent.com/huantian233/HT-AD/main/AD.txt"
    - name: "不是DD啊"
      url: "https://raw.githubusercontent.com/afwfv/DD-AD/main/rule/DD-AD.txt"
    - name: "大萌主"
      url: "https://raw.githubusercontent.com/damengzhu/banad/main/jiekouAD.txt"
    - name: "逆向涉猎"
      url: "https://raw.githubusercontent.com/790953214/qy-Ads-Rule/main/black.txt"
    - name: "下个ID见"
      url: "https://raw.githubusercontent.com/2Gardon/SM-Ad-FuckU-hosts/master/SMAdHosts"
    - name: "那个谁520"
      url: "https://raw.githubusercontent.com/qq5460168/666/master/rules.txt"
    - name: "1hosts"
      url: "https://o0.pages.dev/Lite/adblock.txt"
    - name: "茯苓的广告规则"
      url: "https://raw.githubusercontent.com/Kuroba-Sayuki/FuLing-AdRules/Master/FuLingRules/FuLingBlockList.txt"
    - name: "极客爱好者"
      url: "https://www.kbsml.com/wp-content/uploads/adblock/adguard/adg-kall-dns.txt"
    - name: "立场不定的"
      url: "https://raw.githubusercontent.com/Menghuibanxian/AdguardHome/refs/heads/main/Uncertain%20position.txt"

  # 白名单源
  allow:
    - name: "茯苓允许列表"
      url: "https://raw.githubusercontent.com/Kuroba-Sayuki/FuLing-AdRules/Master/FuLingRules/FuLingAllowList.txt"
    - name: "666"
      url: "https://raw.githubusercontent.com/qq5460168/666/master/allow.txt"
    - name: "个人自用白名单"
      url: "https://hub.gitmirror.com/https://raw.githubusercontent.com/qq5460168/dangchu/main/white.txt"
    - name: "冷漠白名单"
      url: "https://file-git.trli.club/file-hosts/allow/Domains"

  # 是否将黑名单源中的 @@ 白名单规则一并提取到白名单，默认 false
  extract_allow_from_block: false

# 下载配置
fetch:
  # 单次下载超时时间（秒），默认 30
  timeout_seconds: 30
  # 同时下载的规则源数量，默认 5
  max_concurrent: 5
  # 下载失败后的重试次数，默认 1，设置为 -1 表示不重试
  retries: 1
  # 单个规则源的最大体积（MB），默认 50
  max_size_mb: 50
  # 请求头 User-Agent
  user_agent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

# 时间配置（用于规则文件头部的更新时间）
clock:
  # 网络时间接口，按顺序尝试，全部失败时使用本地时间
  time_apis:
    - "http://worldtimeapi.org/api/timezone/Asia/Shanghai"
    - "http://api.m.taobao.com/rest/api3.do?api=mtop.common.getTimestamp"
    - "http://quan.suning.com/getSysTime.do"
  # 单个时间接口的超时时间（秒），默认 10
  timeout_seconds: 10
  # 输出时区相对 UTC 的小时偏移，默认 8（北京时间）
  utc_offset_hours: 8

# 输出配置
output:
  # 输出根目录
  dir: "."
  # 最终黑名单文件
  block_file: "Black.txt"
  # 最终白名单文件
  allow_file: "White.txt"
  # 杂质文件目录（相对输出根目录）
  impurities_dir: "Ipurities"
  block_impurities_file: "Black with impurities.txt"
  allow_impurities_file: "White with impurities.txt"
  # 开启 extract_allow_from_block 时，从黑名单源中提取的 @@ 规则单独写入此文件
  extracted_file: "colorful.txt"
  # 某类规则源全部下载失败时，保留上一次生成的规则文件而不覆盖，默认 true
  # 杂质文件总是会被重写
  keep_on_total_failure: true

# 写入规则文件头部的作者信息
author:
  name: "Menghuibanxian"
  homepage: "https://github.com/Menghuibanxian/AdguardHome"

# 系统配置
system:
  # 日志级别：debug, info, warn, error，默认 info
  log_level: "info"
`
