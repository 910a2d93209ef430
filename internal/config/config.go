package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"fieldcheck/internal/report"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir    string `toml:"data_dir"`
	StorageKey string `toml:"storage_key"`
}

// ReportConfig 导出与报告配置
type ReportConfig struct {
	Locale   string `toml:"locale"`    // zh | en
	FontPath string `toml:"font_path"` // 含中文字形的 TTF，报告中文显示需要
	Timezone string `toml:"timezone"`  // IANA 时区，空为本地时区
	// Layout 未设置的项使用默认排版
	Layout report.Layout `toml:"layout"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json | console
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:    "data",
			StorageKey: "inspection_app_v1",
		},
		Report: ReportConfig{
			Locale: "zh",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrDot() string {
	dir, err := GetExeDir()
	if err != nil {
		return "."
	}
	return dir
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadFromDir(exeDirOrDot())
}

// LoadFromDir 读取 dir 下的 config.toml 与 .env；文件不存在时使用默认配置。
// 环境变量优先级最高。
func LoadFromDir(dir string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: filepath.Join(dir, "config.toml")}
	cfg := DefaultConfig()

	data, err := os.ReadFile(info.Path)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("解析 %s 失败: %w", info.Path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, info, err
	}

	// .env 不覆盖已存在的环境变量
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, info, fmt.Errorf("读取 .env 失败: %w", err)
	}
	if err := applyEnv(cfg, &info); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

func applyEnv(cfg *AppConfig, info *LoadConfigInfo) error {
	if v := os.Getenv("FIELDCHECK_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
	if v := os.Getenv("FIELDCHECK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("FIELDCHECK_PORT 无效: %q", v)
		}
		cfg.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv("FIELDCHECK_FONT_PATH"); v != "" {
		cfg.Report.FontPath = v
	}
	if v := os.Getenv("FIELDCHECK_LOCALE"); v != "" {
		cfg.Report.Locale = strings.ToLower(v)
	}
	if v := os.Getenv("FIELDCHECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Location 报告与导出使用的时区
func (c ReportConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("无效的时区 %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ResolveDataDir 相对路径按可执行文件目录解析
func ResolveDataDir(cfg *AppConfig) string {
	if filepath.IsAbs(cfg.Data.DataDir) {
		return cfg.Data.DataDir
	}
	return filepath.Join(exeDirOrDot(), cfg.Data.DataDir)
}

// EnsureDataDir 创建数据目录及 backups 子目录
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := ResolveDataDir(cfg)
	for _, dir := range []string{dataDir, BackupDir(cfg)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return dataDir, nil
}

// GetDataPath 数据目录下的文件路径
func GetDataPath(cfg *AppConfig, subdir, filename string) string {
	return filepath.Join(ResolveDataDir(cfg), subdir, filename)
}

// DBPath SQLite 数据库文件路径
func DBPath(cfg *AppConfig) string {
	return GetDataPath(cfg, "", "fieldcheck.db")
}

// BackupDir 导入前自动备份的存放目录
func BackupDir(cfg *AppConfig) string {
	return GetDataPath(cfg, "backups", "")
}
