package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldcheck/internal/config"
	"fieldcheck/internal/logger"
)

type rootOptions struct {
	port    int
	devMode bool
	dataDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "fieldcheck",
		Short:         "物业工程查验助手（本地版）",
		Long:          "离线的物业工程查验记录工具：项目、查验问题、整改跟踪，导出整改清单与 PDF 报告。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.IntVar(&opts.port, "port", 0, "服务端口（config.toml 显式配置 port 时以配置为准）")
	flags.BoolVar(&opts.devMode, "dev", false, "开发模式")
	flags.StringVar(&opts.dataDir, "data-dir", "", "数据目录（覆盖配置文件）")

	cmd.AddCommand(newServeCmd(opts), newBackupCmd(opts))
	return cmd
}

// loadConfig 加载配置并应用命令行参数
func (o *rootOptions) loadConfig() (*config.AppConfig, error) {
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		return nil, err
	}
	if o.port > 0 && !info.PortSpecified {
		cfg.Server.Port = o.port
	}
	if o.devMode {
		cfg.Server.DevMode = true
	}
	if o.dataDir != "" {
		cfg.Data.DataDir = o.dataDir
	}
	return cfg, nil
}

func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	return logger.New(cfg.Log.Level, cfg.Log.Format, "fieldcheck")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}
