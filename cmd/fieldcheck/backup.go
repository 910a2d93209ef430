package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldcheck/internal/config"
	"fieldcheck/internal/inspection"
	"fieldcheck/internal/server"
	"fieldcheck/internal/store"
)

func newBackupCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "备份导出与导入",
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "导出全量数据备份（JSON）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(opts, func(cfg *config.AppConfig, svc *inspection.Service) error {
				path := out
				if path == "" {
					d, err := svc.ExportBackup()
					if err != nil {
						return err
					}
					path = filepath.Join(config.ResolveDataDir(cfg), "backups", d.Filename)
				}
				if err := svc.WriteBackup(path); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "输出文件（默认写入数据目录 backups/）")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "导入备份，整体替换现有数据",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withService(opts, func(_ *config.AppConfig, svc *inspection.Service) error {
				res, err := svc.ImportBackup(data, filepath.Base(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "已导入 %d 个项目、%d 条问题、%d 个模板\n", res.Projects, res.Issues, res.Templates)
				if res.SavedAs != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "导入前数据已备份到 %s\n", res.SavedAs)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}

func withService(opts *rootOptions, fn func(*config.AppConfig, *inspection.Service) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, st, err := server.NewService(cfg, log.WithOptions(zap.IncreaseLevel(zap.WarnLevel)))
	if err != nil {
		return err
	}
	defer func(st *store.Store) { _ = st.Close() }(st)
	return fn(cfg, svc)
}
