// Package main 工程确认表格提取工具入口
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/BecaLiang/stg-final/internal/blob"
	"github.com/BecaLiang/stg-final/internal/config"
	"github.com/BecaLiang/stg-final/internal/importer"
	"github.com/BecaLiang/stg-final/internal/pipeline"
	"github.com/BecaLiang/stg-final/internal/server"
	"github.com/BecaLiang/stg-final/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
	}

	rootCmd := &cobra.Command{
		Use:   "stg-final",
		Short: "将工程确认表格转换为规范化 EQ 文档",
		Long: `stg-final 识别三种已知模板（CEA / EQ / starteam）的工程确认
表格，提取元数据、问题表与嵌入图片，输出规范化 JSON 文档；
不认识的文件原样转入离群目录。`,
	}

	rootCmd.AddCommand(newConvertCmd(cfg))
	rootCmd.AddCommand(newImportCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newConvertCmd 批量提取子命令
func newConvertCmd(cfg *config.AppConfig) *cobra.Command {
	opts := cfg.Convert

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "批量提取输入目录下的表格文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.InputDir); err != nil {
				return fmt.Errorf("输入目录不存在: %s", opts.InputDir)
			}
			if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
				return err
			}
			if err := os.MkdirAll(opts.OutlierDir, 0755); err != nil {
				return err
			}

			files, err := pipeline.ListInputFiles(opts.InputDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Printf("目录 %s 下没有表格文件\n", opts.InputDir)
				return nil
			}

			fmt.Printf("输入目录: %s\n", opts.InputDir)
			fmt.Printf("输出目录: %s\n", opts.OutputDir)
			fmt.Printf("离群目录: %s\n", opts.OutlierDir)
			fmt.Printf("待处理文件: %d 个\n\n", len(files))

			p := pipeline.New(opts.OutputDir, opts.OutlierDir)
			summary := p.Run(cmd.Context(), files, opts.Workers)

			fmt.Println("\n=== 处理汇总 ===")
			fmt.Printf("文件总数: %d\n", summary.Total)
			fmt.Printf("识别成功: %d\n", summary.Processed)
			fmt.Printf("离群分流: %d\n", summary.Outliers)
			fmt.Printf("处理失败: %d\n", summary.Failed)
			fmt.Printf("成功率: %.1f%%\n", summary.SuccessRate()*100)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.InputDir, "input-dir", "i", opts.InputDir, "表格文件输入目录")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", opts.OutputDir, "提取产物输出目录")
	cmd.Flags().StringVarP(&opts.OutlierDir, "outlier-dir", "l", opts.OutlierDir, "未命中模板文件的离群目录")
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "文件级并发度（1 为顺序处理）")

	return cmd
}

// newImportCmd JSON→DB 导入子命令
func newImportCmd(cfg *config.AppConfig) *cobra.Command {
	dataDir := cfg.Convert.OutputDir
	st := cfg.Store

	cmd := &cobra.Command{
		Use:   "import",
		Short: "将提取产物导入数据库与对象存储",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := store.New(st.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			uploader, cleanup, err := newUploader(ctx, st)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := importer.New(db, uploader).ImportDir(ctx, dataDir)
			if err != nil {
				return err
			}

			fmt.Println("\n=== 导入汇总 ===")
			fmt.Printf("文档总数: %d\n", report.Total)
			fmt.Printf("新入库: %d\n", report.Imported)
			fmt.Printf("已存在跳过: %d\n", report.Skipped)
			fmt.Printf("导入失败: %d\n", report.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", dataDir, "提取产物目录（convert 的输出目录）")
	cmd.Flags().StringVar(&st.DBPath, "db", st.DBPath, "SQLite 数据库路径")
	cmd.Flags().StringVar(&st.BlobDir, "blob-dir", st.BlobDir, "本地对象存储目录")
	cmd.Flags().StringVar(&st.GCSBucket, "gcs-bucket", st.GCSBucket, "GCS bucket（非空时改用 GCS 上传）")

	return cmd
}

// newUploader 按配置选择对象存储实现
func newUploader(ctx context.Context, st config.StoreConfig) (blob.Uploader, func(), error) {
	if st.GCSBucket != "" {
		u, err := blob.NewGCSUploader(ctx, st.GCSBucket)
		if err != nil {
			return nil, nil, err
		}
		return u, func() { _ = u.Close() }, nil
	}

	u, err := blob.NewLocalUploader(st.BlobDir)
	if err != nil {
		return nil, nil, err
	}
	return u, func() {}, nil
}

// newServeCmd 浏览服务子命令
func newServeCmd(cfg *config.AppConfig) *cobra.Command {
	st := cfg.Store
	srv := cfg.Server

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动已入库文档的只读浏览服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.New(st.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			addr := fmt.Sprintf(":%d", srv.Port)
			fmt.Printf("服务启动中，监听端口 %d ...\n", srv.Port)
			return server.NewServer(db, st.BlobDir, srv.DevMode).Run(addr)
		},
	}

	cmd.Flags().IntVar(&srv.Port, "port", srv.Port, "服务端口")
	cmd.Flags().StringVar(&st.DBPath, "db", st.DBPath, "SQLite 数据库路径")
	cmd.Flags().StringVar(&st.BlobDir, "blob-dir", st.BlobDir, "本地对象存储目录")
	cmd.Flags().BoolVar(&srv.DevMode, "dev", srv.DevMode, "开发模式")

	return cmd
}
