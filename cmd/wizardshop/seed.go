package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/infrastructure/config"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/file"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/wizardshop/internal/infrastructure/persistence/mysql"
)

type seedFlags struct {
	from   string
	file   string
	dryRun bool
}

func newSeedCmd(root *rootFlags) *cobra.Command {
	flags := &seedFlags{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "把内置样例或YAML目录导入MySQL",
		Long: `把目录整体写入MySQL的books表(替换原有内容)。
写入前按启动时的规则校验目录,校验失败不会修改数据库。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, logger, err := bootstrap(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			// 1. 读取并校验来源目录
			src, err := seedSource(flags)
			if err != nil {
				return err
			}
			catalog, err := book.LoadCatalog(ctx, src)
			if err != nil {
				return fmt.Errorf("目录校验失败: %w", err)
			}
			logger.Info("目录校验通过", zap.String("from", flags.from), zap.Int("books", catalog.Len()))

			if flags.dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "校验通过,共%d本(dry-run,未写入)\n", catalog.Len())
				return nil
			}

			// 2. 写入MySQL
			db, err := mysql.NewDB(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			var writer book.Writer = mysql.NewBookRepository(db, mysql.NewTxManager(db))
			if err := writer.ReplaceAll(ctx, catalog.Items()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "已导入%d本图书到%s\n", catalog.Len(), cfg.Database.DBName)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", config.CatalogSourceStatic, "来源(static、file)")
	cmd.Flags().StringVar(&flags.file, "file", "config/catalog.yaml", "--from file时的YAML文件")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "只校验不写入")

	return cmd
}

func seedSource(flags *seedFlags) (book.Repository, error) {
	switch flags.from {
	case config.CatalogSourceStatic:
		return memory.NewCatalogRepository(), nil
	case config.CatalogSourceFile:
		return file.NewCatalogRepository(flags.file), nil
	default:
		return nil, fmt.Errorf("不支持的来源: %q(可选static、file)", flags.from)
	}
}
