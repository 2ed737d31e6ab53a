package main

import (
	"github.com/spf13/cobra"
)

// rootFlags 所有子命令共享的参数
type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "wizardshop",
		Short:         "Zauberbuchhandlung:魔法书店目录服务",
		Long:          "魔法书店目录服务。提供HTTP/gRPC查询接口、浏览会话、终端浏览器和目录导入工具。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "配置文件路径(默认查找./config/config.yaml)")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newQueryCmd(flags))
	cmd.AddCommand(newSeedCmd(flags))
	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newEventsCmd(flags))

	return cmd
}
