package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/interface/tui"
)

func newBrowseCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "在终端里浏览目录",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// 终端被界面占用,加载目录时不输出日志
			svc, cleanup, err := loadBookService(ctx, root, zap.NewNop())
			if err != nil {
				return err
			}
			defer cleanup()

			p := tea.NewProgram(tui.NewModel(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
}
