package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// theme 一套配色,深色和浅色各一套
type theme struct {
	title    lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	muted    lipgloss.Style
	cursor   lipgloss.Style
	stars    lipgloss.Style
	inCart   lipgloss.Style
	price    lipgloss.Style
	empty    lipgloss.Style
	modal    lipgloss.Style
	errorMsg lipgloss.Style
	header   lipgloss.Style
	border   lipgloss.Style
	cell     lipgloss.Style
}

var darkTheme = theme{
	title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	tab:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	tabOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("220")).Padding(0, 1),
	muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	stars:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	inCart:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	price:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	empty:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")).MarginTop(1),
	modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("220")).Padding(1, 2).MarginTop(1),
	errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Padding(0, 1),
	border:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	cell:     lipgloss.NewStyle().Padding(0, 1),
}

var lightTheme = theme{
	title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("94")),
	tab:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1),
	tabOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("94")).Padding(0, 1),
	muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("52")),
	stars:    lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	inCart:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	price:    lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	empty:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("242")).MarginTop(1),
	modal:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("94")).Padding(1, 2).MarginTop(1),
	errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("94")).Padding(0, 1),
	border:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	cell:     lipgloss.NewStyle().Padding(0, 1),
}

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

// NewResultTable 目录结果表格,query命令的表格输出和浏览界面使用同一套配色
func NewResultTable(dark bool) *table.Table {
	th := themeFor(dark)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(th.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return th.header
			}
			return th.cell
		})
}
