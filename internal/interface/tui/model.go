package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/session"
)

// Model 终端浏览器的Bubbletea状态
//
// 设计说明:
// 1. 会话状态全部放在session.Session里,按键只调用它的转换方法,和HTTP接口走同一套规则
// 2. 每次转换后重新调用book.Service查询,results永远是当前查询状态的结果
// 3. 终端里只有一个用户,会话不落库,退出即丢弃
type Model struct {
	ctx     context.Context
	books   book.Service
	sess    session.Session
	results []*book.Book
	cursor  int

	search     textinput.Model
	searching  bool
	prevSearch string // 按esc时恢复

	width    int
	err      error
	quitting bool
	now      func() time.Time
}

// NewModel 创建终端浏览器
func NewModel(ctx context.Context, books book.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "Titel, Autor oder Beschreibung"
	ti.Prompt = "/ "
	ti.CharLimit = book.MaxSearchLength

	m := Model{
		ctx:    ctx,
		books:  books,
		sess:   session.New("terminal", time.Now()),
		search: ti,
		now:    time.Now,
	}
	m.refresh()
	return m
}

// Init 不需要启动命令
func (m Model) Init() tea.Cmd {
	return nil
}

// Session 当前会话状态
func (m Model) Session() session.Session {
	return m.sess
}

// Results 当前结果
func (m Model) Results() []*book.Book {
	return m.results
}

// Current 光标所在的图书,没有结果时返回nil
func (m Model) Current() *book.Book {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return nil
	}
	return m.results[m.cursor]
}

// Selected 打开详情的图书
func (m Model) Selected() *book.Book {
	if !m.sess.HasSelection() {
		return nil
	}
	b, err := m.books.GetBook(m.ctx, m.sess.Selected)
	if err != nil {
		return nil
	}
	return b
}

// refresh 按当前查询状态重新取结果,并把光标限制在结果范围内
func (m *Model) refresh() {
	results, err := m.books.ListBooks(m.ctx, m.sess.Query)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.results = results
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
