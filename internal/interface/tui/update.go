package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiebiao/wizardshop/internal/domain/book"
)

// Update 处理按键
//
// 按键:
//
//	←/→    切换分区        h  轮换学院(含"不限")
//	s      轮换排序方式    /  搜索
//	x      随机            空格/c  加入或移出购物车
//	↑/↓    移动光标        enter  打开详情   esc  关闭详情
//	t      切换主题        q  退出
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "left":
		m.sess = m.sess.SetSection(stepSection(m.sess.Query.Section, -1), now)
	case "right":
		m.sess = m.sess.SetSection(stepSection(m.sess.Query.Section, 1), now)
	case "h":
		m.sess = m.sess.SetHouse(nextHouse(m.sess.Query.House), now)
	case "s":
		m.sess = m.sess.SetSort(nextSortKey(m.sess.Query.Sort), now)
	case "x":
		m.sess = m.sess.Shuffle(now)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil

	case " ", "c":
		// 详情打开时操作详情里的图书
		target := m.Current()
		if sel := m.Selected(); sel != nil {
			target = sel
		}
		if target == nil {
			return m, nil
		}
		m.sess = m.sess.ToggleCart(target.ID, now)
		return m, nil

	case "enter":
		if b := m.Current(); b != nil {
			m.sess = m.sess.Open(b.ID, now)
		}
		return m, nil
	case "esc":
		m.sess = m.sess.Close(now)
		return m, nil

	case "t":
		m.sess = m.sess.ToggleTheme(now)
		return m, nil

	case "/":
		m.searching = true
		m.prevSearch = m.sess.Query.Search
		m.search.SetValue(m.sess.Query.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// handleSearchKey 搜索输入模式:边输入边过滤,enter确认,esc恢复输入前的关键词
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.sess = m.sess.SetSearch(m.prevSearch, m.now())
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.sess.Query.Search {
		m.sess = m.sess.SetSearch(v, m.now())
		m.refresh()
	}
	return m, cmd
}

func stepSection(cur book.Section, delta int) book.Section {
	sections := book.Sections()
	n := len(sections)
	for i, s := range sections {
		if s == cur {
			return sections[((i+delta)%n+n)%n]
		}
	}
	return book.DefaultSection
}

// nextHouse 不限 → Gryffindor → Slytherin → Ravenclaw → Hufflepuff → 不限
func nextHouse(cur book.House) book.House {
	houses := book.Houses()
	if cur == "" {
		return houses[0]
	}
	for i, h := range houses {
		if h == cur && i+1 < len(houses) {
			return houses[i+1]
		}
	}
	return ""
}

func nextSortKey(cur book.SortKey) book.SortKey {
	keys := book.SortKeys()
	for i, k := range keys {
		if k == cur {
			return keys[(i+1)%len(keys)]
		}
	}
	return book.DefaultSortKey
}
