package tui

import (
	"fmt"
	"strings"

	"github.com/xiebiao/wizardshop/internal/domain/book"
)

// NoResultsText 没有匹配结果时的提示
const NoResultsText = "Keine Bücher gefunden. Versuche einen anderen Suchbegriff oder eine andere Abteilung."

// View 渲染界面
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := themeFor(m.sess.Dark)
	q := m.sess.Query

	var b strings.Builder

	// 1. 标题和购物车数量
	fmt.Fprintf(&b, "%s  %s\n\n",
		th.title.Render("Zauberbuchhandlung"),
		th.muted.Render(fmt.Sprintf("Korb: %d", m.sess.Cart.Len())),
	)

	// 2. 分区标签
	tabs := make([]string, 0, len(book.Sections()))
	for _, s := range book.Sections() {
		if s == q.Section {
			tabs = append(tabs, th.tabOn.Render(s.Label()))
		} else {
			tabs = append(tabs, th.tab.Render(s.Label()))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	// 3. 过滤条件
	house := "alle Häuser"
	if q.House != "" {
		house = string(q.House)
	}
	b.WriteString(th.muted.Render(fmt.Sprintf("Haus: %s · Sortierung: %s", house, q.Sort)))
	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.search.View())
	} else if q.Search != "" {
		b.WriteString(th.muted.Render("Suche: " + q.Search))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(th.errorMsg.Render(m.err.Error()))
		b.WriteString("\n")
	}

	// 4. 结果列表
	if len(m.results) == 0 {
		b.WriteString(th.empty.Render(NoResultsText))
		b.WriteString("\n")
	}
	for i, bk := range m.results {
		marker := "  "
		title := bk.Title
		if i == m.cursor {
			marker = th.cursor.Render("> ")
			title = th.cursor.Render(title)
		}
		cart := ""
		if m.sess.InCart(bk.ID) {
			cart = " " + th.inCart.Render("✓ Im Korb")
		}
		fmt.Fprintf(&b, "%s%s  %s  %s%s\n",
			marker,
			title,
			th.stars.Render(bk.Stars()),
			th.price.Render(formatPrice(bk.Price)),
			cart,
		)
		fmt.Fprintf(&b, "    %s\n", th.muted.Render(fmt.Sprintf("%s · %s · %d", bk.Author, bk.House, bk.Year)))
	}

	// 5. 详情
	if sel := m.Selected(); sel != nil {
		b.WriteString(m.renderDetail(th, sel))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(th.muted.Render("←/→ Abteilung · h Haus · s Sortierung · / Suche · x Zufall · ␣ Korb · enter Details · t Thema · q Ende"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderDetail(th theme, bk *book.Book) string {
	button := "In den Korb"
	if m.sess.InCart(bk.ID) {
		button = "Im Korb"
	}
	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s  %s  [%s]",
		th.title.Render(bk.Title),
		th.muted.Render(fmt.Sprintf("%s · %s · %s · %d", bk.Author, bk.House, bk.Section.Label(), bk.Year)),
		bk.Blurb,
		th.stars.Render(bk.Stars()),
		th.price.Render(formatPrice(bk.Price)),
		button,
	)
	style := th.modal
	if m.width > 8 {
		style = style.Width(m.width - 4)
	}
	return style.Render(body)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f G", p)
}
