package session

import (
	"time"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/cart"
)

// Session 浏览会话(聚合根)
// 设计说明:
// 1. 查询状态、购物车、当前选中的图书、主题都放在一个显式的值里,不依赖任何全局变量
// 2. 所有状态转换都是值接收者方法,返回新的Session,原值不变
// 3. 会话只在TTL内有效,过期后购物车和筛选条件一起丢弃
// 4. 时间戳由调用方传入(now),转换函数本身保持纯函数
type Session struct {
	ID        string          `json:"id"`
	Query     book.QueryState `json:"query"`
	Cart      cart.Cart       `json:"cart"`
	Selected  string          `json:"selected,omitempty"` // 空字符串表示没有打开详情
	Dark      bool            `json:"dark"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// New 创建新会话(工厂方法)
// 初始状态:分区new、不限学院、无关键词、按人气排序、深色主题、空购物车
func New(id string, now time.Time) Session {
	return Session{
		ID:        id,
		Query:     book.DefaultQueryState(),
		Dark:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetSection 切换分区
func (s Session) SetSection(sec book.Section, now time.Time) Session {
	s.Query.Section = sec
	return s.touch(now)
}

// SetHouse 设置学院过滤,空值表示不限
func (s Session) SetHouse(h book.House, now time.Time) Session {
	s.Query.House = h
	return s.touch(now)
}

// ToggleHouse 学院按钮:再次点击已选中的学院会取消过滤
func (s Session) ToggleHouse(h book.House, now time.Time) Session {
	if s.Query.House == h {
		h = ""
	}
	return s.SetHouse(h, now)
}

// SetSearch 设置搜索关键词(原样保存,匹配时才做trim和小写)
func (s Session) SetSearch(q string, now time.Time) Session {
	s.Query.Search = q
	return s.touch(now)
}

// SetSort 设置排序方式
func (s Session) SetSort(k book.SortKey, now time.Time) Session {
	s.Query.Sort = k
	return s.touch(now)
}

// Shuffle "随机"按钮:只递增nonce
func (s Session) Shuffle(now time.Time) Session {
	s.Query.ShuffleNonce++
	return s.touch(now)
}

// ToggleCart 切换图书是否在购物车中
func (s Session) ToggleCart(id string, now time.Time) Session {
	s.Cart = s.Cart.Toggle(id)
	return s.touch(now)
}

// Open 打开图书详情(同一时间最多一本)
// 图书是否存在由应用层检查
func (s Session) Open(id string, now time.Time) Session {
	s.Selected = id
	return s.touch(now)
}

// Close 关闭详情
func (s Session) Close(now time.Time) Session {
	s.Selected = ""
	return s.touch(now)
}

// HasSelection 是否有打开的详情
func (s Session) HasSelection() bool {
	return s.Selected != ""
}

// ToggleTheme 切换深色/浅色主题
func (s Session) ToggleTheme(now time.Time) Session {
	s.Dark = !s.Dark
	return s.touch(now)
}

// InCart 图书是否已加入购物车(按钮文案"Im Korb"/"In den Korb")
func (s Session) InCart(id string) bool {
	return s.Cart.Contains(id)
}

func (s Session) touch(now time.Time) Session {
	s.UpdatedAt = now
	return s
}
