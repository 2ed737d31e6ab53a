package book

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Catalog 已校验的静态目录
// 设计说明:
// 1. 进程启动时由Repository加载一次,之后只读,可被多个goroutine并发访问
// 2. 保留数据源中的原始顺序(排序键相同时的展示顺序依赖它)
// 3. 数据缺陷(重复ID、稀有度越界)在加载时报错,查询时不再做防御性检查
type Catalog struct {
	items []*Book
	byID  map[string]*Book
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// bookValidator 注册house/section两个自定义校验tag
func bookValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("house", func(fl validator.FieldLevel) bool {
			return House(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
			return Section(fl.Field().String()).IsValid()
		})
		validate = v
	})
	return validate
}

// NewCatalog 校验并创建目录
// 校验规则:
// - id、title、author必填
// - house、section必须是已知枚举值
// - rarity在1-5之间,price>=0
// - id在整个目录内唯一
func NewCatalog(items []*Book) (*Catalog, error) {
	v := bookValidator()

	c := &Catalog{
		items: make([]*Book, 0, len(items)),
		byID:  make(map[string]*Book, len(items)),
	}

	for i, b := range items {
		if b == nil {
			return nil, ErrInvalidCatalog.WithMessage(fmt.Sprintf("目录第%d项为空", i+1))
		}
		if err := v.Struct(b); err != nil {
			return nil, translateValidationError(b, err)
		}
		if _, exists := c.byID[b.ID]; exists {
			return nil, ErrDuplicateID.WithMessage("图书ID重复: " + b.ID)
		}

		// 拷贝一份,调用方之后修改原切片不会影响目录
		cp := *b
		c.items = append(c.items, &cp)
		c.byID[cp.ID] = &cp
	}

	return c, nil
}

// MustCatalog 创建目录,失败时panic(仅用于内置样例数据和测试)
func MustCatalog(items []*Book) *Catalog {
	c, err := NewCatalog(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Items 按原始顺序返回全部图书
// 返回的是新切片,但元素指针共享,调用方不得修改元素
func (c *Catalog) Items() []*Book {
	out := make([]*Book, len(c.items))
	copy(out, c.items)
	return out
}

// Len 目录大小
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get 根据ID查找图书
func (c *Catalog) Get(id string) (*Book, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Query 在目录上执行查询
func (c *Catalog) Query(state QueryState) []*Book {
	return Query(c.items, state)
}

// CountBySection 每个分区的图书数量(用于分区标签上的计数)
func (c *Catalog) CountBySection() map[Section]int {
	counts := make(map[Section]int, len(sectionLabels))
	for _, s := range Sections() {
		counts[s] = 0
	}
	for _, b := range c.items {
		counts[b.Section]++
	}
	return counts
}

// translateValidationError 把validator的字段错误转换为领域错误
func translateValidationError(b *Book, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ErrInvalidCatalog.WithMessage(err.Error())
	}

	fe := verrs[0]
	where := fmt.Sprintf("图书%q字段%s", b.ID, strings.ToLower(fe.Field()))
	switch fe.Field() {
	case "Rarity":
		return ErrInvalidRarity.WithMessage(fmt.Sprintf("%s: 稀有度必须在1-5之间,实际%d", where, b.Rarity))
	case "Price":
		return ErrInvalidPrice.WithMessage(fmt.Sprintf("%s: 价格不能为负数", where))
	case "House":
		return ErrInvalidHouse.WithMessage(fmt.Sprintf("%s: 未知学院%q", where, b.House))
	case "Section":
		return ErrInvalidSection.WithMessage(fmt.Sprintf("%s: 未知分区%q", where, b.Section))
	default:
		return ErrInvalidCatalog.WithMessage(fmt.Sprintf("%s: 校验失败(%s)", where, fe.Tag()))
	}
}
