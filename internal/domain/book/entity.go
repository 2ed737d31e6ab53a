package book

// Book 图书实体(目录条目)
// DDD设计说明:
// 1. 目录在进程启动时加载,加载后不可变(没有创建/更新/删除的生命周期)
// 2. ID是业务唯一标识,由NewCatalog保证整个目录内唯一
// 3. Rarity既用于展示星级,也作为"人气"排序的依据
// 4. Price是抽象货币单位,不涉及真实的计价、汇率、税费
type Book struct {
	ID      string  `json:"id" yaml:"id" validate:"required"`
	Title   string  `json:"title" yaml:"title" validate:"required"`
	Author  string  `json:"author" yaml:"author" validate:"required"`
	House   House   `json:"house" yaml:"house" validate:"house"`
	Section Section `json:"section" yaml:"section" validate:"section"`
	Year    int     `json:"year" yaml:"year"`
	Blurb   string  `json:"blurb" yaml:"blurb"`
	Rarity  int     `json:"rarity" yaml:"rarity" validate:"min=1,max=5"` // 1..5
	Price   float64 `json:"price" yaml:"price" validate:"gte=0"`
}

// House 学院(四个固定取值之一)
type House string

const (
	HouseGryffindor House = "Gryffindor"
	HouseSlytherin  House = "Slytherin"
	HouseRavenclaw  House = "Ravenclaw"
	HouseHufflepuff House = "Hufflepuff"
)

// Houses 返回全部学院(展示顺序固定)
func Houses() []House {
	return []House{HouseGryffindor, HouseSlytherin, HouseRavenclaw, HouseHufflepuff}
}

// IsValid 是否为已知学院
// 注意:区分大小写,"gryffindor"不是合法取值
func (h House) IsValid() bool {
	switch h {
	case HouseGryffindor, HouseSlytherin, HouseRavenclaw, HouseHufflepuff:
		return true
	}
	return false
}

// ParseHouse 解析学院参数
// 空字符串表示"不限学院",返回("", nil)
func ParseHouse(s string) (House, error) {
	if s == "" {
		return "", nil
	}
	h := House(s)
	if !h.IsValid() {
		return "", ErrInvalidHouse
	}
	return h, nil
}

// Section 目录分区(四个固定取值之一)
type Section string

const (
	SectionNew        Section = "new"
	SectionRare       Section = "rare"
	SectionSchool     Section = "school"
	SectionRestricted Section = "restricted"
)

// DefaultSection 会话开始时选中的分区
const DefaultSection = SectionNew

var sectionLabels = map[Section]string{
	SectionNew:        "Neuheiten",
	SectionRare:       "Raritäten",
	SectionSchool:     "Schulbücher",
	SectionRestricted: "Verbotene Abteilung",
}

// Sections 返回全部分区(展示顺序固定)
func Sections() []Section {
	return []Section{SectionNew, SectionRare, SectionSchool, SectionRestricted}
}

// IsValid 是否为已知分区
func (s Section) IsValid() bool {
	_, ok := sectionLabels[s]
	return ok
}

// Label 分区展示名称
func (s Section) Label() string {
	return sectionLabels[s]
}

// ParseSection 解析分区参数
// 分区是必选的:空字符串回退到默认分区
func ParseSection(s string) (Section, error) {
	if s == "" {
		return DefaultSection, nil
	}
	sec := Section(s)
	if !sec.IsValid() {
		return "", ErrInvalidSection
	}
	return sec, nil
}

// Stars 稀有度星级展示,例如 rarity=3 → "★★★☆☆"
func (b *Book) Stars() string {
	const total = 5
	stars := make([]rune, 0, total)
	for i := 0; i < total; i++ {
		if i < b.Rarity {
			stars = append(stars, '★')
		} else {
			stars = append(stars, '☆')
		}
	}
	return string(stars)
}
