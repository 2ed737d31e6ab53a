package cart

import (
	"encoding/json"
	"slices"
)

// Cart 购物车(值对象)
// 教学要点:
// 1. 集合语义:同一本书最多出现一次,没有数量概念
// 2. 保留加入顺序,展示时按加入先后排列
// 3. 不可变:Toggle返回新的Cart,原值不受影响,便于在会话转换中当作普通值传递
type Cart struct {
	ids []string
}

// New 创建购物车,重复的ID只保留第一次出现的位置
func New(ids ...string) Cart {
	var c Cart
	for _, id := range ids {
		if !c.Contains(id) {
			c.ids = append(c.ids, id)
		}
	}
	return c
}

// Toggle 切换某本书是否在购物车中
// 已存在则移除,不存在则追加到末尾
// 对同一ID连续调用两次,集合内容恢复原状
func (c Cart) Toggle(id string) Cart {
	if i := slices.Index(c.ids, id); i >= 0 {
		return Cart{ids: slices.Delete(slices.Clone(c.ids), i, i+1)}
	}
	return Cart{ids: append(slices.Clone(c.ids), id)}
}

// Contains 是否包含指定图书
func (c Cart) Contains(id string) bool {
	return slices.Contains(c.ids, id)
}

// IDs 按加入顺序返回图书ID(拷贝)
func (c Cart) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Len 购物车中的图书数量(页头角标)
func (c Cart) Len() int {
	return len(c.ids)
}

// IsEmpty 购物车是否为空
func (c Cart) IsEmpty() bool {
	return len(c.ids) == 0
}

// MarshalJSON 序列化为ID数组(会话存储使用)
func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.IDs())
}

// UnmarshalJSON 从ID数组恢复,null视为空购物车
func (c *Cart) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*c = New(ids...)
	return nil
}
