package dto

// UpdateQueryRequest 修改查询状态请求
// 字段为nil表示不修改;house传空字符串表示不限学院
type UpdateQueryRequest struct {
	Section *string `json:"section" example:"rare"`
	House   *string `json:"house" example:"Slytherin"`
	Search  *string `json:"search" example:"kessel"`
	Sort    *string `json:"sort" example:"price"`
}

// ActionRequest 单个会话操作
type ActionRequest struct {
	Type  string `json:"type" binding:"required" example:"toggle_cart"`
	Value string `json:"value" example:"bk6"`
}

// ApplyActionsRequest 批量会话操作请求
type ApplyActionsRequest struct {
	Actions []ActionRequest `json:"actions" binding:"required,min=1,max=20,dive"`
}
