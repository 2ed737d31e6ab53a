package dto

// ListBooksRequest 目录查询请求(查询串)
// 枚举取值交给领域层解析,错误码更具体(40902/40903/40904/40905)
type ListBooksRequest struct {
	Section string `form:"section" example:"new"`
	House   string `form:"house" example:"Ravenclaw"`
	Search  string `form:"q" example:"zauber"`
	Sort    string `form:"sort" example:"price"`
	Nonce   uint64 `form:"nonce" example:"0"`
}
