package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/wizardshop/internal/application/book"
	"github.com/xiebiao/wizardshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/response"
)

// BookHandler 目录HTTP处理器
// 设计说明:
// 1. Handler只负责HTTP相关的事情:解析请求、调用应用层、返回响应
// 2. 目录接口都是公开接口,不需要会话令牌
type BookHandler struct {
	listBooks  *appbook.ListBooksUseCase
	getBook    *appbook.GetBookUseCase
	listFacets *appbook.ListFacetsUseCase
}

// NewBookHandler 创建目录处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	listFacets *appbook.ListFacetsUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:  listBooks,
		getBook:    getBook,
		listFacets: listFacets,
	}
}

// ListBooks 查询目录
// @Summary      查询目录
// @Description  按分区、学院、关键词过滤并排序,返回完整结果(不分页)
// @Tags         目录
// @Produce      json
// @Param        section query string false "分区" Enums(new, rare, school, restricted)
// @Param        house   query string false "学院" Enums(Gryffindor, Slytherin, Ravenclaw, Hufflepuff)
// @Param        q       query string false "关键词(书名、作者、简介)"
// @Param        sort    query string false "排序方式" Enums(popular, price, year, rarity)
// @Param        nonce   query int    false "随机序号"
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Failure      200 {object} response.Response "40902/40903/40904 参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	// 1. 参数绑定
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithMessage("参数格式错误: "+err.Error()))
		return
	}

	// 2. 调用应用层用例
	result, err := h.listBooks.Execute(c.Request.Context(), appbook.QueryParams{
		Section: req.Section,
		House:   req.House,
		Search:  req.Search,
		Sort:    req.Sort,
		Nonce:   req.Nonce,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         目录
// @Produce      json
// @Param        id path string true "图书ID" example(bk6)
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      200 {object} response.Response "40402 图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	result, err := h.getBook.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListFacets 过滤条件元数据
// @Summary      过滤条件
// @Description  分区(含图书数量)、学院、排序方式
// @Tags         目录
// @Produce      json
// @Success      200 {object} response.Response{data=appbook.FacetsResponse}
// @Router       /api/v1/facets [get]
func (h *BookHandler) ListFacets(c *gin.Context) {
	response.Success(c, h.listFacets.Execute(c.Request.Context()))
}
