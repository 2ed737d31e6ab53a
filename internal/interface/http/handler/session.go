package handler

import (
	"github.com/gin-gonic/gin"

	appsession "github.com/xiebiao/wizardshop/internal/application/session"
	"github.com/xiebiao/wizardshop/internal/interface/http/dto"
	"github.com/xiebiao/wizardshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/jwt"
	"github.com/xiebiao/wizardshop/pkg/response"
)

// SessionHandler 浏览会话HTTP处理器
// 设计说明:
// 1. 创建会话是公开接口,其余接口都通过Bearer令牌定位会话(/sessions/me)
// 2. 每个修改接口都返回完整的会话视图,客户端直接用它重新渲染
// 3. 单个按钮对应一个接口,批量操作走/actions
type SessionHandler struct {
	create     *appsession.CreateSessionUseCase
	get        *appsession.GetSessionUseCase
	getCart    *appsession.GetCartUseCase
	update     *appsession.UpdateSessionUseCase
	end        *appsession.EndSessionUseCase
	jwtManager *jwt.Manager
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(
	create *appsession.CreateSessionUseCase,
	get *appsession.GetSessionUseCase,
	getCart *appsession.GetCartUseCase,
	update *appsession.UpdateSessionUseCase,
	end *appsession.EndSessionUseCase,
	jwtManager *jwt.Manager,
) *SessionHandler {
	return &SessionHandler{
		create:     create,
		get:        get,
		getCart:    getCart,
		update:     update,
		end:        end,
		jwtManager: jwtManager,
	}
}

// Create 创建会话
// @Summary      创建浏览会话
// @Description  返回会话令牌和初始视图(new分区、按人气排序、深色主题)
// @Tags         会话
// @Produce      json
// @Success      200 {object} response.Response{data=appsession.CreateSessionResponse}
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	result, err := h.create.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 当前会话视图
// @Summary      当前会话
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Failure      200 {object} response.Response "40100/40101/40102/40103 令牌错误, 40405 会话不存在"
// @Router       /api/v1/sessions/me [get]
func (h *SessionHandler) Get(c *gin.Context) {
	result, err := h.get.Execute(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateQuery 修改查询状态
// @Summary      修改查询状态
// @Description  只修改请求中出现的字段
// @Tags         会话
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateQueryRequest true "查询状态"
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Router       /api/v1/sessions/me/query [patch]
func (h *SessionHandler) UpdateQuery(c *gin.Context) {
	var req dto.UpdateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithMessage("参数格式错误: "+err.Error()))
		return
	}

	var actions []appsession.Action
	if req.Section != nil {
		actions = append(actions, appsession.Action{Type: appsession.ActionSetSection, Value: *req.Section})
	}
	if req.House != nil {
		actions = append(actions, appsession.Action{Type: appsession.ActionSetHouse, Value: *req.House})
	}
	if req.Search != nil {
		actions = append(actions, appsession.Action{Type: appsession.ActionSetSearch, Value: *req.Search})
	}
	if req.Sort != nil {
		actions = append(actions, appsession.Action{Type: appsession.ActionSetSort, Value: *req.Sort})
	}

	h.apply(c, actions...)
}

// Shuffle 随机
// @Summary      随机
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Router       /api/v1/sessions/me/shuffle [post]
func (h *SessionHandler) Shuffle(c *gin.Context) {
	h.apply(c, appsession.Action{Type: appsession.ActionShuffle})
}

// ToggleCart 加入/移出购物车
// @Summary      切换购物车
// @Description  不在购物车中则加入,已在则移出
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Failure      200 {object} response.Response "40402 图书不存在"
// @Router       /api/v1/sessions/me/cart/{id} [post]
func (h *SessionHandler) ToggleCart(c *gin.Context) {
	h.apply(c, appsession.Action{Type: appsession.ActionToggleCart, Value: c.Param("id")})
}

// GetCart 购物车
// @Summary      购物车
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appsession.CartView}
// @Router       /api/v1/sessions/me/cart [get]
func (h *SessionHandler) GetCart(c *gin.Context) {
	result, err := h.getCart.Execute(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// OpenSelection 打开详情
// @Summary      打开图书详情
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Router       /api/v1/sessions/me/selection/{id} [put]
func (h *SessionHandler) OpenSelection(c *gin.Context) {
	h.apply(c, appsession.Action{Type: appsession.ActionOpen, Value: c.Param("id")})
}

// CloseSelection 关闭详情
// @Summary      关闭图书详情
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Router       /api/v1/sessions/me/selection [delete]
func (h *SessionHandler) CloseSelection(c *gin.Context) {
	h.apply(c, appsession.Action{Type: appsession.ActionClose})
}

// ToggleTheme 切换主题
// @Summary      切换深色/浅色主题
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Router       /api/v1/sessions/me/theme [post]
func (h *SessionHandler) ToggleTheme(c *gin.Context) {
	h.apply(c, appsession.Action{Type: appsession.ActionToggleTheme})
}

// ApplyActions 批量操作
// @Summary      批量会话操作
// @Description  按顺序应用,任何一个失败则整体不生效
// @Tags         会话
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ApplyActionsRequest true "操作列表"
// @Success      200 {object} response.Response{data=appsession.SessionView}
// @Router       /api/v1/sessions/me/actions [post]
func (h *SessionHandler) ApplyActions(c *gin.Context) {
	var req dto.ApplyActionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithMessage("参数格式错误: "+err.Error()))
		return
	}

	actions := make([]appsession.Action, len(req.Actions))
	for i, a := range req.Actions {
		actions[i] = appsession.Action{Type: appsession.ActionType(a.Type), Value: a.Value}
	}
	h.apply(c, actions...)
}

// End 结束会话
// @Summary      结束会话
// @Description  令牌加入黑名单,购物车和筛选条件一起丢弃
// @Tags         会话
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/sessions/me [delete]
func (h *SessionHandler) End(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	err := h.end.Execute(c.Request.Context(), appsession.EndSessionRequest{
		SessionID: claims.SessionID,
		TokenID:   claims.ID,
		TokenTTL:  h.jwtManager.Remaining(claims),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *SessionHandler) apply(c *gin.Context, actions ...appsession.Action) {
	result, err := h.update.Execute(c.Request.Context(), appsession.UpdateSessionRequest{
		SessionID: middleware.MustGetSessionID(c),
		Actions:   actions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
