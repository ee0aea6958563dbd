package storefront

import (
	"strings"

	"github.com/savagerise/storefront/internal/apiclient"
	"github.com/savagerise/storefront/internal/catalog"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// WishlistRequest 心愿单请求
type WishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// ReviewRequest 新增评价请求
type ReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

// ReviewListQuery 评价列表查询参数
type ReviewListQuery struct {
	Rating   int  `form:"rating"`
	SortBest bool `form:"sort_best"`
	Skip     int  `form:"skip"`
	Limit    int  `form:"limit"`
}

// GetWishlist 心愿单列表
func (h *Handler) GetWishlist(c *gin.Context) {
	_, token, ok := requireToken(c)
	if !ok {
		return
	}
	var page catalog.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page = page.Normalize()
	items, err := h.API.ListWishlist(c.Request.Context(), token, page.Skip, page.Limit)
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlist 加入心愿单
func (h *Handler) AddWishlist(c *gin.Context) {
	_, token, ok := requireToken(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.API.AddToWishlist(c.Request.Context(), token, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, item)
}

// RemoveWishlist 移出心愿单
func (h *Handler) RemoveWishlist(c *gin.Context) {
	_, token, ok := requireToken(c)
	if !ok {
		return
	}
	if err := h.API.RemoveFromWishlist(c.Request.Context(), token, c.Param("product_id")); err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// GetReviews 商品评价列表
func (h *Handler) GetReviews(c *gin.Context) {
	var query ReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page := catalog.Page{Skip: query.Skip, Limit: query.Limit}.Normalize()
	reviews, err := h.API.ListReviews(c.Request.Context(), c.Param("id"), apiclient.ReviewQuery{
		Rating:   query.Rating,
		SortBest: query.SortBest,
		Skip:     page.Skip,
		Limit:    page.Limit,
	})
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": reviews})
}

// GetReviewStats 商品评价统计
func (h *Handler) GetReviewStats(c *gin.Context) {
	stats, err := h.API.ReviewStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, stats)
}

// AddReview 新增评价
func (h *Handler) AddReview(c *gin.Context) {
	sess, token, ok := requireToken(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	userID := ""
	if user := sess.Auth.User(); user != nil {
		userID = user.ID
	}
	review, err := h.API.AddReview(c.Request.Context(), token, c.Param("id"), models.ReviewCreate{
		Rating:  req.Rating,
		Title:   trimOptional(req.Title),
		Comment: trimOptional(req.Comment),
		UserID:  userID,
	})
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, review)
}

// GetMyOrders 我的订单
func (h *Handler) GetMyOrders(c *gin.Context) {
	_, token, ok := requireToken(c)
	if !ok {
		return
	}
	orders, err := h.API.ListMyOrders(c.Request.Context(), token)
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": orders})
}

// GetMyOrder 订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	_, token, ok := requireToken(c)
	if !ok {
		return
	}
	order, err := h.API.GetMyOrder(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// CancelMyOrder 取消订单
func (h *Handler) CancelMyOrder(c *gin.Context) {
	_, token, ok := requireToken(c)
	if !ok {
		return
	}
	order, err := h.API.CancelOrder(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
