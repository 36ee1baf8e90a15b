package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/BinLe1988/tweet-content-filter/models"
	"github.com/BinLe1988/tweet-content-filter/pkg/filter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OutcomeHeader 响应头中携带决策结果
const OutcomeHeader = "X-Filter-Outcome"

// DecisionLister 决策日志查询接口
type DecisionLister interface {
	Recent(ctx context.Context, limit int) ([]models.FilterDecision, error)
}

// ContentFilterHandler 内容过滤处理器
type ContentFilterHandler struct {
	filterService *filter.ContentFilterService
	decisions     DecisionLister
}

// NewContentFilterHandler 创建新的内容过滤处理器，decisions 可为 nil
func NewContentFilterHandler(service *filter.ContentFilterService, decisions DecisionLister) *ContentFilterHandler {
	return &ContentFilterHandler{
		filterService: service,
		decisions:     decisions,
	}
}

// RegisterRoutes 注册路由
func (h *ContentFilterHandler) RegisterRoutes(group gin.IRoutes) {
	group.POST("/filter-twitter-content/", h.FilterTwitterContent)
	group.POST("/random-filter-twitter-content/", h.RandomFilterTwitterContent)
	if h.decisions != nil {
		group.GET("/decisions", h.RecentDecisions)
	}
}

// FilterTwitterContent 过滤推文内容
func (h *ContentFilterHandler) FilterTwitterContent(c *gin.Context) {
	var req models.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.filterService.Filter(c.Request.Context(), req.ToFilterRequest())
	if err != nil {
		if filter.IsTypeError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.S().Errorf("filter request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to filter content"})
		return
	}

	c.Header(OutcomeHeader, string(decision.Outcome))
	c.JSON(http.StatusOK, models.NewFilteredContent(decision))
}

// RandomFilterTwitterContent 随机过滤基线
func (h *ContentFilterHandler) RandomFilterTwitterContent(c *gin.Context) {
	var req models.RandomFilterRequest
	// 请求体可以为空，此时从不过滤
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision := h.filterService.Random(c.Request.Context(), req.Threshold)
	c.Header(OutcomeHeader, string(decision.Outcome))
	c.JSON(http.StatusOK, models.NewFilteredContent(decision))
}

// RecentDecisions 查询最近的决策日志
func (h *ContentFilterHandler) RecentDecisions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	decisions, err := h.decisions.Recent(c.Request.Context(), limit)
	if err != nil {
		zap.S().Errorf("failed to list decisions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}
