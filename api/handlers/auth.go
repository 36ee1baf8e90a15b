package handlers

import (
	"net/http"
	"strings"

	"github.com/BinLe1988/tweet-content-filter/models"
	"github.com/BinLe1988/tweet-content-filter/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 客户端认证处理器
type AuthHandler struct {
	clients map[string]string // client_id -> bcrypt hash
}

// NewAuthHandler 创建客户端认证处理器，client_id 不区分大小写（viper 会将键转为小写）
func NewAuthHandler(clients map[string]string) *AuthHandler {
	normalized := make(map[string]string, len(clients))
	for id, hash := range clients {
		normalized[strings.ToLower(id)] = hash
	}
	return &AuthHandler{clients: normalized}
}

// IssueToken 校验客户端密钥并签发令牌
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 验证客户端密钥
	hash, ok := h.clients[strings.ToLower(req.ClientID)]
	if !ok || !utils.CheckSecret(hash, req.ClientSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid client id or secret"})
		return
	}

	// 生成JWT令牌
	token, err := utils.GenerateToken(req.ClientID)
	if err != nil {
		zap.S().Errorf("failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
