package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderUserID は認証済みユーザーIDを運ぶHTTPヘッダーキー。
const HeaderUserID = "x-user-id"

// HeaderSessionToken はセッショントークンを運ぶHTTPヘッダーキー。
const HeaderSessionToken = "x-session-token"

// contextKeyUserID はGinコンテキストにユーザーIDを格納するためのキー。
const contextKeyUserID = "user_id"

// contextKeySessionToken はGinコンテキストにセッショントークンを格納するためのキー。
const contextKeySessionToken = "session_token"

// TokenVerifier はセッショントークンの実体検証を行うインターフェース。
//
// 認証ゲート自体はヘッダーの存在確認のみを行い、署名・有効期限・失効の
// 検証はこのインターフェースの実装に委譲する。nil を渡した場合、
// 存在確認のみで認証を通過させる。
type TokenVerifier interface {
	// VerifySession はユーザーIDとセッショントークンの組を検証する。
	// 検証に失敗した場合はエラーを返す。
	VerifySession(ctx context.Context, userID, token string) error
}

// SessionAuth はセッション認証ゲートのGinミドルウェアを返す。
//
// リクエストヘッダー x-user-id と x-session-token の両方が非空であることを
// 確認し、コンテキストに認証情報を設定する。どちらかが欠けている場合は
// 401を返し、後続のハンドラは実行されない。verifier が非nilの場合は
// 存在確認の後にトークンの実体検証も行う。
func SessionAuth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		token := c.GetHeader(HeaderSessionToken)
		if userID == "" || token == "" {
			logger.Warn("認証情報が不足したリクエストを拒否",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		if verifier != nil {
			if err := verifier.VerifySession(c.Request.Context(), userID, token); err != nil {
				logger.Warn("セッショントークンの検証に失敗",
					zap.String("user_id", userID),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "Authentication required",
				})
				return
			}
		}

		logger.Debug("認証済みリクエスト", zap.String("user_id", userID))
		c.Set(contextKeyUserID, userID)
		c.Set(contextKeySessionToken, token)
		c.Next()
	}
}

// GetUserID はGinコンテキストから認証済みユーザーIDを取得する。
// SessionAuthミドルウェアが事前に適用されていない場合は空文字列を返す。
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(contextKeyUserID)
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetSessionToken はGinコンテキストからセッショントークンを取得する。
// SessionAuthミドルウェアが事前に適用されていない場合は空文字列を返す。
func GetSessionToken(c *gin.Context) string {
	token, _ := c.Get(contextKeySessionToken)
	if t, ok := token.(string); ok {
		return t
	}
	return ""
}
