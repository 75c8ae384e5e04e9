package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
//
// パニック発生時にスタックトレースをログに出力し、障害の詳細を隠した
// 500エラーエンベロープを返す。production が false の場合のみ、
// デバッグ用にパニックの内容を detail フィールドで返す。
func Recovery(logger *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("ハンドラでパニックが発生",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)

				body := gin.H{
					"success": false,
					"message": "Internal server error",
				}
				if !production {
					body["detail"] = fmt.Sprint(r)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		c.Next()
	}
}
