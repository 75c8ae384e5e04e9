package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog は1リクエストにつき1行の構造化ログを出力するGinミドルウェアを返す。
//
// ルートキー（メソッドと解決済みパスパターン）、認証済みユーザーID
// （未認証の場合は "anonymous"）、ステータスコード、処理時間を記録する。
// ハンドラがエラーを c.Error で登録した場合はその詳細も記録する。
func RequestLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		identity := GetUserID(c)
		if identity == "" {
			identity = "anonymous"
		}

		route := c.FullPath()
		if route == "" {
			// ルーターに登録されていないパスへのリクエスト
			route = c.Request.URL.Path
		}

		fields := []zap.Field{
			zap.String("route", c.Request.Method+":"+route),
			zap.String("user", identity),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		logger.Info("リクエスト処理", fields...)
	}
}
