package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/syncbase/pkg/middleware"
)

// Request は1回の受信呼び出しの正規化された読み取り専用ビュー。
// ディスパッチャが生成し、バックエンド操作に渡される。
type Request struct {
	// Method はHTTPメソッド。
	Method string
	// Params は解決済みのパスパラメータ（名前→値）。
	Params map[string]string
	// Query はクエリパラメータ。
	Query url.Values
	// Body はリクエストボディ。
	Body json.RawMessage
	// UserID は認証済みユーザーのID。未認証ルートでは常に空。
	UserID string
	// SessionToken はセッショントークン。未認証ルートでは常に空。
	SessionToken string
}

// dispatch はルートテーブルに基づくディスパッチを行う共通ハンドラを返す。
//
// ginが解決したパスパターンからルートキーを生成してテーブルを検索し、
// 対応するバックエンド操作を呼び出す。テーブルに存在しないキーは
// ルーターとテーブルの不整合を意味し、クライアント起因ではない内部
// エラーとして扱う。操作の結果は成功時そのまま、失敗時はエラー
// エンベロープとして返す。
func (s *Server) dispatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := routeKey(c.Request.Method, c.FullPath())
		entry, ok := s.routes[key]
		if !ok {
			// ルーターに登録されたのにテーブルに存在しない。デプロイ構成のバグ。
			s.logger.Error("ルートテーブルに存在しないルート", zap.String("route", key))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal server error",
			})
			return
		}

		req, err := s.newRequest(c, entry.protected)
		if err != nil {
			c.JSON(entry.errStatus, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}

		identity := "anonymous"
		if req.UserID != "" {
			identity = req.UserID
		}
		s.logger.Debug("操作をディスパッチ",
			zap.String("route", key),
			zap.String("user", identity),
		)

		result, err := entry.op(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			c.JSON(entry.errStatus, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}

		// 成功時はバックエンドの結果マップをそのまま転送する
		c.JSON(http.StatusOK, result)
	}
}

// newRequest は受信リクエストから正規化されたリクエストコンテキストを生成する。
// 認証情報は保護されたルートの場合のみ設定される。
func (s *Server) newRequest(c *gin.Context, protected bool) (*Request, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("リクエストボディの読み取りに失敗: %w", err)
	}

	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	req := &Request{
		Method: c.Request.Method,
		Params: params,
		Query:  c.Request.URL.Query(),
		Body:   body,
	}
	if protected {
		req.UserID = middleware.GetUserID(c)
		req.SessionToken = middleware.GetSessionToken(c)
	}
	return req, nil
}
