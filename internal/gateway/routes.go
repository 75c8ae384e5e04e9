package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// operation はバックエンド操作の正規化されたシグネチャ。
// ディスパッチャが構築したリクエストコンテキストを受け取り、
// エンベロープとして返却される結果マップまたはエラーを返す。
type operation func(ctx context.Context, req *Request) (map[string]any, error)

// routeEntry はルートテーブルの1エントリ。
// (HTTPメソッド, パスパターン) と、認証要否、操作エラー時のステータス
// コード、呼び出すバックエンド操作を関連付ける。
type routeEntry struct {
	// method はHTTPメソッド。
	method string
	// path はプレースホルダを含むパスパターン（例: "/api/projects/:id"）。
	path string
	// protected は認証ゲートの通過を必須とするかどうか。
	protected bool
	// errStatus は操作がエラーを返した場合のHTTPステータスコード。
	// 登録系は400、ログイン系は401、それ以外は500。
	errStatus int
	// op は呼び出すバックエンド操作。
	op operation
}

// routeKey はルートテーブルの検索キーを生成する。
// メソッドと解決済みパスパターンの連結（例: "GET:/api/projects/:id"）。
func routeKey(method, path string) string {
	return method + ":" + path
}

// buildRoutes はサポートする全操作のルートテーブルを構築する。
// テーブルはプロセス起動時に一度だけ構築され、以後は読み取り専用。
func buildRoutes(b Backend) []routeEntry {
	return []routeEntry{
		{
			method:    http.MethodPost,
			path:      "/api/auth/register",
			errStatus: http.StatusBadRequest,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.RegisterUser(ctx, req.Body)
			},
		},
		{
			method:    http.MethodPost,
			path:      "/api/auth/login",
			errStatus: http.StatusUnauthorized,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.LoginUser(ctx, req.Body)
			},
		},
		{
			method:    http.MethodGet,
			path:      "/api/projects",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.GetUserProjects(ctx, req.UserID)
			},
		},
		{
			method:    http.MethodPost,
			path:      "/api/projects",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.CreateProject(ctx, req.UserID, req.Body)
			},
		},
		{
			method:    http.MethodGet,
			path:      "/api/projects/:id",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.GetProject(ctx, req.UserID, req.Params["id"])
			},
		},
		{
			method:    http.MethodDelete,
			path:      "/api/projects/:id",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.DeleteProject(ctx, req.UserID, req.Params["id"])
			},
		},
		{
			method:    http.MethodPost,
			path:      "/api/projects/:id/configure-backend",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.ConfigureProjectBackend(ctx, req.UserID, req.Params["id"], req.Body)
			},
		},
		{
			method:    http.MethodPost,
			path:      "/api/projects/:id/test-backend",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.TestProjectBackend(ctx, req.UserID, req.Params["id"], req.Body)
			},
		},
		{
			method:    http.MethodGet,
			path:      "/api/projects/:id/data",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.GetProjectData(ctx, req.UserID, req.Params["id"], req.Query)
			},
		},
		{
			method:    http.MethodPost,
			path:      "/api/projects/:id/data",
			protected: true,
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, req *Request) (map[string]any, error) {
				return b.StoreProjectData(ctx, req.UserID, req.Params["id"], req.Body)
			},
		},
		{
			method:    http.MethodGet,
			path:      "/api/health",
			errStatus: http.StatusInternalServerError,
			op: func(ctx context.Context, _ *Request) (map[string]any, error) {
				return b.HealthCheck(ctx)
			},
		},
	}
}

// newRouteTable はルートエントリの一覧を検索用マップに変換する。
// (メソッド, パスパターン) の組が重複している場合はエラーを返す。
func newRouteTable(entries []routeEntry) (map[string]routeEntry, error) {
	table := make(map[string]routeEntry, len(entries))
	for _, e := range entries {
		key := routeKey(e.method, e.path)
		if _, ok := table[key]; ok {
			return nil, fmt.Errorf("ルートキーが重複しています: %s", key)
		}
		table[key] = e
	}
	return table, nil
}
