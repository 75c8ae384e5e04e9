package gateway

import (
	"context"
	"encoding/json"
	"net/url"
)

// Backend はgatewayが呼び出すバックエンド操作のインターフェース。
//
// 実装は構築時にgatewayへ明示的に注入される。バックエンドのインスタンスは
// 全リクエスト間で共有されるため、実装側が並行安全性を担保する。
// gatewayは各操作にタイムアウトや再試行を追加しない。
type Backend interface {
	// RegisterUser は新規ユーザーを登録する。
	RegisterUser(ctx context.Context, body json.RawMessage) (map[string]any, error)
	// LoginUser は認証情報を検証し、セッション情報を返す。
	LoginUser(ctx context.Context, body json.RawMessage) (map[string]any, error)
	// GetUserProjects はユーザーが所有するプロジェクトの一覧を返す。
	GetUserProjects(ctx context.Context, userID string) (map[string]any, error)
	// CreateProject は新しいプロジェクトを作成する。
	CreateProject(ctx context.Context, userID string, body json.RawMessage) (map[string]any, error)
	// GetProject は指定IDのプロジェクトを返す。
	GetProject(ctx context.Context, userID, projectID string) (map[string]any, error)
	// DeleteProject は指定IDのプロジェクトを削除する。
	DeleteProject(ctx context.Context, userID, projectID string) (map[string]any, error)
	// ConfigureProjectBackend はプロジェクトのバックエンド設定を保存する。
	ConfigureProjectBackend(ctx context.Context, userID, projectID string, body json.RawMessage) (map[string]any, error)
	// TestProjectBackend は設定されたバックエンドへの接続を確認する。
	TestProjectBackend(ctx context.Context, userID, projectID string, body json.RawMessage) (map[string]any, error)
	// GetProjectData はプロジェクトのデータレコードを取得する。
	GetProjectData(ctx context.Context, userID, projectID string, query url.Values) (map[string]any, error)
	// StoreProjectData はプロジェクトにデータレコードを保存する。
	StoreProjectData(ctx context.Context, userID, projectID string, body json.RawMessage) (map[string]any, error)
	// HealthCheck はバックエンドの死活状態を返す。
	HealthCheck(ctx context.Context) (map[string]any, error)
}
