package backend

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	backenddb "github.com/nao1215/syncbase/internal/backend/db"
	"github.com/nao1215/syncbase/pkg/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Service はSQLiteを永続化層とするバックエンドサービス。
// 全リクエストから共有されるため、保持する *sql.DB が並行安全性を担保する。
type Service struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
	// queries はsqlcが生成したクエリ実行オブジェクト。
	queries *backenddb.Queries
	// sessionSecret はセッショントークン署名用の秘密鍵。
	sessionSecret string
	// logger は構造化ロガー。
	logger *zap.Logger
}

// New は新しいバックエンドサービスを生成する。
// データベース接続のみ行い、スキーマ適用は Init で行う。
func New(dbPath, sessionSecret string, logger *zap.Logger) (*Service, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", dbPath)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	return &Service{
		db:            sqlDB,
		queries:       backenddb.New(sqlDB),
		sessionSecret: sessionSecret,
		logger:        logger,
	}, nil
}

// Init はバックエンドの初期化を行う。
// マイグレーションの適用と接続確認を行い、失敗した場合はエラーを返す。
// gatewayはこの初期化が成功するまでリクエストの受付を開始してはならない。
func (s *Service) Init(ctx context.Context) error {
	if err := migration.Run(s.db, migrationsFS, "migrations", s.logger); err != nil {
		return fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("データベース接続確認に失敗: %w", err)
	}

	return nil
}

// Close はデータベース接続を閉じる。
func (s *Service) Close() error {
	return s.db.Close()
}

// HealthCheck はバックエンドの死活状態を返す。
func (s *Service) HealthCheck(ctx context.Context) (map[string]any, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("データベースに接続できません: %w", err)
	}

	return map[string]any{
		"success": true,
		"status":  "ok",
		"service": "syncbase",
	}, nil
}
