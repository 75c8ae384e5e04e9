// syncbase gatewayサービスのエントリポイント。
// 認証ゲート、ルートテーブルによるディスパッチ、バックエンド操作の
// 呼び出しを担当する。バックエンドの初期化が完了するまでリクエストの
// 受付を開始せず、初期化に失敗した場合は非ゼロ終了する。
package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/syncbase/internal/backend"
	"github.com/nao1215/syncbase/internal/gateway"
	"github.com/nao1215/syncbase/pkg/logging"
	"github.com/nao1215/syncbase/pkg/middleware"
)

func main() {
	env := getEnvOr("APP_ENV", "development")
	production := logging.IsProduction(env)

	logger, err := logging.New(env)
	if err != nil {
		// ロガー構築前の失敗のみ標準エラーに直接出力する
		os.Stderr.WriteString("ロガーの構築に失敗: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	svc, err := backend.New(
		getEnvOr("SYNCBASE_DB", "/data/syncbase.db"),
		getEnvOr("SESSION_SECRET", "dev-secret-key"),
		logger,
	)
	if err != nil {
		logger.Fatal("バックエンドの構築に失敗", zap.Error(err))
	}
	defer func() { _ = svc.Close() }()

	// リッスンソケットを開く前に初期化を完了させる
	if err := svc.Init(context.Background()); err != nil {
		logger.Fatal("バックエンドの初期化に失敗", zap.Error(err))
	}

	// セッショントークンの実体検証はデフォルト無効（存在確認のみ）
	var verifier middleware.TokenVerifier
	if os.Getenv("SESSION_VERIFY") == "strict" {
		verifier = svc
	}

	cfg := gateway.Config{
		Port:        getEnvOr("PORT", "3000"),
		Production:  production,
		FrontendURL: getEnvOr("FRONTEND_URL", "http://localhost:3000"),
		StaticDir:   getEnvOr("STATIC_DIR", "web"),
	}

	server, err := gateway.NewServer(cfg, svc, verifier, logger)
	if err != nil {
		logger.Fatal("gatewayサーバーの構築に失敗", zap.Error(err))
	}

	logger.Info("gatewayサービスを起動",
		zap.String("port", cfg.Port),
		zap.String("env", env),
	)
	if err := server.Run(); err != nil {
		logger.Fatal("gatewayサービスの起動に失敗", zap.Error(err))
	}
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
