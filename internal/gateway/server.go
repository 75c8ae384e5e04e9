package gateway

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/syncbase/pkg/middleware"
)

// Config はgatewayサーバーの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// Production は本番環境かどうか。エラー詳細の隠蔽に影響する。
	Production bool
	// FrontendURL はCORSで許可するフロントエンドのオリジン。
	FrontendURL string
	// StaticDir は静的フロントエンドの配置ディレクトリ。空の場合は配信しない。
	StaticDir string
}

// Server はgatewayのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// backend は注入されたバックエンド実装。
	backend Backend
	// entries はルートテーブルの構築順エントリ一覧。ルーター登録に使用する。
	entries []routeEntry
	// routes はルートキーからエントリへの検索マップ。起動後は読み取り専用。
	routes map[string]routeEntry
	// staticDir は静的フロントエンドの配置ディレクトリ。
	staticDir string
	// logger は構造化ロガー。
	logger *zap.Logger
}

// NewServer は新しいgatewayサーバーを生成する。
//
// バックエンドは構築時に明示的に注入され、プロセス全体で共有される
// 可変なグローバル状態は持たない。verifier が非nilの場合、認証ゲートは
// ヘッダーの存在確認に加えてセッショントークンの実体検証を行う。
func NewServer(cfg Config, b Backend, verifier middleware.TokenVerifier, logger *zap.Logger) (*Server, error) {
	entries := buildRoutes(b)
	routes, err := newRouteTable(entries)
	if err != nil {
		return nil, fmt.Errorf("ルートテーブルの構築に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger, cfg.Production))
	router.Use(middleware.RequestLog(logger))
	router.Use(middleware.CORS([]string{cfg.FrontendURL}))

	s := &Server{
		router:    router,
		port:      cfg.Port,
		backend:   b,
		entries:   entries,
		routes:    routes,
		staticDir: cfg.StaticDir,
		logger:    logger,
	}
	s.setupRoutes(verifier)

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Router はテスト用に内部のGinルーターを返す。
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes はルートテーブルの全エントリをルーターに登録する。
// 保護されたルートには認証ゲートを適用する。
func (s *Server) setupRoutes(verifier middleware.TokenVerifier) {
	authGate := middleware.SessionAuth(verifier, s.logger)

	for _, e := range s.entries {
		if e.protected {
			s.router.Handle(e.method, e.path, authGate, s.dispatch())
		} else {
			s.router.Handle(e.method, e.path, s.dispatch())
		}
	}

	// 未登録パスは404エンベロープを返す。ただしAPI以外のGETリクエストは
	// 静的フロントエンドのエントリドキュメントにフォールバックする。
	s.router.NoRoute(s.handleNoRoute())
}

// handleNoRoute はルーターに登録されていないパスへのリクエストを処理する
// ハンドラを返す。
func (s *Server) handleNoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.staticDir != "" && c.Request.Method == http.MethodGet && !strings.HasPrefix(path, "/api") {
			indexPath := filepath.Join(s.staticDir, "index.html")
			if _, err := os.Stat(indexPath); err == nil {
				c.File(indexPath)
				return
			}
		}

		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	}
}
