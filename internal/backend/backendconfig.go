package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	backenddb "github.com/nao1215/syncbase/internal/backend/db"
	"github.com/nao1215/syncbase/pkg/event"
	"github.com/nao1215/syncbase/pkg/httpclient"
)

// configureBackendRequest はバックエンド設定リクエストのJSON構造。
type configureBackendRequest struct {
	// Type はバックエンドの種類（例: "firebase", "supabase", "custom"）。
	Type string `json:"type"`
	// URL はバックエンドのベースURL。
	URL string `json:"url"`
	// APIKey はバックエンドのAPIキー。
	APIKey string `json:"api_key"`
	// Settings はバックエンド固有の追加設定。
	Settings map[string]any `json:"settings"`
}

// testBackendRequest はバックエンド接続テストリクエストのJSON構造。
type testBackendRequest struct {
	// Path はベースURLに対する追加パス。省略時は "/" を使用する。
	Path string `json:"path"`
}

// ConfigureProjectBackend はプロジェクトのバックエンド設定を保存する。
// 既存の設定がある場合は上書きする。
func (s *Service) ConfigureProjectBackend(ctx context.Context, userID, projectID string, body json.RawMessage) (map[string]any, error) {
	if _, err := s.getOwnedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	var req configureBackendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("リクエストが不正です: %w", err)
	}

	req.Type = strings.TrimSpace(req.Type)
	req.URL = strings.TrimSpace(req.URL)
	if req.Type == "" {
		return nil, errors.New("バックエンドの種類を指定してください")
	}
	if req.URL == "" || !strings.HasPrefix(req.URL, "http") {
		return nil, errors.New("有効なバックエンドURLを指定してください")
	}

	settings := "{}"
	if req.Settings != nil {
		raw, err := json.Marshal(req.Settings)
		if err != nil {
			return nil, fmt.Errorf("設定のシリアライズに失敗: %w", err)
		}
		settings = string(raw)
	}

	if err := s.queries.UpsertProjectBackend(ctx, backenddb.UpsertProjectBackendParams{
		ProjectID:   projectID,
		BackendType: req.Type,
		Url:         req.URL,
		ApiKey:      req.APIKey,
		Settings:    settings,
	}); err != nil {
		return nil, fmt.Errorf("バックエンド設定の保存に失敗: %w", err)
	}

	s.emitEvent(ctx, projectID, event.AggregateTypeProject, event.TypeProjectBackendConfigured, event.ProjectBackendConfiguredData{
		UserID:      userID,
		BackendType: req.Type,
		URL:         req.URL,
	})

	s.logger.Info("バックエンド設定を保存",
		zap.String("project_id", projectID),
		zap.String("backend_type", req.Type),
	)

	return map[string]any{
		"success": true,
		"backend": map[string]any{
			"type": req.Type,
			"url":  req.URL,
		},
	}, nil
}

// TestProjectBackend はプロジェクトに設定されたバックエンドへの接続を確認する。
// 設定済みのURLにGETリクエストを送信し、到達可否とステータスコードを返す。
func (s *Service) TestProjectBackend(ctx context.Context, userID, projectID string, body json.RawMessage) (map[string]any, error) {
	if _, err := s.getOwnedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	var req testBackendRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, fmt.Errorf("リクエストが不正です: %w", err)
		}
	}
	if req.Path == "" {
		req.Path = "/"
	}

	cfg, err := s.queries.GetProjectBackend(ctx, projectID)
	if err == sql.ErrNoRows {
		return nil, errors.New("バックエンドが設定されていません")
	}
	if err != nil {
		return nil, fmt.Errorf("バックエンド設定の取得に失敗: %w", err)
	}

	client := httpclient.New(cfg.Url)
	status, probeErr := client.Status(httpclient.WithUserID(ctx, userID), req.Path)

	s.emitEvent(ctx, projectID, event.AggregateTypeProject, event.TypeProjectBackendTested, event.ProjectBackendTestedData{
		UserID:    userID,
		Reachable: probeErr == nil,
	})

	if probeErr != nil {
		s.logger.Warn("バックエンド接続テストに失敗",
			zap.String("project_id", projectID),
			zap.String("url", cfg.Url),
			zap.Error(probeErr),
		)
		return nil, fmt.Errorf("バックエンドへの接続に失敗: %w", probeErr)
	}

	return map[string]any{
		"success":   true,
		"reachable": true,
		"status":    status,
	}, nil
}
