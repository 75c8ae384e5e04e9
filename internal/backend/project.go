package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	backenddb "github.com/nao1215/syncbase/internal/backend/db"
	"github.com/nao1215/syncbase/pkg/event"
)

// errProjectNotFound はプロジェクトが存在しない、または呼び出し元の
// 所有物でない場合のエラー。所有権の有無を外部に漏らさないため、
// 両者を区別しない。
var errProjectNotFound = errors.New("プロジェクトが見つかりません")

// createProjectRequest はプロジェクト作成リクエストのJSON構造。
type createProjectRequest struct {
	// Name はプロジェクト名。
	Name string `json:"name"`
	// Description はプロジェクトの説明。
	Description string `json:"description"`
}

// toProjectMap はDB行をレスポンス用のマップに変換する。
func toProjectMap(p backenddb.Project) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"user_id":     p.UserID,
		"name":        p.Name,
		"description": p.Description,
		"created_at":  p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		"updated_at":  p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// getOwnedProject は指定IDのプロジェクトを取得し、所有者を確認する。
func (s *Service) getOwnedProject(ctx context.Context, userID, projectID string) (backenddb.Project, error) {
	p, err := s.queries.GetProjectByID(ctx, projectID)
	if err == sql.ErrNoRows {
		return backenddb.Project{}, errProjectNotFound
	}
	if err != nil {
		return backenddb.Project{}, fmt.Errorf("プロジェクトの取得に失敗: %w", err)
	}
	if p.UserID != userID {
		return backenddb.Project{}, errProjectNotFound
	}
	return p, nil
}

// GetUserProjects はユーザーが所有するプロジェクトの一覧を返す。
func (s *Service) GetUserProjects(ctx context.Context, userID string) (map[string]any, error) {
	projects, err := s.queries.ListProjectsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("プロジェクト一覧の取得に失敗: %w", err)
	}

	result := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		result = append(result, toProjectMap(p))
	}

	return map[string]any{
		"success":  true,
		"projects": result,
	}, nil
}

// CreateProject は新しいプロジェクトを作成する。
func (s *Service) CreateProject(ctx context.Context, userID string, body json.RawMessage) (map[string]any, error) {
	var req createProjectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("リクエストが不正です: %w", err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errors.New("プロジェクト名を指定してください")
	}

	projectID := uuid.New().String()
	if err := s.queries.CreateProject(ctx, backenddb.CreateProjectParams{
		ID:          projectID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}); err != nil {
		return nil, fmt.Errorf("プロジェクトの作成に失敗: %w", err)
	}

	s.emitEvent(ctx, projectID, event.AggregateTypeProject, event.TypeProjectCreated, event.ProjectCreatedData{
		UserID: userID,
		Name:   req.Name,
	})

	created, err := s.queries.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("作成したプロジェクトの取得に失敗: %w", err)
	}

	s.logger.Info("プロジェクトを作成",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
	)

	return map[string]any{
		"success": true,
		"project": toProjectMap(created),
	}, nil
}

// GetProject は指定IDのプロジェクトを返す。
// 存在しない場合、または呼び出し元の所有物でない場合はエラーを返す。
func (s *Service) GetProject(ctx context.Context, userID, projectID string) (map[string]any, error) {
	p, err := s.getOwnedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"project": toProjectMap(p),
	}, nil
}

// DeleteProject は指定IDのプロジェクトを削除する。
// バックエンド設定とデータレコードは外部キー制約により連鎖削除される。
func (s *Service) DeleteProject(ctx context.Context, userID, projectID string) (map[string]any, error) {
	if _, err := s.getOwnedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if err := s.queries.DeleteProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("プロジェクトの削除に失敗: %w", err)
	}

	s.emitEvent(ctx, projectID, event.AggregateTypeProject, event.TypeProjectDeleted, event.ProjectDeletedData{
		UserID: userID,
	})

	s.logger.Info("プロジェクトを削除",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
	)

	return map[string]any{
		"success": true,
		"message": "プロジェクトを削除しました",
	}, nil
}
