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
	"golang.org/x/crypto/bcrypt"

	backenddb "github.com/nao1215/syncbase/internal/backend/db"
	"github.com/nao1215/syncbase/pkg/event"
)

// minPasswordLength はパスワードの最小文字数。
const minPasswordLength = 8

// registerRequest はユーザー登録リクエストのJSON構造。
type registerRequest struct {
	// Email はメールアドレス。ユーザー間で一意。
	Email string `json:"email"`
	// Password は平文パスワード。bcryptでハッシュ化して保存する。
	Password string `json:"password"`
	// DisplayName は表示名。
	DisplayName string `json:"display_name"`
}

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Email はメールアドレス。
	Email string `json:"email"`
	// Password は平文パスワード。
	Password string `json:"password"`
}

// RegisterUser は新規ユーザーを登録する。
// メールアドレスの重複はエラーとして呼び出し元に返す。
func (s *Service) RegisterUser(ctx context.Context, body json.RawMessage) (map[string]any, error) {
	var req registerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("リクエストが不正です: %w", err)
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, errors.New("有効なメールアドレスを指定してください")
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("パスワードは%d文字以上を指定してください", minPasswordLength)
	}

	if _, err := s.queries.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("このメールアドレスは既に登録されています")
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}

	userID := uuid.New().String()
	if err := s.queries.CreateUser(ctx, backenddb.CreateUserParams{
		ID:           userID,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}); err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗: %w", err)
	}

	s.emitEvent(ctx, userID, event.AggregateTypeUser, event.TypeUserRegistered, event.UserRegisteredData{
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})

	created, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("作成したユーザーの取得に失敗: %w", err)
	}

	s.logger.Info("ユーザーを登録", zap.String("user_id", userID), zap.String("email", req.Email))

	return map[string]any{
		"success": true,
		"user": map[string]any{
			"id":           created.ID,
			"email":        created.Email,
			"display_name": created.DisplayName,
			"created_at":   created.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}, nil
}

// LoginUser は認証情報を検証し、セッションを発行する。
// 存在しないメールアドレスとパスワード不一致は、列挙攻撃を避けるため
// 同一のエラーメッセージで返す。
func (s *Service) LoginUser(ctx context.Context, body json.RawMessage) (map[string]any, error) {
	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("リクエストが不正です: %w", err)
	}
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("メールアドレスとパスワードを指定してください")
	}

	errInvalidCredentials := errors.New("メールアドレスまたはパスワードが正しくありません")

	user, err := s.queries.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err == sql.ErrNoRows {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := newSessionToken(s.sessionSecret, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.queries.CreateSession(ctx, backenddb.CreateSessionParams{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("セッションの作成に失敗: %w", err)
	}

	if err := s.queries.UpdateLastLogin(ctx, user.ID); err != nil {
		// 最終ログイン日時の更新失敗はログイン自体を妨げない
		s.logger.Warn("最終ログイン日時の更新に失敗", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.emitEvent(ctx, user.ID, event.AggregateTypeUser, event.TypeUserLoggedIn, event.UserLoggedInData{
		Email: user.Email,
	})

	return map[string]any{
		"success":       true,
		"user_id":       user.ID,
		"session_token": token,
		"expires_at":    expiresAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}
