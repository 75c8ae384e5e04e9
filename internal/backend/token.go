package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionTokenTTL はセッショントークンの有効期間。
const sessionTokenTTL = 24 * time.Hour

// sessionClaims はセッショントークンのクレーム（ペイロード）を表す。
type sessionClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"user_id"`
	// Email はユーザーのメールアドレス。
	Email string `json:"email"`
}

// newSessionToken はログイン成功時に発行するセッショントークンを生成する。
// HS256で署名したJWTを使用するが、gatewayの認証ゲートはこれを不透明な
// 文字列として扱う。トークンと有効期限を返す。
func newSessionToken(secret, userID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(sessionTokenTTL)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "syncbase-gateway",
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("セッショントークンの署名に失敗: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifySession はセッショントークンの実体検証を行う。
// middleware.TokenVerifier の実装であり、SESSION_VERIFY=strict の場合のみ
// 認証ゲートに組み込まれる。署名・有効期限の検証に加えて、
// セッションレコードの存在とユーザーIDの一致を確認する。
func (s *Service) VerifySession(ctx context.Context, userID, token string) error {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return []byte(s.sessionSecret), nil
	})
	if err != nil || !parsed.Valid {
		return errors.New("セッショントークンが無効です")
	}
	if claims.UserID != userID {
		return errors.New("セッショントークンとユーザーIDが一致しません")
	}

	session, err := s.queries.GetSessionByToken(ctx, token)
	if err == sql.ErrNoRows {
		return errors.New("セッションが存在しません")
	}
	if err != nil {
		return fmt.Errorf("セッションの取得に失敗: %w", err)
	}

	if session.UserID != userID {
		return errors.New("セッショントークンとユーザーIDが一致しません")
	}
	if time.Now().After(session.ExpiresAt) {
		return errors.New("セッションの有効期限が切れています")
	}
	return nil
}
