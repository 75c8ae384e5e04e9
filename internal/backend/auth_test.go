package backend

import (
	"context"
	"encoding/json"
	"testing"
)

// TestRegisterUser はユーザー登録を検証する。
func TestRegisterUser(t *testing.T) {
	t.Parallel()

	t.Run("ユーザーが登録できること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)

		body := `{"email":"taro@example.com","password":"password123","display_name":"太郎"}`
		result, err := svc.RegisterUser(context.Background(), json.RawMessage(body))
		if err != nil {
			t.Fatalf("登録に失敗: %v", err)
		}

		if result["success"] != true {
			t.Errorf("success = %v, want true", result["success"])
		}

		user, ok := result["user"].(map[string]any)
		if !ok {
			t.Fatalf("userフィールドがマップでない: %v", result)
		}
		if user["email"] != "taro@example.com" {
			t.Errorf("email = %q, want %q", user["email"], "taro@example.com")
		}
		if user["display_name"] != "太郎" {
			t.Errorf("display_name = %q, want %q", user["display_name"], "太郎")
		}
		if id, _ := user["id"].(string); id == "" {
			t.Error("ユーザーIDが空")
		}
		if createdAt, _ := user["created_at"].(string); createdAt == "" {
			t.Error("created_atが空")
		}
	})

	t.Run("重複したメールアドレスは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		registerTestUser(t, svc, "dup@example.com")

		body := `{"email":"dup@example.com","password":"password123","display_name":"二人目"}`
		_, err := svc.RegisterUser(context.Background(), json.RawMessage(body))
		if err == nil {
			t.Fatal("重複したメールアドレスでエラーが返らない")
		}
		if err.Error() != "このメールアドレスは既に登録されています" {
			t.Errorf("エラーメッセージ = %q", err.Error())
		}
	})

	t.Run("不正なメールアドレスは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)

		tests := []struct {
			name string
			body string
		}{
			{"空のメールアドレス", `{"email":"","password":"password123"}`},
			{"アットマークなし", `{"email":"invalid","password":"password123"}`},
			{"空白のみ", `{"email":"   ","password":"password123"}`},
		}

		for _, tt := range tests {
			if _, err := svc.RegisterUser(context.Background(), json.RawMessage(tt.body)); err == nil {
				t.Errorf("%s でエラーが返らない", tt.name)
			}
		}
	})

	t.Run("短いパスワードは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)

		body := `{"email":"short@example.com","password":"1234567"}`
		if _, err := svc.RegisterUser(context.Background(), json.RawMessage(body)); err == nil {
			t.Error("7文字のパスワードでエラーが返らない")
		}
	})

	t.Run("不正なJSONは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)

		if _, err := svc.RegisterUser(context.Background(), json.RawMessage(`{invalid`)); err == nil {
			t.Error("不正なJSONでエラーが返らない")
		}
	})
}

// TestLoginUser はログインとセッション発行を検証する。
func TestLoginUser(t *testing.T) {
	t.Parallel()

	t.Run("正しい認証情報でセッションが発行されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "login@example.com")

		body := `{"email":"login@example.com","password":"password123"}`
		result, err := svc.LoginUser(context.Background(), json.RawMessage(body))
		if err != nil {
			t.Fatalf("ログインに失敗: %v", err)
		}

		if result["success"] != true {
			t.Errorf("success = %v, want true", result["success"])
		}
		if result["user_id"] != userID {
			t.Errorf("user_id = %q, want %q", result["user_id"], userID)
		}
		if token, _ := result["session_token"].(string); token == "" {
			t.Error("session_tokenが空")
		}
		if expiresAt, _ := result["expires_at"].(string); expiresAt == "" {
			t.Error("expires_atが空")
		}
	})

	t.Run("誤ったパスワードは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		registerTestUser(t, svc, "wrongpass@example.com")

		body := `{"email":"wrongpass@example.com","password":"wrongpassword"}`
		_, err := svc.LoginUser(context.Background(), json.RawMessage(body))
		if err == nil {
			t.Fatal("誤ったパスワードでエラーが返らない")
		}
		if err.Error() != "メールアドレスまたはパスワードが正しくありません" {
			t.Errorf("エラーメッセージ = %q", err.Error())
		}
	})

	t.Run("存在しないメールアドレスはパスワード不一致と同じエラーになること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)

		body := `{"email":"nobody@example.com","password":"password123"}`
		_, err := svc.LoginUser(context.Background(), json.RawMessage(body))
		if err == nil {
			t.Fatal("存在しないメールアドレスでエラーが返らない")
		}
		if err.Error() != "メールアドレスまたはパスワードが正しくありません" {
			t.Errorf("エラーメッセージ = %q", err.Error())
		}
	})

	t.Run("メールアドレスとパスワードは必須であること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)

		if _, err := svc.LoginUser(context.Background(), json.RawMessage(`{"email":"","password":""}`)); err == nil {
			t.Error("空の認証情報でエラーが返らない")
		}
	})
}

// TestVerifySession はセッショントークンの実体検証を検証する。
func TestVerifySession(t *testing.T) {
	t.Parallel()

	// login はユーザーを登録してログインし、ユーザーIDとトークンを返す。
	login := func(t *testing.T, svc *Service, email string) (string, string) {
		t.Helper()

		userID := registerTestUser(t, svc, email)
		body := `{"email":"` + email + `","password":"password123"}`
		result, err := svc.LoginUser(context.Background(), json.RawMessage(body))
		if err != nil {
			t.Fatalf("ログインに失敗: %v", err)
		}
		token, _ := result["session_token"].(string)
		if token == "" {
			t.Fatal("session_tokenが空")
		}
		return userID, token
	}

	t.Run("発行したセッションが検証を通過すること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID, token := login(t, svc, "verify@example.com")

		if err := svc.VerifySession(context.Background(), userID, token); err != nil {
			t.Errorf("有効なセッションの検証に失敗: %v", err)
		}
	})

	t.Run("別ユーザーのトークンは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		_, token := login(t, svc, "owner@example.com")
		otherID := registerTestUser(t, svc, "other@example.com")

		if err := svc.VerifySession(context.Background(), otherID, token); err == nil {
			t.Error("別ユーザーのトークンで検証を通過した")
		}
	})

	t.Run("不正なトークンは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "garbage@example.com")

		if err := svc.VerifySession(context.Background(), userID, "not-a-jwt"); err == nil {
			t.Error("不正なトークンで検証を通過した")
		}
	})

	t.Run("別の鍵で署名されたトークンは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "forged@example.com")

		forged, _, err := newSessionToken("another-secret", userID, "forged@example.com")
		if err != nil {
			t.Fatalf("トークン生成に失敗: %v", err)
		}

		if err := svc.VerifySession(context.Background(), userID, forged); err == nil {
			t.Error("別の鍵で署名されたトークンで検証を通過した")
		}
	})

	t.Run("セッションレコードのないトークンは拒否されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "norecord@example.com")

		// 正しい鍵で署名されているがセッションレコードが存在しない
		token, _, err := newSessionToken("test-secret", userID, "norecord@example.com")
		if err != nil {
			t.Fatalf("トークン生成に失敗: %v", err)
		}

		if err := svc.VerifySession(context.Background(), userID, token); err == nil {
			t.Error("セッションレコードのないトークンで検証を通過した")
		}
	})
}
