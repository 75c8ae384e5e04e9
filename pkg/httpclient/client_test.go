package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestStatus はステータス取得を検証する。
func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("ステータスコードが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer ts.Close()

		client := New(ts.URL)
		status, err := client.Status(context.Background(), "/")
		if err != nil {
			t.Fatalf("リクエストに失敗: %v", err)
		}
		if status != http.StatusNoContent {
			t.Errorf("status = %d, want %d", status, http.StatusNoContent)
		}
	})

	t.Run("エラー系のステータスコードもそのまま返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		client := New(ts.URL)
		status, err := client.Status(context.Background(), "/")
		if err != nil {
			t.Fatalf("リクエストに失敗: %v", err)
		}
		if status != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", status, http.StatusServiceUnavailable)
		}
	})

	t.Run("接続できない場合はエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		deadURL := ts.URL
		ts.Close()

		client := New(deadURL)
		if _, err := client.Status(context.Background(), "/"); err == nil {
			t.Error("接続不可でエラーが返らない")
		}
	})
}

// TestPostJSON はJSON POSTリクエストを検証する。
func TestPostJSON(t *testing.T) {
	t.Parallel()

	t.Run("リクエストとレスポンスがJSONで往復すること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("メソッド = %q, want %q", r.Method, http.MethodPost)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want %q", ct, "application/json")
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"echo":"ok"}`))
		}))
		defer ts.Close()

		client := New(ts.URL)

		var result map[string]string
		err := client.PostJSON(context.Background(), "/echo", map[string]string{"msg": "hello"}, &result)
		if err != nil {
			t.Fatalf("リクエストに失敗: %v", err)
		}
		if result["echo"] != "ok" {
			t.Errorf("echo = %q, want %q", result["echo"], "ok")
		}
	})

	t.Run("2xx以外のステータスはエラーになること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer ts.Close()

		client := New(ts.URL)
		if err := client.PostJSON(context.Background(), "/", nil, nil); err == nil {
			t.Error("4xxレスポンスでエラーが返らない")
		}
	})
}

// TestGetJSON はJSON GETリクエストを検証する。
func TestGetJSON(t *testing.T) {
	t.Parallel()

	t.Run("レスポンスがデシリアライズされること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/items/42" {
				t.Errorf("パス = %q, want %q", r.URL.Path, "/items/42")
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":42}`))
		}))
		defer ts.Close()

		client := New(ts.URL)

		var result struct {
			ID int `json:"id"`
		}
		if err := client.GetJSON(context.Background(), "/items/42", &result); err != nil {
			t.Fatalf("リクエストに失敗: %v", err)
		}
		if result.ID != 42 {
			t.Errorf("id = %d, want 42", result.ID)
		}
	})
}

// TestWithUserID はユーザーIDのヘッダー伝播を検証する。
func TestWithUserID(t *testing.T) {
	t.Parallel()

	t.Run("コンテキストのユーザーIDがヘッダーに反映されること", func(t *testing.T) {
		t.Parallel()

		var gotUserID string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = r.Header.Get("X-User-ID")
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		client := New(ts.URL)
		ctx := WithUserID(context.Background(), "u1")
		if _, err := client.Status(ctx, "/"); err != nil {
			t.Fatalf("リクエストに失敗: %v", err)
		}
		if gotUserID != "u1" {
			t.Errorf("X-User-ID = %q, want %q", gotUserID, "u1")
		}
	})

	t.Run("ユーザーIDのないコンテキストではヘッダーが付与されないこと", func(t *testing.T) {
		t.Parallel()

		var hasHeader bool
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasHeader = r.Header["X-User-Id"]
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		client := New(ts.URL)
		if _, err := client.Status(context.Background(), "/"); err != nil {
			t.Fatalf("リクエストに失敗: %v", err)
		}
		if hasHeader {
			t.Error("ユーザーIDなしでX-User-IDヘッダーが付与された")
		}
	})
}
