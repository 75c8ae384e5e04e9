package backend

import (
	"context"
	"encoding/json"
	"testing"
)

// TestCreateProject はプロジェクト作成を検証する。
func TestCreateProject(t *testing.T) {
	t.Parallel()

	t.Run("プロジェクトが作成できること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "create@example.com")

		body := `{"name":"同期プロジェクト","description":"モバイルアプリのデータ同期"}`
		result, err := svc.CreateProject(context.Background(), userID, json.RawMessage(body))
		if err != nil {
			t.Fatalf("作成に失敗: %v", err)
		}

		project, ok := result["project"].(map[string]any)
		if !ok {
			t.Fatalf("projectフィールドがマップでない: %v", result)
		}
		if project["name"] != "同期プロジェクト" {
			t.Errorf("name = %q, want %q", project["name"], "同期プロジェクト")
		}
		if project["description"] != "モバイルアプリのデータ同期" {
			t.Errorf("description = %q", project["description"])
		}
		if project["user_id"] != userID {
			t.Errorf("user_id = %q, want %q", project["user_id"], userID)
		}
	})

	t.Run("プロジェクト名は必須であること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "noname@example.com")

		tests := []struct {
			name string
			body string
		}{
			{"名前なし", `{"description":"説明のみ"}`},
			{"空の名前", `{"name":""}`},
			{"空白のみの名前", `{"name":"   "}`},
		}

		for _, tt := range tests {
			if _, err := svc.CreateProject(context.Background(), userID, json.RawMessage(tt.body)); err == nil {
				t.Errorf("%s でエラーが返らない", tt.name)
			}
		}
	})
}

// TestGetUserProjects はプロジェクト一覧の取得を検証する。
func TestGetUserProjects(t *testing.T) {
	t.Parallel()

	t.Run("所有するプロジェクトのみが返ること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		aliceID := registerTestUser(t, svc, "alice@example.com")
		bobID := registerTestUser(t, svc, "bob@example.com")

		createTestProject(t, svc, aliceID, "aliceの計画")
		createTestProject(t, svc, aliceID, "aliceの別の計画")
		createTestProject(t, svc, bobID, "bobの計画")

		result, err := svc.GetUserProjects(context.Background(), aliceID)
		if err != nil {
			t.Fatalf("一覧取得に失敗: %v", err)
		}

		projects, ok := result["projects"].([]map[string]any)
		if !ok {
			t.Fatalf("projectsフィールドが配列でない: %v", result)
		}
		if len(projects) != 2 {
			t.Fatalf("プロジェクト数 = %d, want 2", len(projects))
		}
		for _, p := range projects {
			if p["user_id"] != aliceID {
				t.Errorf("他ユーザーのプロジェクトが含まれる: %v", p)
			}
		}
	})

	t.Run("プロジェクトが無い場合は空配列が返ること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "empty@example.com")

		result, err := svc.GetUserProjects(context.Background(), userID)
		if err != nil {
			t.Fatalf("一覧取得に失敗: %v", err)
		}

		projects, ok := result["projects"].([]map[string]any)
		if !ok {
			t.Fatalf("projectsフィールドが配列でない: %v", result)
		}
		if len(projects) != 0 {
			t.Errorf("プロジェクト数 = %d, want 0", len(projects))
		}
	})
}

// TestGetProject は単一プロジェクトの取得を検証する。
func TestGetProject(t *testing.T) {
	t.Parallel()

	t.Run("所有するプロジェクトが取得できること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "get@example.com")
		projectID := createTestProject(t, svc, userID, "取得テスト")

		result, err := svc.GetProject(context.Background(), userID, projectID)
		if err != nil {
			t.Fatalf("取得に失敗: %v", err)
		}

		project, ok := result["project"].(map[string]any)
		if !ok {
			t.Fatalf("projectフィールドがマップでない: %v", result)
		}
		if project["id"] != projectID {
			t.Errorf("id = %q, want %q", project["id"], projectID)
		}
	})

	t.Run("存在しないプロジェクトはエラーになること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "missing@example.com")

		_, err := svc.GetProject(context.Background(), userID, "no-such-project")
		if err == nil {
			t.Fatal("存在しないプロジェクトでエラーが返らない")
		}
		if err.Error() != "プロジェクトが見つかりません" {
			t.Errorf("エラーメッセージ = %q", err.Error())
		}
	})

	t.Run("他ユーザーのプロジェクトは存在しない扱いになること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ownerID := registerTestUser(t, svc, "owner2@example.com")
		intruderID := registerTestUser(t, svc, "intruder@example.com")
		projectID := createTestProject(t, svc, ownerID, "秘密の計画")

		_, err := svc.GetProject(context.Background(), intruderID, projectID)
		if err == nil {
			t.Fatal("他ユーザーのプロジェクトでエラーが返らない")
		}
		// 所有権の有無を漏らさないため、存在しない場合と同一メッセージ
		if err.Error() != "プロジェクトが見つかりません" {
			t.Errorf("エラーメッセージ = %q", err.Error())
		}
	})
}

// TestDeleteProject はプロジェクト削除を検証する。
func TestDeleteProject(t *testing.T) {
	t.Parallel()

	t.Run("削除後は取得できないこと", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "delete@example.com")
		projectID := createTestProject(t, svc, userID, "削除テスト")

		result, err := svc.DeleteProject(context.Background(), userID, projectID)
		if err != nil {
			t.Fatalf("削除に失敗: %v", err)
		}
		if result["success"] != true {
			t.Errorf("success = %v, want true", result["success"])
		}

		if _, err := svc.GetProject(context.Background(), userID, projectID); err == nil {
			t.Error("削除済みプロジェクトが取得できた")
		}
	})

	t.Run("他ユーザーのプロジェクトは削除できないこと", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ownerID := registerTestUser(t, svc, "owner3@example.com")
		intruderID := registerTestUser(t, svc, "intruder2@example.com")
		projectID := createTestProject(t, svc, ownerID, "守られた計画")

		if _, err := svc.DeleteProject(context.Background(), intruderID, projectID); err == nil {
			t.Fatal("他ユーザーによる削除でエラーが返らない")
		}

		// 所有者からは引き続き見えること
		if _, err := svc.GetProject(context.Background(), ownerID, projectID); err != nil {
			t.Errorf("所有者からの取得に失敗: %v", err)
		}
	})

	t.Run("削除で関連データも連鎖削除されること", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		userID := registerTestUser(t, svc, "cascade@example.com")
		projectID := createTestProject(t, svc, userID, "連鎖削除テスト")

		storeBody := `{"records":[{"key":"k1","value":{"n":1}}]}`
		if _, err := svc.StoreProjectData(context.Background(), userID, projectID, json.RawMessage(storeBody)); err != nil {
			t.Fatalf("データ保存に失敗: %v", err)
		}

		if _, err := svc.DeleteProject(context.Background(), userID, projectID); err != nil {
			t.Fatalf("削除に失敗: %v", err)
		}

		var count int
		if err := svc.db.QueryRow("SELECT COUNT(*) FROM data_records WHERE project_id = ?", projectID).Scan(&count); err != nil {
			t.Fatalf("件数の取得に失敗: %v", err)
		}
		if count != 0 {
			t.Errorf("データレコードが残っている: %d件", count)
		}
	})
}
