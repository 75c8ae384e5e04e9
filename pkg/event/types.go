// Package event はバックエンドの監査イベントの型とシリアライズを提供する。
//
// ユーザー登録・プロジェクト操作・データ保存などの状態変更は、
// この構造体としてイベントテーブルに追記される。
package event

import (
	"encoding/json"
	"time"
)

// AggregateType はイベントの対象となるエンティティの種類を表す。
type AggregateType string

const (
	// AggregateTypeUser はユーザーエンティティを表す。
	AggregateTypeUser AggregateType = "User"
	// AggregateTypeProject はプロジェクトエンティティを表す。
	AggregateTypeProject AggregateType = "Project"
)

// Type はイベントの種類を表す。
type Type string

const (
	// TypeUserRegistered は新規ユーザーが登録されたことを表す。
	TypeUserRegistered Type = "UserRegistered"
	// TypeUserLoggedIn はユーザーがログインしたことを表す。
	TypeUserLoggedIn Type = "UserLoggedIn"

	// TypeProjectCreated はプロジェクトが作成されたことを表す。
	TypeProjectCreated Type = "ProjectCreated"
	// TypeProjectDeleted はプロジェクトが削除されたことを表す。
	TypeProjectDeleted Type = "ProjectDeleted"
	// TypeProjectBackendConfigured はプロジェクトのバックエンド設定が保存されたことを表す。
	TypeProjectBackendConfigured Type = "ProjectBackendConfigured"
	// TypeProjectBackendTested はプロジェクトのバックエンド接続テストが実行されたことを表す。
	TypeProjectBackendTested Type = "ProjectBackendTested"
	// TypeDataStored はプロジェクトにデータレコードが保存されたことを表す。
	TypeDataStored Type = "DataStored"
)

// Event は監査ログにおける不変のイベントレコードを表す。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// AggregateID は対象エンティティの識別子。
	AggregateID string `json:"aggregate_id"`
	// AggregateType は対象エンティティの種類。
	AggregateType AggregateType `json:"aggregate_type"`
	// EventType はイベントの種類。
	EventType Type `json:"event_type"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// UserRegisteredData はUserRegisteredイベントのデータ。
type UserRegisteredData struct {
	// Email は登録されたメールアドレス。
	Email string `json:"email"`
	// DisplayName は表示名。
	DisplayName string `json:"display_name"`
}

// UserLoggedInData はUserLoggedInイベントのデータ。
type UserLoggedInData struct {
	// Email はログインしたユーザーのメールアドレス。
	Email string `json:"email"`
}

// ProjectCreatedData はProjectCreatedイベントのデータ。
type ProjectCreatedData struct {
	// UserID はプロジェクトを作成したユーザーのID。
	UserID string `json:"user_id"`
	// Name はプロジェクト名。
	Name string `json:"name"`
}

// ProjectDeletedData はProjectDeletedイベントのデータ。
type ProjectDeletedData struct {
	// UserID はプロジェクトを削除したユーザーのID。
	UserID string `json:"user_id"`
}

// ProjectBackendConfiguredData はProjectBackendConfiguredイベントのデータ。
type ProjectBackendConfiguredData struct {
	// UserID は設定を行ったユーザーのID。
	UserID string `json:"user_id"`
	// BackendType は設定されたバックエンドの種類。
	BackendType string `json:"backend_type"`
	// URL は設定されたバックエンドのURL。
	URL string `json:"url"`
}

// ProjectBackendTestedData はProjectBackendTestedイベントのデータ。
type ProjectBackendTestedData struct {
	// UserID はテストを実行したユーザーのID。
	UserID string `json:"user_id"`
	// Reachable はバックエンドへの到達に成功したかどうか。
	Reachable bool `json:"reachable"`
}

// DataStoredData はDataStoredイベントのデータ。
type DataStoredData struct {
	// UserID はデータを保存したユーザーのID。
	UserID string `json:"user_id"`
	// Collection は保存先のコレクション名。
	Collection string `json:"collection"`
	// Count は保存されたレコード数。
	Count int `json:"count"`
}
