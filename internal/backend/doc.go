// Package backend はgatewayから呼び出されるバックエンドサービスの実装を提供する。
//
// ユーザー登録・ログイン、プロジェクトの永続化、プロジェクトごとの
// バックエンド設定と接続テスト、データレコードの同期、ヘルスチェックを
// 担当する。永続化にはSQLiteを使用し、状態変更は監査イベントとして
// イベントテーブルに追記される。
package backend
