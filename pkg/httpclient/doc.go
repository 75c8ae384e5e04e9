// Package httpclient は外部HTTPサービスとのJSON通信を行うクライアントを提供する。
//
// プロジェクトに設定されたバックエンドへの接続テストなど、
// gateway から外部サービスを呼び出す際の通信パターンを統一する。
package httpclient
