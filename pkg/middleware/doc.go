// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// セッション認証ゲート、構造化リクエストログ、パニックリカバリ、
// CORS設定など、gatewayサーバーで共通して使用するミドルウェアを含む。
package middleware
