// Package logging はzapベースの構造化ロガーの生成を提供する。
//
// 本番環境ではJSON形式、開発環境では人間が読みやすいコンソール形式で
// 出力する。各パッケージはこのロガーを依存として受け取り、
// 標準出力への非構造化ログは使用しない。
package logging
