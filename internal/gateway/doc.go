// Package gateway はHTTP gatewayサーバーの内部実装を提供する。
//
// 認証ゲート、宣言的なルートテーブル、ディスパッチャ、レスポンス
// エンベロープを担当する。受信リクエストをルートテーブルで解決し、
// 保護されたルートでは認証ゲートを通過させた上で、注入された
// バックエンドの操作を呼び出す。結果とエラーは統一されたJSON
// エンベロープに正規化される。
package gateway
