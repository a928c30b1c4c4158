package recipe

import "fmt"

// ----------------------------------------------------------------------
// 設定・アーティファクトエラー
// ----------------------------------------------------------------------

// ErrInvalidConfig は設定値の解決または検証に失敗したことを示します。
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("設定 %s が不正です: %s", e.Field, e.Reason)
}

// ErrMissingArtifact は依存ステージを起動する前に、必須の入力ファイルや
// チェックポイントが存在しないことを示します。検出時点で実行全体を中断します。
type ErrMissingArtifact struct {
	Path string
	Hint string // 例: "先にステージ 2 (tokenize) を実行してください"
}

func (e *ErrMissingArtifact) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("必須アーティファクト %s が見つかりません (%s)", e.Path, e.Hint)
	}
	return fmt.Sprintf("必須アーティファクト %s が見つかりません", e.Path)
}
