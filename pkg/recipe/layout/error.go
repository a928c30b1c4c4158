package layout

import "fmt"

// ErrNoCheckpoint は実験ディレクトリ内に選択可能なチェックポイントが
// 1 件も存在しないことを示します。
type ErrNoCheckpoint struct {
	ExpDir     string
	WrappedErr error
}

func (e *ErrNoCheckpoint) Error() string {
	if e.WrappedErr != nil {
		return fmt.Sprintf("実験ディレクトリ %s からチェックポイントを探索できません: %v", e.ExpDir, e.WrappedErr)
	}
	return fmt.Sprintf("実験ディレクトリ %s にチェックポイント (*%s) が見つかりません", e.ExpDir, CheckpointExt)
}

func (e *ErrNoCheckpoint) Unwrap() error { return e.WrappedErr }
