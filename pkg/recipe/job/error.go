package job

import (
	"fmt"
	"strings"
)

// ErrJobBatch はバッチ実行全体で発生した複数のジョブ失敗をまとめるカスタムエラー型です。
// 全ジョブの join 完了後に失敗数を集計し、呼び出し元へ一括で返します。
type ErrJobBatch struct {
	TotalErrors int
	Details     []string
}

func (e *ErrJobBatch) Error() string {
	return fmt.Sprintf("バッチ実行中に %d 件のジョブが失敗しました:\n- %s",
		e.TotalErrors, strings.Join(e.Details, "\n- "))
}
