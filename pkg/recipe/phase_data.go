package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
)

// runDataPrep はステージ 0: データ準備です。
// サブセットごとに外部の準備スクリプトを起動し、data/<subset> 配下へ
// マニフェストを生成させます。サブセット間に依存はなく逐次実行します。
func (e *Engine) runDataPrep(ctx context.Context) error {
	for _, subset := range e.cfg.AllSubsets() {
		dataDir := e.lay.DataDir(subset)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("データディレクトリの作成に失敗しました (%s): %w", dataDir, err)
		}

		j := job.Job{
			Name:    "data_prep." + subset,
			Command: "bash",
			Args:    []string{toolDataPrep, e.lay.DownloadRoot, subset, dataDir},
			LogPath: filepath.Join(dataDir, "data_prep.log"),
		}
		if err := e.exec.Execute(ctx, j); err != nil {
			return err
		}
	}
	return nil
}
