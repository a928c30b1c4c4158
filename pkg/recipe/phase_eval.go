package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
)

// runEvaluate はステージ 5: 評価です。
// デコード済み音声と正解マニフェストを外部評価ツールへ渡し、
// 実験ディレクトリ配下にサブセットごとの結果を書き出します。
func (e *Engine) runEvaluate(ctx context.Context) error {
	expDir := e.expDir()

	for _, subset := range e.cfg.DecodeSets() {
		decodeDir := e.lay.DecodeDir(expDir, subset)
		if _, err := os.Stat(decodeDir); err != nil {
			return &ErrMissingArtifact{
				Path: decodeDir,
				Hint: fmt.Sprintf("先にステージ %d (%s) を実行してください", int(StageDecode), StageDecode),
			}
		}

		resultsDir := e.lay.ResultsDir(expDir, subset)
		if err := os.MkdirAll(resultsDir, 0755); err != nil {
			return fmt.Errorf("評価結果ディレクトリの作成に失敗しました (%s): %w", resultsDir, err)
		}

		j := job.Job{
			Name:    "evaluate." + subset,
			Command: PythonBin,
			Args: []string{
				toolEvaluate,
				"--generated", decodeDir,
				"--groundtruth", e.lay.DataDir(subset),
				"--outdir", resultsDir,
			},
			LogPath: filepath.Join(expDir, fmt.Sprintf("evaluate_%s.log", subset)),
		}
		if err := e.exec.Execute(ctx, j); err != nil {
			return err
		}
	}
	return nil
}
