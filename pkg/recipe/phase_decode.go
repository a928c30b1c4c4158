package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
	"github.com/lesterphillip/jatts/pkg/recipe/layout"
	"github.com/lesterphillip/jatts/pkg/recipe/tool"
)

// runDecode はステージ 4: デコードです。
// チェックポイントは明示指定が優先され、未指定の場合は実験ディレクトリ内で
// 最終更新時刻が最も新しいものが自動選択されます。見つからなければ中断します。
func (e *Engine) runDecode(ctx context.Context) error {
	expDir := e.expDir()

	ckpt := e.cfg.Checkpoint
	if ckpt == "" {
		found, err := layout.FindLatestCheckpoint(expDir)
		if err != nil {
			return err
		}
		ckpt = found
	} else if _, err := os.Stat(ckpt); err != nil {
		return &ErrMissingArtifact{Path: ckpt, Hint: "指定されたチェックポイントが存在しません"}
	}

	tokenListPath := e.lay.TokenListPath(e.cfg.TokenType, e.cfg.Cleaner)

	for _, subset := range e.cfg.DecodeSets() {
		outDir := e.lay.DecodeDir(expDir, subset)
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("デコード出力ディレクトリの作成に失敗しました (%s): %w", outDir, err)
		}

		j := tool.WithLauncher(e.launcherPrefix(), job.Job{
			Name:    "tts_decode." + subset,
			Command: PythonBin,
			Args: []string{
				toolDecode,
				"--config", e.cfg.DecodeConfig,
				"--dumpdir", e.lay.NormDir(subset),
				"--checkpoint", ckpt,
				"--token-list", tokenListPath,
				"--vocoder", e.cfg.Vocoder,
				"--outdir", outDir,
			},
			LogPath: filepath.Join(expDir, fmt.Sprintf("decode_%s.log", subset)),
		})
		if err := e.exec.Execute(ctx, j); err != nil {
			return err
		}
	}
	return nil
}
