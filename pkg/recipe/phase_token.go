package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
)

// runTokenize はステージ 2: トークン一覧の構築です。
// 学習セットのテキストマニフェストから一度だけ語彙を構築し、
// 学習・デコード時に再利用されます。
func (e *Engine) runTokenize(ctx context.Context) error {
	textPath := filepath.Join(e.lay.DataDir(e.cfg.TrainSet), "text")
	if _, err := os.Stat(textPath); err != nil {
		return &ErrMissingArtifact{
			Path: textPath,
			Hint: fmt.Sprintf("先にステージ %d (%s) を実行してください", int(StageDataPrep), StageDataPrep),
		}
	}

	tokenListPath := e.lay.TokenListPath(e.cfg.TokenType, e.cfg.Cleaner)
	tokenDir := filepath.Dir(tokenListPath)
	if err := os.MkdirAll(tokenDir, 0755); err != nil {
		return fmt.Errorf("トークン一覧ディレクトリの作成に失敗しました (%s): %w", tokenDir, err)
	}

	j := job.Job{
		Name:    "tokenize",
		Command: PythonBin,
		Args: []string{
			toolTokenize,
			"--input", textPath,
			"--output", tokenListPath,
			"--token-type", e.cfg.TokenType,
			"--cleaner", e.cfg.Cleaner,
			"--g2p", e.cfg.G2P,
		},
		LogPath: filepath.Join(tokenDir, "tokenize.log"),
	}
	return e.exec.Execute(ctx, j)
}
