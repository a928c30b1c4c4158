package tool

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
)

// ----------------------------------------------------------------------
// 外部ツール実行ランナー
// ----------------------------------------------------------------------

// ExecRunner は job.Executor の os/exec 実装です。
// 外部ツール (前処理・統計・正規化・トークナイズ・学習・デコード・評価) は
// すべて不透明な実行可能ファイルとして扱い、標準出力・標準エラーを
// ジョブごとのログファイルへ書き込みます。
type ExecRunner struct{}

// NewExecRunner は新しい ExecRunner を作成します。
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Execute は単一ジョブを同期実行します。job.Executor 実装。
// LogPath が空の場合、出力は破棄されます。
func (r *ExecRunner) Execute(ctx context.Context, j job.Job) error {
	cmd := exec.CommandContext(ctx, j.Command, j.Args...)

	if j.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(j.LogPath), 0755); err != nil {
			return fmt.Errorf("ログディレクトリの作成に失敗しました (%s): %w", j.LogPath, err)
		}
		logFile, err := os.Create(j.LogPath)
		if err != nil {
			return fmt.Errorf("ログファイルの作成に失敗しました (%s): %w", j.LogPath, err)
		}
		defer logFile.Close()
		cmd.Stdout = logFile
		cmd.Stderr = logFile
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ジョブ %s のコマンド実行に失敗しました: %w", j.Name, err)
	}
	return nil
}

// ----------------------------------------------------------------------
// ランチャープレフィックス
// ----------------------------------------------------------------------

// WithLauncher はジョブに train_cmd / cuda_cmd 形式のランチャープレフィックスを
// 適用します。prefix はシェル風に空白で分割され、元のコマンドの前に挿入されます。
// 例: prefix = "slurm.pl --gpu 1" のとき
//
//	python3 tts_train.py ... -> slurm.pl --gpu 1 python3 tts_train.py ...
//
// prefix が空の場合、ジョブはそのまま返されます。
func WithLauncher(prefix string, j job.Job) job.Job {
	fields := strings.Fields(prefix)
	if len(fields) == 0 {
		return j
	}

	args := make([]string, 0, len(fields)-1+1+len(j.Args))
	args = append(args, fields[1:]...)
	args = append(args, j.Command)
	args = append(args, j.Args...)

	j.Command = fields[0]
	j.Args = args
	return j
}
