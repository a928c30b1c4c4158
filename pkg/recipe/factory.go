package recipe

import (
	"context"
	"log/slog"

	"github.com/lesterphillip/jatts/pkg/recipe/download"
	"github.com/lesterphillip/jatts/pkg/recipe/job"
	"github.com/lesterphillip/jatts/pkg/recipe/layout"
	"github.com/lesterphillip/jatts/pkg/recipe/tool"
)

// ----------------------------------------------------------------------
// No-op パターン (ドライラン)
// ----------------------------------------------------------------------

// noopExecutor は Executor インターフェースを満たすドライラン実装です。
// 副作用なしで実行計画のみをログ出力します。
type noopExecutor struct {
	cfg Config
}

// Run は範囲内のステージを列挙するだけで、外部ツールもディスクも触りません。
func (n *noopExecutor) Run(ctx context.Context, opts ...RunOption) error {
	rc := newRunConfig()
	for _, opt := range opts {
		opt(rc)
	}

	log := slog.With("run_id", rc.RunID)
	log.InfoContext(ctx, "ドライラン: 実行計画のみを表示します",
		"stage", n.cfg.Stage, "stop_stage", n.cfg.StopStage)

	for s := StageDownload; s <= StageEval; s++ {
		if !s.InRange(n.cfg.Stage, n.cfg.StopStage) {
			continue
		}
		log.InfoContext(ctx, "ドライラン: 実行予定のステージ", "stage", int(s), "name", s.String())
	}
	return nil
}

// ----------------------------------------------------------------------
// Factory 関数
// ----------------------------------------------------------------------

// NewExecutor は設定を検証し、依存コンポーネント (外部ツールランナー・
// バッチランナー・ダウンロードクライアント・レイアウト) を組み立てて
// Executor インターフェースを実装した具象型を返します。
// DryRun が指定された場合は No-op 実装を返します。
func NewExecutor(cfg Config) (Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DryRun {
		slog.Info("ドライランが指定されました。No-op Executorを返します。")
		return &noopExecutor{cfg: cfg}, nil
	}

	lay := layout.New(cfg.DataDir, cfg.DumpDir, cfg.ExpDir, cfg.DownloadDir)
	execRunner := tool.NewExecRunner()
	batch := job.NewRunner(execRunner, cfg.NJobs)
	fetch := download.NewClient(download.DefaultTimeout)

	slog.Info("レシピエンジンの初期化が完了しました",
		"n_jobs", cfg.NJobs, "n_gpus", cfg.NGPUs,
		"token_type", cfg.TokenType, "cleaner", cfg.Cleaner, "vocoder", cfg.Vocoder)

	return NewEngine(cfg, execRunner, batch, fetch, lay), nil
}
