package recipe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
	"github.com/lesterphillip/jatts/pkg/recipe/layout"
)

// ----------------------------------------------------------------------
// Run メソッド用のオプション定義 (Functional Options Pattern)
// ----------------------------------------------------------------------

// RunConfig は Run メソッドの実行中に適用されるオプション設定を保持します。
type RunConfig struct {
	RunID string
}

// RunOption はオプションを適用するための関数シグネチャです。
type RunOption func(*RunConfig)

// newRunConfig は Run のデフォルト設定を初期化します。
func newRunConfig() *RunConfig {
	return &RunConfig{RunID: uuid.NewString()}
}

// WithRunID は自動生成の代わりに明示的な実行 ID を指定するオプションです。
func WithRunID(id string) RunOption {
	return func(rc *RunConfig) {
		if id != "" {
			rc.RunID = id
		}
	}
}

// ----------------------------------------------------------------------
// Engine 構造体
// ----------------------------------------------------------------------

// Engine はレシピの全フェーズを駆動するパイプラインエンジンです。
// 外部ツールの起動は job.Executor / job.Runner に、アーティファクトの
// 位置解決は layout.Layout に委譲します。
type Engine struct {
	cfg   Config
	exec  job.Executor
	batch *job.Runner
	fetch Fetcher
	lay   *layout.Layout
}

// NewEngine は新しい Engine インスタンスを作成し、依存関係を注入します。
func NewEngine(cfg Config, exec job.Executor, batch *job.Runner, fetch Fetcher, lay *layout.Layout) *Engine {
	return &Engine{
		cfg:   cfg,
		exec:  exec,
		batch: batch,
		fetch: fetch,
		lay:   lay,
	}
}

// phase は番号付きフェーズ 1 件分のドライバです。
type phase struct {
	stage Stage
	run   func(ctx context.Context) error
}

// phases はフェーズを序数順に返します。
func (e *Engine) phases() []phase {
	return []phase{
		{StageDownload, e.runDownload},
		{StageDataPrep, e.runDataPrep},
		{StageFeature, e.runFeature},
		{StageToken, e.runTokenize},
		{StageTrain, e.runTrain},
		{StageDecode, e.runDecode},
		{StageEval, e.runEvaluate},
	}
}

// Run は Executor インターフェースの実装です。
// ステージゲートの範囲内のフェーズを序数順に実行し、範囲外のフェーズは
// 一切の副作用なしでスキップします。最初のフェーズ失敗で実行全体を中断します。
func (e *Engine) Run(ctx context.Context, opts ...RunOption) error {
	rc := newRunConfig()
	for _, opt := range opts {
		opt(rc)
	}

	log := slog.With("run_id", rc.RunID)
	log.InfoContext(ctx, "レシピ実行開始",
		"stage", e.cfg.Stage, "stop_stage", e.cfg.StopStage,
		"exp_name", layout.ExpName(e.cfg.TokenType, e.cfg.Cleaner, e.cfg.Tag, e.cfg.TrainConfig))

	for _, ph := range e.phases() {
		if !ph.stage.InRange(e.cfg.Stage, e.cfg.StopStage) {
			log.DebugContext(ctx, "範囲外のステージをスキップします", "stage", int(ph.stage), "name", ph.stage.String())
			continue
		}

		log.InfoContext(ctx, "ステージ開始", "stage", int(ph.stage), "name", ph.stage.String())
		if err := ph.run(ctx); err != nil {
			return fmt.Errorf("ステージ %d (%s) が失敗しました: %w", int(ph.stage), ph.stage.String(), err)
		}
		log.InfoContext(ctx, "ステージ完了", "stage", int(ph.stage), "name", ph.stage.String())
	}

	log.InfoContext(ctx, "レシピ実行が正常に完了しました")
	return nil
}

// expDir は現在の設定から実験ディレクトリを解決します。
func (e *Engine) expDir() string {
	return e.lay.ExpDir(e.cfg.TokenType, e.cfg.Cleaner, e.cfg.Tag, e.cfg.TrainConfig)
}

// launcherPrefix は学習・デコードジョブに適用するランチャーを選択します。
// GPU を使う場合は cuda_cmd が、それ以外は train_cmd が優先されます。
func (e *Engine) launcherPrefix() string {
	if e.cfg.NGPUs > 0 && e.cfg.CudaCmd != "" {
		return e.cfg.CudaCmd
	}
	return e.cfg.TrainCmd
}
