package job

import (
	"context"
	"time"
)

// ----------------------------------------------------------------------
// データモデル (ジョブ記述)
// ----------------------------------------------------------------------

// Job は外部ツールの 1 回の起動を表す型付きのジョブ記述です。
// ログはサイドエフェクトではなく LogPath に明示的に紐付けられます。
type Job struct {
	Name    string   // 例: "feature_extract.train.3"
	Command string   // 例: "python3"
	Args    []string // コマンド引数
	LogPath string   // ジョブの標準出力・標準エラーの書き込み先 (空なら破棄)
}

// Result はバッチ実行における 1 ジョブ分の実行結果です。
type Result struct {
	Job      Job
	Err      error
	Duration time.Duration
}

// Executor は単一ジョブを実行する契約を定義します。
// os/exec 実装 (tool パッケージ) とテスト用フェイクの両方がこれを満たします。
type Executor interface {
	Execute(ctx context.Context, j Job) error
}

// ----------------------------------------------------------------------
// 実行定数
// ----------------------------------------------------------------------

const (
	// DefaultMaxParallel はバッチ実行時の同時実行数の既定値です。
	DefaultMaxParallel = 4

	// DefaultLaunchInterval はジョブ起動間の最小間隔です。
	// 大量の子プロセスを同時に fork して I/O が飽和するのを避けるための制限です。
	DefaultLaunchInterval = 100 * time.Millisecond
)
