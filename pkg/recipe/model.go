package recipe

import "context"

// ----------------------------------------------------------------------
// インターフェース
// ----------------------------------------------------------------------

// Executor はレシピを最初から最後まで実行するための契約を定義します。
// オプション (例: 実行 ID) は Functional Options Pattern を通じて提供されます。
type Executor interface {
	// Run はステージゲートの範囲内の全フェーズを順に実行します。
	// いずれかのフェーズが失敗した時点で実行全体を中断しエラーを返します。
	Run(ctx context.Context, opts ...RunOption) error
}

// Fetcher はコーパスアーカイブの一括取得を抽象化します。
// download.Client がこれを満たします。
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string, destDir string) error
}
