package recipe

import (
	"context"
	"log/slog"
)

// runDownload はステージ -1: コーパスアーカイブの取得です。
// アーカイブ同士は独立しているため並行取得し、取得済みのものはスキップされます。
func (e *Engine) runDownload(ctx context.Context) error {
	if len(e.cfg.CorpusURLs) == 0 {
		slog.InfoContext(ctx, "コーパスURLが指定されていないため取得をスキップします")
		return nil
	}
	return e.fetch.FetchAll(ctx, e.cfg.CorpusURLs, e.lay.DownloadRoot)
}
