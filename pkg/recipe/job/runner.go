package job

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ----------------------------------------------------------------------
// バッチランナー
// ----------------------------------------------------------------------

// Runner は複数のジョブをバックグラウンドで並列実行し、全件の join 後に
// 失敗数を集計するバッチランナーです。リトライや途中再開は行いません。
// 途中で 1 件が失敗しても残りのジョブは最後まで実行されます。
type Runner struct {
	exec        Executor
	maxParallel int
	limiter     *rate.Limiter
}

// NewRunner は新しい Runner を作成します。
// maxParallel が 0 以下の場合は既定値が使われます。
func NewRunner(exec Executor, maxParallel int) *Runner {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}
	return &Runner{
		exec:        exec,
		maxParallel: maxParallel,
		limiter:     rate.NewLimiter(rate.Every(DefaultLaunchInterval), 1),
	}
}

// RunBatch は全ジョブを並列実行し、ジョブごとの結果を返します。
// 1 件でも失敗があった場合は *ErrJobBatch を返します。
// 結果のスライスはジョブ名順に整列され、投入順に依存しません。
func (r *Runner) RunBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	semaphore := make(chan struct{}, r.maxParallel)
	wg := sync.WaitGroup{}
	resultsChan := make(chan Result, len(jobs))

	slog.InfoContext(ctx, "バッチ実行開始",
		"total_jobs", len(jobs), "max_parallel", r.maxParallel)

	for _, j := range jobs {
		// 起動レートとコンテキストキャンセルを監視してから子を fork する
		if err := r.limiter.Wait(ctx); err != nil {
			resultsChan <- Result{Job: j, Err: fmt.Errorf("ジョブ %s の起動待機が中断されました: %w", j.Name, err)}
			continue
		}

		select {
		case <-ctx.Done():
			resultsChan <- Result{Job: j, Err: ctx.Err()}
			continue
		case semaphore <- struct{}{}:
			// セマフォ確保成功
		}

		wg.Add(1)
		go func(j Job) {
			defer wg.Done()
			defer func() { <-semaphore }()

			start := time.Now()
			err := r.exec.Execute(ctx, j)
			resultsChan <- Result{Job: j, Err: err, Duration: time.Since(start)}
		}(j)
	}

	// join バリア: 全ジョブの終了を待ってから集計する
	wg.Wait()
	close(resultsChan)

	results := make([]Result, 0, len(jobs))
	var failures []string
	for res := range resultsChan {
		results = append(results, res)
		if res.Err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v (ログ: %s)", res.Job.Name, res.Err, res.Job.LogPath))
			slog.WarnContext(ctx, "ジョブが失敗しました",
				"job", res.Job.Name, "log", res.Job.LogPath, "error", res.Err)
		}
	}

	sort.Slice(results, func(i, k int) bool { return results[i].Job.Name < results[k].Job.Name })

	if len(failures) > 0 {
		return results, &ErrJobBatch{TotalErrors: len(failures), Details: failures}
	}

	slog.InfoContext(ctx, "バッチ実行完了", "total_jobs", len(jobs))
	return results, nil
}
