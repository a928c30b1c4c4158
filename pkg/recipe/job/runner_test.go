package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// fakeExecutor は指定された名前のジョブだけを失敗させるテスト用 Executor です。
type fakeExecutor struct {
	mu       sync.Mutex
	failFor  map[string]error
	executed []string
}

func (f *fakeExecutor) Execute(_ context.Context, j Job) error {
	f.mu.Lock()
	f.executed = append(f.executed, j.Name)
	f.mu.Unlock()
	if err, ok := f.failFor[j.Name]; ok {
		return err
	}
	return nil
}

func subsetJobs() []Job {
	return []Job{
		{Name: "extract.A", Command: "python3", LogPath: "/tmp/a.log"},
		{Name: "extract.B", Command: "python3", LogPath: "/tmp/b.log"},
		{Name: "extract.C", Command: "python3", LogPath: "/tmp/c.log"},
	}
}

func TestRunBatch_AllSuccess(t *testing.T) {
	t.Parallel()
	exec := &fakeExecutor{}
	r := NewRunner(exec, 2)

	results, err := r.RunBatch(context.Background(), subsetJobs())
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("job %s should have succeeded: %v", res.Job.Name, res.Err)
		}
	}
}

func TestRunBatch_SingleFailureIsTallied(t *testing.T) {
	t.Parallel()
	// どのサブセットが失敗しても集計結果は同じになる
	for _, failing := range []string{"extract.A", "extract.B", "extract.C"} {
		failing := failing
		t.Run(failing, func(t *testing.T) {
			t.Parallel()
			exec := &fakeExecutor{failFor: map[string]error{failing: errors.New("exit status 1")}}
			r := NewRunner(exec, 3)

			results, err := r.RunBatch(context.Background(), subsetJobs())
			if err == nil {
				t.Fatalf("expected batch error, got nil")
			}

			var batchErr *ErrJobBatch
			if !errors.As(err, &batchErr) {
				t.Fatalf("expected *ErrJobBatch, got %T: %v", err, err)
			}
			if batchErr.TotalErrors != 1 {
				t.Fatalf("expected 1 failure, got %d", batchErr.TotalErrors)
			}
			// 失敗しても残りのジョブは全て実行されている (fail-fast ではない)
			if len(results) != 3 {
				t.Fatalf("expected all 3 jobs joined, got %d results", len(results))
			}
		})
	}
}

func TestRunBatch_MultipleFailures(t *testing.T) {
	t.Parallel()
	exec := &fakeExecutor{failFor: map[string]error{
		"extract.A": errors.New("exit status 2"),
		"extract.C": errors.New("exit status 1"),
	}}
	r := NewRunner(exec, 1)

	_, err := r.RunBatch(context.Background(), subsetJobs())
	var batchErr *ErrJobBatch
	if !errors.As(err, &batchErr) {
		t.Fatalf("expected *ErrJobBatch, got %v", err)
	}
	if batchErr.TotalErrors != 2 {
		t.Fatalf("expected 2 failures, got %d", batchErr.TotalErrors)
	}
}

func TestRunBatch_EmptyBatch(t *testing.T) {
	t.Parallel()
	r := NewRunner(&fakeExecutor{}, 4)
	results, err := r.RunBatch(context.Background(), nil)
	if err != nil || results != nil {
		t.Fatalf("empty batch should be a no-op, got results=%v err=%v", results, err)
	}
}

func TestRunBatch_ResultsSortedByName(t *testing.T) {
	t.Parallel()
	exec := &fakeExecutor{}
	r := NewRunner(exec, 4)

	jobs := make([]Job, 0, 6)
	for i := 5; i >= 0; i-- {
		jobs = append(jobs, Job{Name: fmt.Sprintf("normalize.dev.%d", i)})
	}
	results, err := r.RunBatch(context.Background(), jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Job.Name > results[i].Job.Name {
			t.Fatalf("results not sorted: %s > %s", results[i-1].Job.Name, results[i].Job.Name)
		}
	}
}
