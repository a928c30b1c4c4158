package recipe

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
)

// runFeature はステージ 1: 特徴量抽出 + 統計 + 正規化です。
//
// 順序不変条件: 統計は学習セットの抽出済み特徴量のみから計算され、
// いかなるサブセットの正規化よりも先に完了している必要があります。
func (e *Engine) runFeature(ctx context.Context) error {
	subsets := e.cfg.AllSubsets()
	for _, subset := range subsets {
		if err := e.lay.EnsureSubsetDirs(subset); err != nil {
			return err
		}
	}

	// 1. 特徴量抽出: サブセット x ジョブ番号でファンアウトし、全件 join 後に集計
	if _, err := e.batch.RunBatch(ctx, e.featureJobs("feature_extract", subsets)); err != nil {
		return err
	}

	// 2. 統計計算: 学習セットのみ、単一ジョブ
	statsPath := e.lay.StatsPath(e.cfg.TrainSet)
	statsJob := job.Job{
		Name:    "compute_statistics",
		Command: PythonBin,
		Args: []string{
			toolComputeStatistics,
			"--feats-dir", e.lay.RawDir(e.cfg.TrainSet),
			"--out", statsPath,
		},
		LogPath: filepath.Join(e.lay.LogDir(e.cfg.TrainSet), "compute_statistics.log"),
	}
	if err := e.exec.Execute(ctx, statsJob); err != nil {
		return err
	}

	// 3. 正規化: 統計が揃ってから全サブセットをファンアウト
	if _, err := e.batch.RunBatch(ctx, e.normalizeJobs(subsets, statsPath)); err != nil {
		return err
	}
	return nil
}

// featureJobs はサブセットごとに n_jobs 個のインデックス付き抽出ジョブを構築します。
// 各ジョブは dump/<subset>/log/<phase>.<idx>.log へログを書き込みます。
func (e *Engine) featureJobs(phaseName string, subsets []string) []job.Job {
	jobs := make([]job.Job, 0, len(subsets)*e.cfg.NJobs)
	for _, subset := range subsets {
		for idx := 1; idx <= e.cfg.NJobs; idx++ {
			jobs = append(jobs, job.Job{
				Name:    fmt.Sprintf("%s.%s.%d", phaseName, subset, idx),
				Command: PythonBin,
				Args: []string{
					toolFeatureExtract,
					"--config", e.cfg.TrainConfig,
					"--manifest-dir", e.lay.DataDir(subset),
					"--outdir", e.lay.RawDir(subset),
					"--n-jobs", strconv.Itoa(e.cfg.NJobs),
					"--job-index", strconv.Itoa(idx),
				},
				LogPath: filepath.Join(e.lay.LogDir(subset), fmt.Sprintf("%s.%d.log", phaseName, idx)),
			})
		}
	}
	return jobs
}

// normalizeJobs は統計ファイルを使った正規化ジョブをサブセットごとに構築します。
func (e *Engine) normalizeJobs(subsets []string, statsPath string) []job.Job {
	jobs := make([]job.Job, 0, len(subsets)*e.cfg.NJobs)
	for _, subset := range subsets {
		for idx := 1; idx <= e.cfg.NJobs; idx++ {
			jobs = append(jobs, job.Job{
				Name:    fmt.Sprintf("normalize.%s.%d", subset, idx),
				Command: PythonBin,
				Args: []string{
					toolNormalize,
					"--stats", statsPath,
					"--in-dir", e.lay.RawDir(subset),
					"--outdir", e.lay.NormDir(subset),
					"--n-jobs", strconv.Itoa(e.cfg.NJobs),
					"--job-index", strconv.Itoa(idx),
				},
				LogPath: filepath.Join(e.lay.LogDir(subset), fmt.Sprintf("normalize.%d.log", idx)),
			})
		}
	}
	return jobs
}
