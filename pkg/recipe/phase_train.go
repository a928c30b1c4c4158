package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
	"github.com/lesterphillip/jatts/pkg/recipe/tool"
)

// runTrain はステージ 3: 学習です。
// トークン一覧と正規化済みの学習・開発セットを前提とし、外部トレーナーを
// train_cmd / cuda_cmd ランチャー経由で起動します。
func (e *Engine) runTrain(ctx context.Context) error {
	tokenListPath := e.lay.TokenListPath(e.cfg.TokenType, e.cfg.Cleaner)
	if _, err := os.Stat(tokenListPath); err != nil {
		return &ErrMissingArtifact{
			Path: tokenListPath,
			Hint: fmt.Sprintf("先にステージ %d (%s) を実行してください", int(StageToken), StageToken),
		}
	}

	expDir := e.expDir()
	if err := os.MkdirAll(expDir, 0755); err != nil {
		return fmt.Errorf("実験ディレクトリの作成に失敗しました (%s): %w", expDir, err)
	}

	// 再現性のため、解決済みのハイパーパラメータ設定を実験ディレクトリへ複製する
	if err := snapshotConfig(e.cfg.TrainConfig, filepath.Join(expDir, "config.yaml")); err != nil {
		return err
	}

	j := tool.WithLauncher(e.launcherPrefix(), job.Job{
		Name:    "tts_train",
		Command: PythonBin,
		Args: []string{
			toolTrain,
			"--config", e.cfg.TrainConfig,
			"--train-dumpdir", e.lay.NormDir(e.cfg.TrainSet),
			"--dev-dumpdir", e.lay.NormDir(e.cfg.DevSet),
			"--token-list", tokenListPath,
			"--outdir", expDir,
			"--n-gpus", strconv.Itoa(e.cfg.NGPUs),
		},
		LogPath: filepath.Join(expDir, "train.log"),
	})
	return e.exec.Execute(ctx, j)
}

// snapshotConfig はハイパーパラメータ YAML を検証しつつ実験ディレクトリへ複製します。
// 不正な YAML は学習を起動する前にここで検出されます。
func snapshotConfig(srcPath, destPath string) error {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return &ErrMissingArtifact{Path: srcPath, Hint: "学習設定ファイルを指定してください"}
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidConfig{Field: "train_config", Reason: fmt.Sprintf("YAMLとして解釈できません: %v", err)}
	}

	snapshot, err := yaml.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("設定スナップショットの生成に失敗しました: %w", err)
	}
	return os.WriteFile(destPath, snapshot, 0644)
}
