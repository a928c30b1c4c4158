package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lesterphillip/jatts/pkg/recipe"
)

func main() {
	// ログ設定
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("レシピの実行に失敗しました。", "error", err)
		os.Exit(1)
	}
}

// newRootCmd はレシピドライバの CLI を組み立てます。
// フラグは viper に束縛され、既定値 < 設定ファイル < 環境変数 < フラグ の
// 優先順で解決されます。
func newRootCmd() *cobra.Command {
	v := viper.New()
	d := recipe.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "jatts",
		Short:         "日本語マルチスピーカーTTSレシピのステージドライバ",
		Long:          "コーパス取得からデータ準備・特徴量抽出・トークナイズ・学習・デコード・評価までを、ステージゲートで区切って実行します。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.Int("stage", d.Stage, "実行を開始するステージ番号 (-1..5)")
	flags.Int("stop_stage", d.StopStage, "実行を終了するステージ番号 (-1..5)")
	flags.Int("n_jobs", d.NJobs, "サブセットごとの並列ジョブ数")
	flags.Int("n_gpus", d.NGPUs, "学習・デコードに使う GPU 数")
	flags.String("data_dir", d.DataDir, "マニフェストのルートディレクトリ")
	flags.String("dump_dir", d.DumpDir, "特徴量ダンプのルートディレクトリ")
	flags.String("exp_dir", d.ExpDir, "実験ディレクトリの親")
	flags.String("download_dir", d.DownloadDir, "コーパスアーカイブの取得先")
	flags.String("train_config", d.TrainConfig, "学習ハイパーパラメータ設定ファイル")
	flags.String("decode_config", d.DecodeConfig, "デコードハイパーパラメータ設定ファイル")
	flags.String("checkpoint", "", "デコードに使うチェックポイント (空なら最新を自動選択)")
	flags.String("token_type", d.TokenType, "トークン種別 (phn または char)")
	flags.String("cleaner", d.Cleaner, "テキストクリーナー")
	flags.String("g2p", d.G2P, "書記素-音素変換方式")
	flags.String("vocoder", d.Vocoder, "ボコーダの選択")
	flags.String("tag", "", "実験ディレクトリ名に使うタグ (空なら設定ファイル名)")
	flags.String("train_set", d.TrainSet, "学習サブセット名")
	flags.String("dev_set", d.DevSet, "開発サブセット名")
	flags.String("test_set", d.TestSet, "テストサブセット名")
	flags.String("eval_set", d.EvalSet, "評価サブセット名 (空なら test_set)")
	flags.StringSlice("corpus_urls", nil, "コーパスアーカイブの取得元 URL")
	flags.Bool("dry_run", false, "副作用なしで実行計画のみを表示する")
	flags.String("config", "", "レシピ設定ファイル (YAML)")
	flags.Bool("verbose", false, "デバッグログを有効にする")

	if err := v.BindPFlags(flags); err != nil {
		// フラグ束縛の失敗はプログラミングエラー
		panic(err)
	}

	// cmd.sh 相当のランチャー設定は環境変数からも受け取る
	_ = v.BindEnv("train_cmd", "TRAIN_CMD")
	_ = v.BindEnv("cuda_cmd", "CUDA_CMD")

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	if v.GetBool("verbose") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	// .env があればランチャー設定などを環境へ取り込む (存在しなければ無視)
	if err := godotenv.Load(); err == nil {
		slog.Info(".env を読み込みました")
	}

	recipe.SetDefaults(v)

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("設定ファイルの読み込みに失敗しました (%s): %w", cfgFile, err)
		}
		slog.Info("設定ファイルを読み込みました", "path", cfgFile)
	}

	cfg, err := recipe.FromViper(v)
	if err != nil {
		return err
	}

	executor, err := recipe.NewExecutor(cfg)
	if err != nil {
		return err
	}

	if err := executor.Run(cmd.Context()); err != nil {
		return err
	}

	slog.Info("✅ レシピが正常に完了しました。")
	return nil
}
