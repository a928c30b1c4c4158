package recipe

import (
	"slices"

	"github.com/spf13/viper"
)

// ----------------------------------------------------------------------
// レシピ設定
// ----------------------------------------------------------------------

// Config はレシピ実行全体を決定する不変の設定です。
// シェルレシピのグローバル変数に相当するものを、各フェーズへ明示的に
// 引き回す構造体として表現しています。解決順は
// 組み込み既定値 < 設定ファイル < 環境変数 (.env 含む) < コマンドラインフラグ。
type Config struct {
	// ステージゲート
	Stage     int `mapstructure:"stage"`
	StopStage int `mapstructure:"stop_stage"`

	// 並列度
	NJobs int `mapstructure:"n_jobs"`
	NGPUs int `mapstructure:"n_gpus"`

	// ディレクトリルート
	DataDir     string `mapstructure:"data_dir"`
	DumpDir     string `mapstructure:"dump_dir"`
	ExpDir      string `mapstructure:"exp_dir"`
	DownloadDir string `mapstructure:"download_dir"`

	// ハイパーパラメータ設定ファイルとチェックポイント
	TrainConfig  string `mapstructure:"train_config"`
	DecodeConfig string `mapstructure:"decode_config"`
	Checkpoint   string `mapstructure:"checkpoint"` // 空なら実験ディレクトリから自動選択

	// トークナイザ設定
	TokenType string `mapstructure:"token_type"` // "phn" または "char"
	Cleaner   string `mapstructure:"cleaner"`
	G2P       string `mapstructure:"g2p"`

	// ボコーダと実験タグ
	Vocoder string `mapstructure:"vocoder"`
	Tag     string `mapstructure:"tag"`

	// サブセット名
	TrainSet string `mapstructure:"train_set"`
	DevSet   string `mapstructure:"dev_set"`
	TestSet  string `mapstructure:"test_set"`
	// EvalSet はデコード・評価の対象サブセットです。
	// 未指定の場合は TestSet が使われます。
	EvalSet string `mapstructure:"eval_set"`

	// コーパスアーカイブの取得元 URL
	CorpusURLs []string `mapstructure:"corpus_urls"`

	// 学習・デコードのランチャープレフィックス (例: "slurm.pl --gpu 1")
	TrainCmd string `mapstructure:"train_cmd"`
	CudaCmd  string `mapstructure:"cuda_cmd"`

	// DryRun が真の場合、副作用なしで実行計画のみをログ出力します。
	DryRun bool `mapstructure:"dry_run"`
}

// DefaultConfig は組み込み既定値を返します。
func DefaultConfig() Config {
	return Config{
		Stage:        int(StageDownload),
		StopStage:    int(StageEval),
		NJobs:        DefaultNJobs,
		NGPUs:        DefaultNGPUs,
		DataDir:      "data",
		DumpDir:      "dump",
		ExpDir:       "exp",
		DownloadDir:  "downloads",
		TrainConfig:  "conf/train.yaml",
		DecodeConfig: "conf/decode.yaml",
		TokenType:    "phn",
		Cleaner:      "tacotron",
		G2P:          "pyopenjtalk_prosody",
		Vocoder:      "hifigan",
		TrainSet:     "train",
		DevSet:       "dev",
		TestSet:      "eval",
	}
}

// SetDefaults は既定値を viper に登録します。
// フラグ・設定ファイル・環境変数による上書きはこの上に重なります。
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("stage", d.Stage)
	v.SetDefault("stop_stage", d.StopStage)
	v.SetDefault("n_jobs", d.NJobs)
	v.SetDefault("n_gpus", d.NGPUs)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("dump_dir", d.DumpDir)
	v.SetDefault("exp_dir", d.ExpDir)
	v.SetDefault("download_dir", d.DownloadDir)
	v.SetDefault("train_config", d.TrainConfig)
	v.SetDefault("decode_config", d.DecodeConfig)
	v.SetDefault("checkpoint", d.Checkpoint)
	v.SetDefault("token_type", d.TokenType)
	v.SetDefault("cleaner", d.Cleaner)
	v.SetDefault("g2p", d.G2P)
	v.SetDefault("vocoder", d.Vocoder)
	v.SetDefault("tag", d.Tag)
	v.SetDefault("train_set", d.TrainSet)
	v.SetDefault("dev_set", d.DevSet)
	v.SetDefault("test_set", d.TestSet)
	v.SetDefault("eval_set", d.EvalSet)
	v.SetDefault("corpus_urls", d.CorpusURLs)
	v.SetDefault("train_cmd", d.TrainCmd)
	v.SetDefault("cuda_cmd", d.CudaCmd)
	v.SetDefault("dry_run", d.DryRun)
}

// FromViper は解決済みの viper インスタンスから Config を構築し検証します。
func FromViper(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, &ErrInvalidConfig{Field: "(unmarshal)", Reason: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate は設定の静的検証を行います。
func (c Config) Validate() error {
	if c.Stage > c.StopStage {
		return &ErrInvalidConfig{Field: "stage", Reason: "stage は stop_stage 以下である必要があります"}
	}
	if c.NJobs < 1 {
		return &ErrInvalidConfig{Field: "n_jobs", Reason: "1 以上である必要があります"}
	}
	if c.NGPUs < 0 {
		return &ErrInvalidConfig{Field: "n_gpus", Reason: "0 以上である必要があります"}
	}
	if c.TrainSet == "" || c.DevSet == "" || c.TestSet == "" {
		return &ErrInvalidConfig{Field: "train_set/dev_set/test_set", Reason: "サブセット名は空にできません"}
	}
	if !slices.Contains(TokenTypes, c.TokenType) {
		return &ErrInvalidConfig{Field: "token_type", Reason: "phn または char を指定してください"}
	}
	return nil
}

// ----------------------------------------------------------------------
// サブセットの導出
// ----------------------------------------------------------------------

// EvalSetName は評価対象サブセットを返します。EvalSet 未指定時は TestSet です。
func (c Config) EvalSetName() string {
	if c.EvalSet != "" {
		return c.EvalSet
	}
	return c.TestSet
}

// AllSubsets はデータ準備・特徴量処理の対象となる全サブセットを
// 重複なし・定義順で返します。
func (c Config) AllSubsets() []string {
	return dedup([]string{c.TrainSet, c.DevSet, c.TestSet, c.EvalSetName()})
}

// DecodeSets はデコード・評価の対象サブセットを返します。
func (c Config) DecodeSets() []string {
	return dedup([]string{c.DevSet, c.EvalSetName()})
}

func dedup(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
