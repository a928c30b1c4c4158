package recipe

// ----------------------------------------------------------------------
// 外部ツールのエントリポイント
// ----------------------------------------------------------------------

// 外部ツールはすべて不透明な実行可能ファイルとして扱います。
// 内部仕様 (特徴量の数式やモデル構造) はこのモジュールの関心外です。

const (
	// PythonBin はツールキットのエントリポイントを起動するインタプリタです。
	PythonBin = "python3"

	toolDataPrep          = "local/data_prep.sh"
	toolFeatureExtract    = "preprocess.py"
	toolComputeStatistics = "compute_statistics.py"
	toolNormalize         = "normalize.py"
	toolTokenize          = "tokenize_text.py"
	toolTrain             = "tts_train.py"
	toolDecode            = "tts_decode.py"
	toolEvaluate          = "tts_evaluate.py"
)

// ----------------------------------------------------------------------
// 既定値
// ----------------------------------------------------------------------

const (
	// DefaultNJobs はサブセットごとの並列ジョブ数の既定値です。
	DefaultNJobs = 16
	// DefaultNGPUs は学習・デコードに使う GPU 数の既定値です。
	DefaultNGPUs = 1
)

// TokenTypes は許可されるトークン種別の一覧です。
var TokenTypes = []string{"phn", "char"}
