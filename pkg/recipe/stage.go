package recipe

import "fmt"

// ----------------------------------------------------------------------
// ステージゲート
// ----------------------------------------------------------------------

// Stage はパイプラインの番号付きフェーズです。
// フェーズは厳密に順序付けられ、各フェーズは範囲内の先行フェーズが
// 完了しアーティファクトをディスクに残していることを前提とします。
// ゲートはこの序数規約以上の依存検査を行いません。
type Stage int

const (
	StageDownload Stage = iota - 1 // -1: コーパスアーカイブの取得
	StageDataPrep                  //  0: データ準備 (マニフェスト生成)
	StageFeature                   //  1: 特徴量抽出 + 統計 + 正規化
	StageToken                     //  2: トークン一覧の構築
	StageTrain                     //  3: 学習
	StageDecode                    //  4: デコード
	StageEval                      //  5: 評価
)

var stageNames = map[Stage]string{
	StageDownload: "download",
	StageDataPrep: "data_prep",
	StageFeature:  "feature_extract",
	StageToken:    "tokenize",
	StageTrain:    "train",
	StageDecode:   "decode",
	StageEval:     "evaluate",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// InRange はフェーズ番号 k が stage <= k <= stop_stage を満たすかを返します。
// 範囲外のフェーズは一切の副作用を持ちません。
func (s Stage) InRange(stage, stopStage int) bool {
	return stage <= int(s) && int(s) <= stopStage
}
