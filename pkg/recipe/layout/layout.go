package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ----------------------------------------------------------------------
// ディレクトリ規約定数
// ----------------------------------------------------------------------

const (
	// RawDirName は特徴量抽出の出力ディレクトリ名です。
	RawDirName = "raw"
	// NormDirName は正規化済み特徴量の出力ディレクトリ名です。
	NormDirName = "norm"
	// LogDirName はサブセットごとのジョブログ置き場です。
	LogDirName = "log"

	// StatsFileName は学習セットから計算される統計量ファイル名です。
	StatsFileName = "stats.json"
	// TokenListFileName はトークン一覧 (語彙) ファイル名です。
	TokenListFileName = "tokens.txt"

	// CheckpointExt は学習済みモデルのスナップショット拡張子です。
	CheckpointExt = ".pth"
)

// ----------------------------------------------------------------------
// Layout 構造体
// ----------------------------------------------------------------------

// Layout はレシピが生成・消費する全アーティファクトのディレクトリ規約を保持します。
// 各フェーズはこの規約を通してのみディスク上の位置を解決します。
type Layout struct {
	DataRoot     string // コーパスのマニフェスト (data/<subset>)
	DumpRoot     string // 特徴量ダンプ (dump/<subset>/{raw,norm,log})
	ExpRoot      string // 実験ディレクトリの親 (exp/<expname>)
	DownloadRoot string // コーパスアーカイブの取得先
}

// New は各ルートディレクトリから Layout を作成します。
func New(dataRoot, dumpRoot, expRoot, downloadRoot string) *Layout {
	return &Layout{
		DataRoot:     dataRoot,
		DumpRoot:     dumpRoot,
		ExpRoot:      expRoot,
		DownloadRoot: downloadRoot,
	}
}

// DataDir はサブセットのマニフェストディレクトリを返します。
func (l *Layout) DataDir(subset string) string {
	return filepath.Join(l.DataRoot, subset)
}

// RawDir はサブセットの抽出済み特徴量ディレクトリを返します。
func (l *Layout) RawDir(subset string) string {
	return filepath.Join(l.DumpRoot, subset, RawDirName)
}

// NormDir はサブセットの正規化済み特徴量ディレクトリを返します。
func (l *Layout) NormDir(subset string) string {
	return filepath.Join(l.DumpRoot, subset, NormDirName)
}

// LogDir はサブセットのジョブログディレクトリを返します。
func (l *Layout) LogDir(subset string) string {
	return filepath.Join(l.DumpRoot, subset, LogDirName)
}

// StatsPath は学習セットの特徴量統計ファイルのパスを返します。
// 統計は学習セットのみから計算され、全サブセットの正規化に使われます。
func (l *Layout) StatsPath(trainSet string) string {
	return filepath.Join(l.DumpRoot, trainSet, StatsFileName)
}

// TokenListPath はトークン種別とクリーナーで一意なトークン一覧のパスを返します。
func (l *Layout) TokenListPath(tokenType, cleaner string) string {
	return filepath.Join(l.DataRoot, "token_list", fmt.Sprintf("%s_%s", tokenType, cleaner), TokenListFileName)
}

// EnsureSubsetDirs はサブセットの raw/norm/log ディレクトリを作成します。
func (l *Layout) EnsureSubsetDirs(subset string) error {
	for _, dir := range []string{l.RawDir(subset), l.NormDir(subset), l.LogDir(subset)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ディレクトリの作成に失敗しました (%s): %w", dir, err)
		}
	}
	return nil
}

// ----------------------------------------------------------------------
// 実験ディレクトリ命名規約
// ----------------------------------------------------------------------

// ExpName は実験ディレクトリ名を導出します。
// tag が空の場合は設定ファイルのベース名 (拡張子なし) が、
// 非空の場合は tag がそのまま末尾要素になります。
func ExpName(tokenType, cleaner, tag, trainConfig string) string {
	suffix := tag
	if suffix == "" {
		base := filepath.Base(trainConfig)
		suffix = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fmt.Sprintf("%s_%s_%s", tokenType, cleaner, suffix)
}

// ExpDir は実験ディレクトリの絶対位置を返します。
func (l *Layout) ExpDir(tokenType, cleaner, tag, trainConfig string) string {
	return filepath.Join(l.ExpRoot, ExpName(tokenType, cleaner, tag, trainConfig))
}

// DecodeDir は実験ディレクトリ配下のサブセットごとのデコード出力先を返します。
func (l *Layout) DecodeDir(expDir, subset string) string {
	return filepath.Join(expDir, "decode", subset)
}

// ResultsDir は評価結果の出力先を返します。
func (l *Layout) ResultsDir(expDir, subset string) string {
	return filepath.Join(expDir, "results", subset)
}

// ----------------------------------------------------------------------
// チェックポイント自動選択
// ----------------------------------------------------------------------

// FindLatestCheckpoint は実験ディレクトリ直下から最終更新時刻が最も新しい
// チェックポイントファイルを選択します。更新時刻が同一の場合はファイル名の
// 辞書順で決定的に解決します。1 件も見つからない場合は ErrNoCheckpoint を返します。
func FindLatestCheckpoint(expDir string) (string, error) {
	entries, err := os.ReadDir(expDir)
	if err != nil {
		return "", &ErrNoCheckpoint{ExpDir: expDir, WrappedErr: err}
	}

	var (
		bestPath string
		bestName string
		bestMod  int64 = -1
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), CheckpointExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime().UnixNano()
		if mod > bestMod || (mod == bestMod && entry.Name() > bestName) {
			bestMod = mod
			bestName = entry.Name()
			bestPath = filepath.Join(expDir, entry.Name())
		}
	}

	if bestPath == "" {
		return "", &ErrNoCheckpoint{ExpDir: expDir}
	}
	return bestPath, nil
}
