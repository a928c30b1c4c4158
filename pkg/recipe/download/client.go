package download

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/sync/errgroup"
)

// ----------------------------------------------------------------------
// 取得定数
// ----------------------------------------------------------------------

const (
	// DefaultTimeout は 1 アーカイブの取得タイムアウトです。
	// コーパスアーカイブは数 GB になることがあるため長めに設定します。
	DefaultTimeout = 30 * time.Minute

	// DefaultMaxRetries はアーカイブ単位のリトライ回数です。
	// httpkit のリクエスト単位リトライの外側で、取得全体をやり直します。
	DefaultMaxRetries = 3

	// DefaultMaxConcurrent は同時に取得するアーカイブ数の上限です。
	DefaultMaxConcurrent = 2
)

// ----------------------------------------------------------------------
// クライアント構造体とコンストラクタ
// ----------------------------------------------------------------------

// Client はコーパスアーカイブをダウンロードディレクトリへ取得するクライアントです。
// httpkit.Client を利用してリトライ機能を内包します。
type Client struct {
	client        *httpkit.Client // リトライ機能付きHTTPクライアント
	maxRetries    uint64
	maxConcurrent int
}

// NewClient は新しい Client インスタンスを初期化します。
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client:        httpkit.New(timeout),
		maxRetries:    DefaultMaxRetries,
		maxConcurrent: DefaultMaxConcurrent,
	}
}

// ----------------------------------------------------------------------
// 取得ロジック
// ----------------------------------------------------------------------

// destName は URL のパス末尾からローカルファイル名を導出します。
func destName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("アーカイブURLのパース失敗: %w", err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("アーカイブURL %s からファイル名を導出できません", rawURL)
	}
	return name, nil
}

// Fetch は 1 件のアーカイブを destDir 配下へ取得します。
// 同名ファイルが既に存在する場合は取得をスキップします (再実行の冪等性)。
func (c *Client) Fetch(ctx context.Context, rawURL, destDir string) error {
	name, err := destName(rawURL)
	if err != nil {
		return &ErrFetch{URL: rawURL, WrappedErr: err}
	}
	destPath := filepath.Join(destDir, name)

	if _, err := os.Stat(destPath); err == nil {
		slog.InfoContext(ctx, "アーカイブは取得済みのためスキップします", "path", destPath)
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return &ErrFetch{URL: rawURL, WrappedErr: fmt.Errorf("取得先ディレクトリの作成失敗: %w", err)}
	}

	// アーカイブ単位のリトライ。httpkit の内部リトライで救えない
	// 切断・途中失敗をまとめてやり直す。
	operation := func() error {
		body, err := c.client.FetchBytes(ctx, rawURL)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, body, 0644)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return &ErrFetch{URL: rawURL, WrappedErr: err}
	}

	slog.InfoContext(ctx, "アーカイブを取得しました", "url", rawURL, "path", destPath)
	return nil
}

// FetchAll は複数アーカイブを並行して取得します。
// アーカイブ同士は独立しているため、1 件の失敗で全体を即座に中断します
// (サブセットのファンアウトとは異なり fail-fast で問題ない)。
func (c *Client) FetchAll(ctx context.Context, urls []string, destDir string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)

	for _, rawURL := range urls {
		rawURL := rawURL
		g.Go(func() error {
			return c.Fetch(gctx, rawURL, destDir)
		})
	}
	return g.Wait()
}
