package download

import "fmt"

// ErrFetch はコーパスアーカイブの取得失敗 (リトライ後の最終失敗を含む) を示す
// カスタムエラー型です。
type ErrFetch struct {
	URL        string
	WrappedErr error
}

func (e *ErrFetch) Error() string {
	return fmt.Sprintf("アーカイブ取得エラー (%s): %v", e.URL, e.WrappedErr)
}

func (e *ErrFetch) Unwrap() error { return e.WrappedErr }
