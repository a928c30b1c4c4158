package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpName_EmptyTagUsesConfigBasename(t *testing.T) {
	t.Parallel()
	got := ExpName("phn", "tacotron", "", "conf/train_vits.yaml")
	want := "phn_tacotron_train_vits"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExpName_TagWins(t *testing.T) {
	t.Parallel()
	got := ExpName("char", "none", "exp001", "conf/train_vits.yaml")
	want := "char_none_exp001"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEnsureSubsetDirs(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	l := New(filepath.Join(root, "data"), filepath.Join(root, "dump"), filepath.Join(root, "exp"), filepath.Join(root, "downloads"))

	if err := l.EnsureSubsetDirs("train"); err != nil {
		t.Fatalf("EnsureSubsetDirs failed: %v", err)
	}
	for _, dir := range []string{l.RawDir("train"), l.NormDir("train"), l.LogDir("train")} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
	}
}

func TestTokenListPath(t *testing.T) {
	t.Parallel()
	l := New("data", "dump", "exp", "downloads")
	got := l.TokenListPath("phn", "tacotron")
	want := filepath.Join("data", "token_list", "phn_tacotron", TokenListFileName)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFindLatestCheckpoint_PicksNewestMtime(t *testing.T) {
	t.Parallel()
	expDir := t.TempDir()

	older := filepath.Join(expDir, "checkpoint_10000.pth")
	newer := filepath.Join(expDir, "checkpoint_5000.pth")
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, []byte("ckpt"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	// ステップ数ではなく更新時刻で選択されることを確認する
	base := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, base, base); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := FindLatestCheckpoint(expDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != newer {
		t.Fatalf("expected %q, got %q", newer, got)
	}
}

func TestFindLatestCheckpoint_IgnoresNonCheckpointFiles(t *testing.T) {
	t.Parallel()
	expDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(expDir, "train.log"), []byte("log"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(expDir, "model.pth"), []byte("ckpt"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := FindLatestCheckpoint(expDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(got) != "model.pth" {
		t.Fatalf("expected model.pth, got %q", got)
	}
}

func TestFindLatestCheckpoint_NoneFound(t *testing.T) {
	t.Parallel()
	expDir := t.TempDir()

	_, err := FindLatestCheckpoint(expDir)
	var noCkpt *ErrNoCheckpoint
	if !errors.As(err, &noCkpt) {
		t.Fatalf("expected *ErrNoCheckpoint, got %v", err)
	}
}
