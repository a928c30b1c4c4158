package tool

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lesterphillip/jatts/pkg/recipe/job"
)

func TestExecute_WritesLogFile(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "log", "echo.1.log")
	r := NewExecRunner()

	err := r.Execute(context.Background(), job.Job{
		Name:    "echo",
		Command: "sh",
		Args:    []string{"-c", "echo feature_extract done"},
		LogPath: logPath,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "feature_extract done") {
		t.Fatalf("log content mismatch: %q", string(data))
	}
}

func TestExecute_NonZeroExitIsError(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()

	err := r.Execute(context.Background(), job.Job{
		Name:    "failing",
		Command: "sh",
		Args:    []string{"-c", "exit 3"},
	})
	if err == nil {
		t.Fatalf("expected error for non-zero exit")
	}
}

func TestWithLauncher_PrependsPrefix(t *testing.T) {
	t.Parallel()
	j := job.Job{Command: "python3", Args: []string{"tts_train.py", "--config", "conf/train.yaml"}}

	got := WithLauncher("slurm.pl --gpu 1", j)
	if got.Command != "slurm.pl" {
		t.Fatalf("expected launcher command, got %q", got.Command)
	}
	want := []string{"--gpu", "1", "python3", "tts_train.py", "--config", "conf/train.yaml"}
	if !reflect.DeepEqual(got.Args, want) {
		t.Fatalf("args mismatch: got %v want %v", got.Args, want)
	}
}

func TestWithLauncher_EmptyPrefixIsNoop(t *testing.T) {
	t.Parallel()
	j := job.Job{Command: "python3", Args: []string{"tts_decode.py"}}

	got := WithLauncher("  ", j)
	if got.Command != "python3" || !reflect.DeepEqual(got.Args, j.Args) {
		t.Fatalf("expected unchanged job, got %+v", got)
	}
}
