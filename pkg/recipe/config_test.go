package recipe

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"stage above stop_stage", func(c *Config) { c.Stage = 3; c.StopStage = 1 }},
		{"zero n_jobs", func(c *Config) { c.NJobs = 0 }},
		{"negative n_gpus", func(c *Config) { c.NGPUs = -1 }},
		{"empty train_set", func(c *Config) { c.TrainSet = "" }},
		{"unknown token_type", func(c *Config) { c.TokenType = "bpe" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var invalid *ErrInvalidConfig
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestEvalSetName_FallsBackToTestSet(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	if got := cfg.EvalSetName(); got != cfg.TestSet {
		t.Fatalf("expected fallback to test_set %q, got %q", cfg.TestSet, got)
	}

	cfg.EvalSet = "eval_clean"
	if got := cfg.EvalSetName(); got != "eval_clean" {
		t.Fatalf("expected explicit eval_set, got %q", got)
	}
}

func TestAllSubsets_Deduplicates(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig() // eval_set は test_set にフォールバックするため重複する
	got := cfg.AllSubsets()
	want := []string{"train", "dev", "eval"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFromViper_OverridesBeatDefaults(t *testing.T) {
	t.Parallel()
	v := viper.New()
	SetDefaults(v)
	// コマンドラインの key=value 上書きに相当
	v.Set("stage", 1)
	v.Set("stop_stage", 1)
	v.Set("n_jobs", 4)
	v.Set("tag", "exp001")

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Stage != 1 || cfg.StopStage != 1 || cfg.NJobs != 4 || cfg.Tag != "exp001" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// 上書きされていない値は既定値のまま
	if cfg.TokenType != "phn" || cfg.Vocoder != "hifigan" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestFromViper_InvalidConfigRejected(t *testing.T) {
	t.Parallel()
	v := viper.New()
	SetDefaults(v)
	v.Set("stage", 5)
	v.Set("stop_stage", 0)

	_, err := FromViper(v)
	var invalid *ErrInvalidConfig
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *ErrInvalidConfig, got %v", err)
	}
}
