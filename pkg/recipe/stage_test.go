package recipe

import "testing"

func TestStageInRange(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		s          Stage
		from, to   int
		wantInside bool
	}{
		{"window covers stage", StageFeature, 0, 3, true},
		{"stage equals lower bound", StageFeature, 1, 5, true},
		{"stage equals upper bound", StageFeature, -1, 1, true},
		{"stage below window", StageDownload, 0, 5, false},
		{"stage above window", StageEval, -1, 4, false},
		{"single stage window", StageToken, 2, 2, true},
		{"single stage window excludes neighbor", StageTrain, 2, 2, false},
		{"download included at -1", StageDownload, -1, -1, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.s.InRange(tc.from, tc.to); got != tc.wantInside {
				t.Fatalf("Stage(%d).InRange(%d, %d) = %v, want %v", int(tc.s), tc.from, tc.to, got, tc.wantInside)
			}
		})
	}
}

func TestStageString(t *testing.T) {
	t.Parallel()
	if StageFeature.String() != "feature_extract" {
		t.Fatalf("unexpected name: %s", StageFeature.String())
	}
	if Stage(99).String() != "stage(99)" {
		t.Fatalf("unexpected fallback name: %s", Stage(99).String())
	}
}
