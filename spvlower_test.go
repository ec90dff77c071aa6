// Golden snapshot tests for the lowering pipeline.
//
// For each textual module in testdata/in/, the test runs the full
// pipeline and compares the recorded target operations to the golden
// file in testdata/golden/.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test .
package spvlower_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/spvlower"
	"github.com/gogpu/spvlower/asm"
	"github.com/gogpu/spvlower/builder"
	"github.com/gogpu/spvlower/lower"
)

func TestGoldenSnapshots(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "in", "*.sir"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no .sir inputs found under testdata/in")
	}

	update := os.Getenv("UPDATE_GOLDEN") != ""

	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".sir")
		t.Run(name, func(t *testing.T) {
			module, err := asm.ParseFile(input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			rec := builder.NewRecorder()
			if err := spvlower.Lower(module, rec); err != nil {
				t.Fatalf("lower: %v", err)
			}
			got := rec.String()

			goldenPath := filepath.Join("testdata", "golden", name+".txt")
			if update {
				if err := os.WriteFile(goldenPath, []byte(got), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("missing golden file (run with UPDATE_GOLDEN=1): %v", err)
			}
			if got != string(want) {
				t.Errorf("output mismatch for %s\n--- want ---\n%s--- got ---\n%s", name, want, got)
			}
		})
	}
}

func TestLower_DefaultOptionsValidate(t *testing.T) {
	if !spvlower.DefaultOptions().Validate {
		t.Error("validation should be on by default")
	}
}

func TestLowerWithOptions_NoValidation(t *testing.T) {
	module, err := asm.ParseFile(filepath.Join("testdata", "in", "vertex_passthrough.sir"))
	if err != nil {
		t.Fatal(err)
	}

	rec := builder.NewRecorder()
	if err := spvlower.LowerWithOptions(module, rec, lower.Options{Validate: false}); err != nil {
		t.Fatalf("lower: %v", err)
	}
	if rec.Count() != 1 {
		t.Errorf("expected 1 op, got %d", rec.Count())
	}
}
