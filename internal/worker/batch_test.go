package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avolkov/tessera/internal/model"
	"github.com/avolkov/tessera/internal/pipeline"
)

type fakeProcessor struct {
	failCase string
}

func (f *fakeProcessor) Process(_ context.Context, cf *pipeline.CaseFile) (*model.CaseResult, error) {
	if cf.Case.CaseID == f.failCase {
		return nil, errors.New("processing failed")
	}
	return &model.CaseResult{CaseID: cf.Case.CaseID, Title: cf.Title}, nil
}

func writeCaseFile(t *testing.T, dir, name, caseID string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := `{
		"title": "Test case",
		"case": {"case_id": "` + caseID + `", "case_type": "financial_fraud"},
		"inputs": []
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write case file: %v", err)
	}
	return path
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeCaseFile(t, dir, "a.json", "case-a"),
		writeCaseFile(t, dir, "b.json", "case-b"),
		writeCaseFile(t, dir, "c.json", "case-fail"),
	}

	b := NewBatchProcessor(&fakeProcessor{failCase: "case-fail"}, 2)
	outcomes := b.ProcessPaths(context.Background(), paths)

	if len(outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(outcomes))
	}

	var succeeded, failed int
	for _, o := range outcomes {
		if o.GetError() != nil {
			failed++
		} else {
			succeeded++
			if o.Result == nil || o.Result.CaseID == "" {
				t.Error("successful outcome missing result")
			}
		}
	}
	if succeeded != 2 || failed != 1 {
		t.Errorf("succeeded = %d, failed = %d; want 2, 1", succeeded, failed)
	}
}

func TestBatchProcessor_UnreadableCaseFile(t *testing.T) {
	b := NewBatchProcessor(&fakeProcessor{}, 1)
	outcomes := b.ProcessPaths(context.Background(), []string{"/nonexistent/case.json"})

	if len(outcomes) != 1 || outcomes[0].GetError() == nil {
		t.Error("expected a failed outcome for an unreadable case file")
	}
}

func TestBatchProcessor_ProcessManifest(t *testing.T) {
	dir := t.TempDir()
	a := writeCaseFile(t, dir, "a.json", "case-a")
	b := writeCaseFile(t, dir, "b.json", "case-b")

	manifest := filepath.Join(dir, "cases.txt")
	lines := strings.Join([]string{"# batch for review", a, "", b, a}, "\n")
	if err := os.WriteFile(manifest, []byte(lines), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	bp := NewBatchProcessor(&fakeProcessor{}, 2)
	outcomes, err := bp.ProcessManifest(context.Background(), manifest)
	if err != nil {
		t.Fatalf("ProcessManifest() error = %v", err)
	}
	// Duplicate and comment lines are dropped.
	if len(outcomes) != 2 {
		t.Errorf("outcomes = %d, want 2", len(outcomes))
	}
}
