package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avolkov/tessera/internal/model"
)

func TestLoadCaseFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	content := `title: Shell network
case:
  case_id: case-y1
  case_type: financial_fraud
  start_date: 2024-03-01T00:00:00Z
  jurisdictions: [UK, CY]
inputs:
  - id: in-1
    source: Companies House filing
    source_type: government_record
    content: Director appointed 2024-04-02, registered office shared with four dissolved entities.
    timestamp: 2024-04-02T00:00:00Z
    jurisdiction: UK
    provenance:
      - source: Companies House
        timestamp: 2024-04-02T09:00:00Z
        independently_verified: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cf, err := LoadCaseFile(path)
	if err != nil {
		t.Fatalf("LoadCaseFile() error = %v", err)
	}
	if cf.Title != "Shell network" {
		t.Errorf("title = %q", cf.Title)
	}
	if cf.Case.CaseType != model.CaseFinancialFraud {
		t.Errorf("case type = %s, want financial_fraud", cf.Case.CaseType)
	}
	if len(cf.Inputs) != 1 {
		t.Fatalf("inputs = %d, want 1", len(cf.Inputs))
	}
	input := cf.Inputs[0]
	if input.SourceType != model.SourceGovernmentRecord {
		t.Errorf("source type = %s, want government_record", input.SourceType)
	}
	if len(input.Provenance) != 1 || !input.Provenance[0].IndependentlyVerified {
		t.Errorf("provenance = %+v, want one verified entry", input.Provenance)
	}
}

func TestLoadCaseFile_JSONDefaultsTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.json")
	content := `{"case": {"case_id": "case-j1", "case_type": "financial_fraud"}, "inputs": []}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cf, err := LoadCaseFile(path)
	if err != nil {
		t.Fatalf("LoadCaseFile() error = %v", err)
	}
	if cf.Title != "case-j1" {
		t.Errorf("title = %q, want the case ID fallback", cf.Title)
	}
}

func TestLoadCaseFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCaseFile(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadCaseFile_Missing(t *testing.T) {
	if _, err := LoadCaseFile("/nonexistent/case.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadCasePathsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.txt")
	content := "# queue\none.json\n\ntwo.yaml\none.json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	paths, err := ReadCasePathsFromFile(path)
	if err != nil {
		t.Fatalf("ReadCasePathsFromFile() error = %v", err)
	}
	if len(paths) != 2 || paths[0] != "one.json" || paths[1] != "two.yaml" {
		t.Errorf("paths = %v, want [one.json two.yaml]", paths)
	}
}
