package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const testDoc = `
schema_version: "1.0.0"
marketplace: mercado_livre
version: "1.0.0"
ccm_mapping:
  - canonical_field: sku
    source_field: SKU
rules:
  - id: sku_required
    field: sku
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
    message: "sku is required"
    severity: error
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestCompileCommand_PrintsChecksum(t *testing.T) {
	path := writeTempFile(t, "rules.yaml", testDoc)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"compile", path})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("checksum")) {
		t.Errorf("expected checksum in output, got: %s", out.String())
	}
}

func TestValidateCommand_AcceptsWellFormedDocument(t *testing.T) {
	path := writeTempFile(t, "rules.yaml", testDoc)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"validate", path})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("valid")) {
		t.Errorf("expected a validity confirmation, got: %s", out.String())
	}
}

func TestRunCommand_ReportsViolationForMissingSKU(t *testing.T) {
	rulesPath := writeTempFile(t, "rules.yaml", testDoc)
	csvPath := writeTempFile(t, "table.csv", "SKU\n\nABC-1\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"run", rulesPath, csvPath, "--verbose"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("sku_required")) {
		t.Errorf("expected the sku_required violation to be reported, got: %s", out.String())
	}
}
