package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadFieldsStdinJSON(t *testing.T) {
	t.Parallel()

	fields, err := readFields("-", strings.NewReader(`{"orderReference":"A-1","amount":10.50}`))
	if err != nil {
		t.Fatalf("readFields failed: %v", err)
	}
	if got := fields.Keys(); !reflect.DeepEqual(got, []string{"orderReference", "amount"}) {
		t.Errorf("Unexpected keys %v", got)
	}
	if fields.Text("amount") != "10.50" {
		t.Errorf("Expected amount as written, got %s", fields.Text("amount"))
	}
}

func TestReadFieldsYAMLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "refund.yml")
	data := "orderReference: A-1\namount: 10.5\ncurrency: UAH\ncomment: returned\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write fields: %v", err)
	}

	fields, err := readFields(path, nil)
	if err != nil {
		t.Fatalf("readFields failed: %v", err)
	}
	if got := fields.Keys(); !reflect.DeepEqual(got, []string{"orderReference", "amount", "currency", "comment"}) {
		t.Errorf("Unexpected keys %v", got)
	}
}

func TestReadFieldsStdinYAML(t *testing.T) {
	t.Parallel()

	fields, err := readFields("-", strings.NewReader("dateBegin: 1430373125\ndateEnd: 1430473125\n"))
	if err != nil {
		t.Fatalf("readFields failed: %v", err)
	}
	if fields.Text("dateEnd") != "1430473125" {
		t.Errorf("Unexpected dateEnd %s", fields.Text("dateEnd"))
	}
}

func TestReadFieldsErrors(t *testing.T) {
	t.Parallel()

	if _, err := readFields(filepath.Join(t.TempDir(), "absent.json"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := readFields("-", strings.NewReader(`{"a":`)); err == nil {
		t.Error("Expected error for broken JSON")
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	if transactionType, err := parseType("refund"); err != nil || transactionType.String() != "REFUND" {
		t.Errorf("parseType(refund) = %s, %v", transactionType, err)
	}
	if _, err := parseType("void"); err == nil {
		t.Error("Expected error for unknown type")
	}
}
