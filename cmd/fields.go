package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"wayforpay/entity"
)

// readFields loads a field map from a JSON or YAML file; "-" reads stdin.
// YAML is chosen by the .yml/.yaml extension, or for stdin when the input
// does not start with '{'.
func readFields(path string, stdin io.Reader) (*entity.FieldMap, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}

	fields := entity.NewFieldMap()
	if isYAML(path, data) {
		err = yaml.Unmarshal(data, fields)
	} else {
		err = json.Unmarshal(data, fields)
	}
	if err != nil {
		return nil, fmt.Errorf("decode fields %s: %w", path, err)
	}
	return fields, nil
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	case ".json":
		return false
	}
	return !strings.HasPrefix(strings.TrimSpace(string(data)), "{")
}

func parseType(name string) (entity.TransactionType, error) {
	transactionType, ok := entity.ParseTransactionType(name)
	if !ok {
		return "", fmt.Errorf("unknown transaction type: %s", name)
	}
	return transactionType, nil
}

func transactionTypeNames() []string {
	var names []string
	for _, t := range entity.TransactionTypes() {
		names = append(names, t.String())
	}
	return names
}
