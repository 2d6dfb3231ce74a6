package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"contractScope/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.jsonl")
	sink := NewJsonlStorage(path)

	first := model.ContractReport{Address: "0x1111111111111111111111111111111111111111", IsContract: true}
	second := model.ContractReport{Address: "0x2222222222222222222222222222222222222222"}

	if err := sink.PutReport(context.Background(), first); err != nil {
		t.Fatalf("put first report: %v", err)
	}
	if err := sink.PutReport(context.Background(), second); err != nil {
		t.Fatalf("put second report: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines []model.ContractReport
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var r model.ContractReport
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("parse line: %v", err)
		}
		lines = append(lines, r)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Address != first.Address || !lines[0].IsContract {
		t.Fatalf("first line mismatch: %+v", lines[0])
	}
	if lines[1].Address != second.Address {
		t.Fatalf("second line mismatch: %+v", lines[1])
	}
}
