package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	domain "github.com/amaru-ids/flowsink/internal/domain/batch"
)

type memStore struct {
	name string
	data []byte
	err  error
}

func (m *memStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.name = name
	m.data = data
	return "logs/" + name, nil
}

type memArchive struct {
	name string
	err  error
}

func (m *memArchive) Archive(_ context.Context, name string, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.name = name
	return "http://archive/" + name, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testClock() fixedClock {
	return fixedClock{t: time.Date(2026, 8, 26, 10, 30, 0, 0, time.Local)}
}

func TestIngestReceipt(t *testing.T) {
	store := &memStore{}
	svc := &Service{Log: store, Clock: testClock()}

	doc := domain.Document{
		"deviceId":  "dev-1",
		"batchSize": float64(2),
		"timestamp": "t1",
		"flows":     []any{map[string]any{}, map[string]any{}},
		"pytorchAnalysis": map[string]any{
			"riskLevel": "LOW",
		},
	}

	receipt, err := svc.Ingest(context.Background(), doc)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if receipt.Status != domain.StatusSuccess {
		t.Errorf("Status = %q", receipt.Status)
	}
	if receipt.DeviceID != "dev-1" {
		t.Errorf("DeviceID = %q", receipt.DeviceID)
	}
	if receipt.RecordsReceived != 2 {
		t.Errorf("RecordsReceived = %d", receipt.RecordsReceived)
	}
	if !receipt.AnalysisIncluded {
		t.Error("AnalysisIncluded = false")
	}
	if receipt.RiskLevel != "LOW" {
		t.Errorf("RiskLevel = %q", receipt.RiskLevel)
	}
	if receipt.Timestamp != "2026-08-26 10:30:00" {
		t.Errorf("Timestamp = %q", receipt.Timestamp)
	}
	if store.name != "batch_dev-1_t1.json" {
		t.Errorf("saved name = %q", store.name)
	}

	// the persisted bytes are the pretty-printed original payload
	want, _ := json.MarshalIndent(doc, "", "  ")
	if string(store.data) != string(want) {
		t.Errorf("saved bytes = %s", store.data)
	}
}

func TestIngestWithoutAnalysis(t *testing.T) {
	svc := &Service{Log: &memStore{}, Clock: testClock()}

	receipt, err := svc.Ingest(context.Background(), domain.Document{"deviceId": "dev-2"})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if receipt.RecordsReceived != 0 {
		t.Errorf("RecordsReceived = %d", receipt.RecordsReceived)
	}
	if receipt.AnalysisIncluded {
		t.Error("AnalysisIncluded = true")
	}
	if receipt.RiskLevel != domain.RiskNoAnalysis {
		t.Errorf("RiskLevel = %q", receipt.RiskLevel)
	}
}

func TestIngestMissingDeviceID(t *testing.T) {
	store := &memStore{}
	svc := &Service{Log: store, Clock: testClock()}

	receipt, err := svc.Ingest(context.Background(), domain.Document{})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if receipt.DeviceID != domain.DefaultDeviceID {
		t.Errorf("DeviceID = %q", receipt.DeviceID)
	}
	if store.name != "batch_unknown_unknown.json" {
		t.Errorf("saved name = %q", store.name)
	}
}

func TestIngestStoreError(t *testing.T) {
	svc := &Service{Log: &memStore{err: errors.New("disk full")}, Clock: testClock()}

	if _, err := svc.Ingest(context.Background(), domain.Document{}); err == nil {
		t.Fatal("expected error from store")
	}
}

func TestIngestArchiveFailureIsNonFatal(t *testing.T) {
	arch := &memArchive{err: errors.New("bucket unreachable")}
	svc := &Service{Log: &memStore{}, Archive: arch, Clock: testClock()}

	receipt, err := svc.Ingest(context.Background(), domain.Document{"deviceId": "dev-3"})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if receipt.Status != domain.StatusSuccess {
		t.Errorf("Status = %q", receipt.Status)
	}
}

func TestIngestArchivesSameName(t *testing.T) {
	arch := &memArchive{}
	svc := &Service{Log: &memStore{}, Archive: arch, Clock: testClock()}

	if _, err := svc.Ingest(context.Background(), domain.Document{
		"deviceId":  "dev-4",
		"timestamp": "t9",
	}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if arch.name != "batch_dev-4_t9.json" {
		t.Errorf("archived name = %q", arch.name)
	}
}
