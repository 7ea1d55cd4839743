package tabular

import (
	"context"
	"errors"
	"testing"
)

func TestDomains(t *testing.T) {
	s := NewSynthesizer()
	got := s.Domains()
	want := []string{"ecommerce", "education", "finance", "medical"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestGenerateProducesRequestedRows(t *testing.T) {
	s := NewSynthesizer()
	ctx := context.Background()

	for _, domain := range s.Domains() {
		dataset, err := s.Generate(ctx, domain, 10)
		if err != nil {
			t.Fatalf("%s: Generate: %v", domain, err)
		}
		if len(dataset.Rows) != 10 {
			t.Fatalf("%s: expected 10 rows, got %d", domain, len(dataset.Rows))
		}
		if len(dataset.Columns) == 0 {
			t.Fatalf("%s: expected columns", domain)
		}
		for _, col := range dataset.Columns {
			if _, ok := dataset.Rows[0][col]; !ok {
				t.Fatalf("%s: row missing column %s", domain, col)
			}
		}
	}
}

func TestGenerateUnknownDomain(t *testing.T) {
	s := NewSynthesizer()
	if _, err := s.Generate(context.Background(), "astrology", 1); !errors.Is(err, ErrUnknownDomain) {
		t.Fatalf("expected ErrUnknownDomain, got %v", err)
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	s := NewSynthesizer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Generate(ctx, "finance", 5); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestMedicalBMIIsConsistent(t *testing.T) {
	s := NewSynthesizer()
	dataset, err := s.Generate(context.Background(), "medical", 20)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, row := range dataset.Rows {
		weight := row["weight_kg"].(float64)
		height := row["height_cm"].(float64)
		bmi := row["bmi"].(float64)
		expected := round1(weight / ((height / 100) * (height / 100)))
		if bmi != expected {
			t.Fatalf("row %d: bmi %v, expected %v", i, bmi, expected)
		}
	}
}
