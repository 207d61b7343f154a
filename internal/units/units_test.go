package units

import (
	"os"
	"path/filepath"
	"testing"

	"announcer/internal/domain"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	names := r.Names()
	if len(names) != 30 {
		t.Fatalf("expected 30 builtin units, got %d", len(names))
	}

	u, ok := r.URL("Bilgisayar Mühendisliği")
	if !ok {
		t.Fatalf("expected Bilgisayar Mühendisliği to be registered")
	}

	if u != "https://mdbf.btu.edu.tr/tr/bilgisayar/duyuru/birim/193" {
		t.Fatalf("unexpected URL: %q", u)
	}

	if _, ok = r.URL("Astroloji"); ok {
		t.Fatalf("expected unknown unit to be absent")
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	r, err := New([]domain.Unit{
		{Name: "B", URL: "https://b.example.com/list"},
		{Name: "A", URL: "https://a.example.com/list"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := r.Names()
	if names[0] != "B" || names[1] != "A" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestRegistryUnitsReturnsCopy(t *testing.T) {
	r, err := New([]domain.Unit{{Name: "A", URL: "https://a.example.com/list"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	units := r.Units()
	units[0].Name = "mutated"

	if got, _ := r.Unit("A"); got.Name != "A" {
		t.Fatalf("registry was mutated through Units(): %+v", got)
	}
}

func TestNewRejectsInvalidUnits(t *testing.T) {
	tests := []struct {
		name  string
		units []domain.Unit
	}{
		{"empty name", []domain.Unit{{Name: " ", URL: "https://a.example.com"}}},
		{"relative URL", []domain.Unit{{Name: "A", URL: "/duyuru"}}},
		{"duplicate", []domain.Unit{
			{Name: "A", URL: "https://a.example.com"},
			{Name: "A", URL: "https://b.example.com"},
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.units); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	content := `units:
  - name: Fizik
    url: https://mdbf.btu.edu.tr/tr/fizik/duyuru/birim/10074
    faculty: Mühendislik ve Doğa Bilimleri Fakültesi
  - name: Kimya
    url: https://mdbf.btu.edu.tr/tr/kimya/duyuru/birim/140
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write units file: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, ok := r.Unit("Fizik")
	if !ok {
		t.Fatalf("expected Fizik to be loaded")
	}

	if u.Faculty != "Mühendislik ve Doğa Bilimleri Fakültesi" {
		t.Fatalf("unexpected faculty: %q", u.Faculty)
	}

	if len(r.Names()) != 2 {
		t.Fatalf("expected two units, got %v", r.Names())
	}
}

func TestLoadEmptyPathUsesBuiltin(t *testing.T) {
	r, err := Load("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Names()) != len(builtin) {
		t.Fatalf("expected builtin table")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	if err := os.WriteFile(path, []byte("units: []\n"), 0o600); err != nil {
		t.Fatalf("write units file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty units file")
	}
}
