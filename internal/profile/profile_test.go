package profile

import (
	"errors"
	"testing"

	"github.com/agentx-labs/sitefleet/internal/tree"
)

func TestLoadEmbedded(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"commercial", "emergency", "residential"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, name := range want {
		p, err := r.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		v, ok := p.Fragment.Get(tree.MustParsePath("business.name"))
		if !ok || v.Kind() != tree.Scalar {
			t.Errorf("%s: business.name missing", name)
		}
	}
}

func TestCommercialSchemaType(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p, _ := r.Get("commercial")
	v, ok := p.Fragment.Get(tree.MustParsePath("seo.schema.type"))
	if !ok {
		t.Fatal("seo.schema.type missing")
	}
	if v.Scalar() != "ServiceBusiness" {
		t.Errorf("seo.schema.type = %v, want ServiceBusiness", v.Scalar())
	}
}

func TestGetUnknown(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = r.Get("industrial")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTitle(t *testing.T) {
	p := &Profile{Name: "residential"}
	if got := p.Title(); got != "Residential Template" {
		t.Errorf("Title = %q", got)
	}
}

func TestNewRegistryDuplicate(t *testing.T) {
	a, err := Parse([]byte("name: a\nconfig:\n  business:\n    name: A\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := NewRegistry(a, a); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestParseEmptyConfig(t *testing.T) {
	p, err := Parse([]byte("name: bare\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Fragment.Kind() != tree.Object {
		t.Errorf("Fragment kind = %s, want object", p.Fragment.Kind())
	}
}
