package utils

import "testing"

func TestHashPayload(t *testing.T) {
	type body struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}

	a, err := HashPayload(body{Name: "Widget", Stock: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, _ := HashPayload(body{Name: "Widget", Stock: 1})
	c, _ := HashPayload(body{Name: "Widget", Stock: 2})

	if a != b {
		t.Fatalf("expected equal hashes for equal payloads, got %s and %s", a, b)
	}
	if a == c {
		t.Fatal("expected different hashes for different payloads")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashPayload_Unmarshalable(t *testing.T) {
	if _, err := HashPayload(make(chan int)); err == nil {
		t.Fatal("expected error for unmarshalable payload")
	}
}
