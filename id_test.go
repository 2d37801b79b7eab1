package stripekit

import (
	"strings"
	"testing"
)

func TestCheckID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		prefixes []string
		wantErr  bool
	}{
		{"valid", "cus_123abc", []string{"cus"}, false},
		{"second prefix", "plan_gold", []string{"price", "plan"}, false},
		{"wrong prefix", "pi_123", []string{"cus"}, true},
		{"empty", "", []string{"cus"}, true},
		{"prefix only", "cus_", []string{"cus"}, true},
		{"missing underscore", "cus123", []string{"cus"}, true},
		{"too long", "cus_" + strings.Repeat("a", 300), []string{"cus"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckID(tt.id, tt.prefixes...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckID(%q, %v) error = %v, wantErr %v", tt.id, tt.prefixes, err, tt.wantErr)
			}
			if err != nil {
				e, ok := AsError(err)
				if !ok || e.Kind != KindClient {
					t.Fatalf("expected KindClient error, got %v", err)
				}
			}
		})
	}
}

func TestUnmarshalID(t *testing.T) {
	var id string
	if err := UnmarshalID([]byte(`"cus_42"`), &id, "cus"); err != nil {
		t.Fatal(err)
	}
	if id != "cus_42" {
		t.Fatalf("id = %q", id)
	}

	if err := UnmarshalID([]byte(`"pi_42"`), &id, "cus"); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
	if err := UnmarshalID([]byte(`42`), &id, "cus"); err == nil {
		t.Fatal("expected error for non-string JSON")
	}
}
