package customer

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		c    Customer
		ok   bool
	}{
		{"valid", Customer{Name: "Omar", Email: "omar@example.com"}, true},
		{"missing name", Customer{Email: "omar@example.com"}, false},
		{"blank name", Customer{Name: "   ", Email: "omar@example.com"}, false},
		{"missing email", Customer{Name: "Omar"}, false},
		{"no at sign", Customer{Name: "Omar", Email: "omar.example.com"}, false},
		{"at sign first", Customer{Name: "Omar", Email: "@example.com"}, false},
		{"at sign last", Customer{Name: "Omar", Email: "omar@"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	c := Customer{Name: "Omar", Company: "Gulf Supplies"}
	if got := c.DisplayName(); got != "Omar - Gulf Supplies" {
		t.Errorf("DisplayName = %q", got)
	}
	c.Company = ""
	if got := c.DisplayName(); got != "Omar" {
		t.Errorf("DisplayName = %q", got)
	}
}
