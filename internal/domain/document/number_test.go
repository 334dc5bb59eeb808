package document

import "testing"

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		kind Kind
		n    int64
		want string
	}{
		{KindQuotation, 1, "QT-00001"},
		{KindInvoice, 12, "INV-00012"},
		{KindReceipt, 345, "REC-00345"},
		{KindInvoice, 123456, "INV-123456"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.kind, tc.n); got != tc.want {
			t.Errorf("FormatNumber(%s, %d) = %s, want %s", tc.kind, tc.n, got, tc.want)
		}
	}
}

func TestPrefixUnknownKind(t *testing.T) {
	if got := Kind("memo").Prefix(); got != "DOC" {
		t.Errorf("Prefix = %s, want DOC", got)
	}
}
