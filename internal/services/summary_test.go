package services

import "testing"

func TestSummaryFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "Acme Site", want: "troov-summary-Acme-Site.pdf"},
		{in: "a  //  b", want: "troov-summary-a-b.pdf"},
		{in: "café_v2", want: "troov-summary-caf-_v2.pdf"},
		{in: "", want: "troov-summary-summary.pdf"},
		{in: "---", want: "troov-summary--.pdf"},
	}
	for _, tc := range cases {
		if got := SummaryFilename(tc.in); got != tc.want {
			t.Fatalf("SummaryFilename(%q): want=%s got=%s", tc.in, tc.want, got)
		}
	}
}
