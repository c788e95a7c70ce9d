package split

import (
	"reflect"
	"testing"
)

func TestPolicyAssign(t *testing.T) {
	p := Standard()
	tests := map[int]Section{
		2005: Train,
		3999: Train,
		4000: Dev2,
		4001: Test,
		4154: Test,
		4155: Dev2,
		4500: Dev2,
		4501: Dev,
		4936: Dev,
		4937: Dev2,
	}
	for n, want := range tests {
		if got := p.Assign(n); got != want {
			t.Fatalf("Assign(%d) got %q want %q", n, got, want)
		}
	}
}

func TestLegacy(t *testing.T) {
	tests := []struct {
		n    int
		want Section
		ok   bool
	}{
		{3999, Train, true},
		{4000, "", false},
		{4004, Test, true},
		{4152, Test, true},
		{4153, "", false},
		{4519, Dev, true},
		{4935, Dev, true},
		{4936, "", false},
	}
	for _, tc := range tests {
		got, ok := Legacy(tc.n)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Legacy(%d) got (%q, %v) want (%q, %v)", tc.n, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTreebankSection(t *testing.T) {
	tests := map[int]string{2005: "2", 3000: "2", 3001: "3", 4000: "3", 4001: "4"}
	for n, want := range tests {
		if got := TreebankSection(n); got != want {
			t.Fatalf("TreebankSection(%d) got %q want %q", n, got, want)
		}
	}
}

func TestFileNumber(t *testing.T) {
	tests := map[string]int{
		"sw2005.mrg":                           2005,
		"/data/swbd/4/sw4019.mrg":              4019,
		"sw2005.A.syntax.xml":                  2005,
		"sw3001.mrg.dep":                       3001,
		"2005":                                 2005,
		"xml/terminals/sw4617.B.terminals.xml": 4617,
	}
	for name, want := range tests {
		got, err := FileNumber(name)
		if err != nil {
			t.Fatalf("FileNumber(%q) returned error: %v", name, err)
		}
		if got != want {
			t.Fatalf("FileNumber(%q) got %d want %d", name, got, want)
		}
	}
	if _, err := FileNumber("README"); err == nil {
		t.Fatal("expected error for non-numeric name")
	}
}

func TestDivideSortsAndRejects(t *testing.T) {
	paths := []string{"4/sw4103.mrg", "2/sw2010.mrg", "notes.txt", "2/sw2005.mrg", "4/sw4002.mrg"}
	got, rejected := Divide(paths, Standard().Assigner())

	wantTrain := []Entry{{2005, "2/sw2005.mrg"}, {2010, "2/sw2010.mrg"}}
	if !reflect.DeepEqual(got[Train], wantTrain) {
		t.Fatalf("train got %v want %v", got[Train], wantTrain)
	}
	wantTest := []Entry{{4002, "4/sw4002.mrg"}, {4103, "4/sw4103.mrg"}}
	if !reflect.DeepEqual(got[Test], wantTest) {
		t.Fatalf("test got %v want %v", got[Test], wantTest)
	}
	if !reflect.DeepEqual(rejected, []string{"notes.txt"}) {
		t.Fatalf("rejected got %v", rejected)
	}
}

func TestDivideLegacySkipsUnassigned(t *testing.T) {
	got, rejected := Divide([]string{"sw4000.mrg.dep", "sw4010.mrg.dep"}, Legacy)
	if len(got[Test]) != 1 || got[Test][0].Number != 4010 {
		t.Fatalf("unexpected test entries %v", got[Test])
	}
	if len(rejected) != 1 || rejected[0] != "sw4000.mrg.dep" {
		t.Fatalf("unexpected rejected %v", rejected)
	}
}
