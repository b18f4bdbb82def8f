package view

import "testing"

func TestEntryIndex(t *testing.T) {
	cases := []struct {
		level   int
		current string
		n       int
		want    int
		ok      bool
		wantErr bool
	}{
		{levelOrder, "0", 3, 0, true, false},
		{levelSpecies, "0", 3, 0, false, false}, // blank entry
		{levelSubspecies, "0", 0, 0, false, false},
		{levelSpecies, "3", 3, 2, true, false},
		{levelSpecies, "4", 3, 0, false, true},
		{levelFamily, "-1", 3, 0, false, true},
		{levelOrder, "", 3, 0, false, true},
		{levelFamily, "0", 0, 0, false, false},
	}
	for _, c := range cases {
		got, ok, err := entryIndex(c.level, c.current, c.n)
		if got != c.want || ok != c.ok || (err != nil) != c.wantErr {
			t.Fatalf("entryIndex(%d, %q, %d) = %d %v %v", c.level, c.current, c.n, got, ok, err)
		}
	}
}
