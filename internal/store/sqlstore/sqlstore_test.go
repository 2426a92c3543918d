package sqlstore

import "testing"

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x=? AND y IN (SELECT y FROM u WHERE z=?) LIMIT ?`

	if got := (Dialect{}).rebind(q); got != q {
		t.Fatalf("question-mark dialect rewrote query: %s", got)
	}
	want := `SELECT a FROM t WHERE x=$1 AND y IN (SELECT y FROM u WHERE z=$2) LIMIT $3`
	if got := (Dialect{Numbered: true}).rebind(q); got != want {
		t.Fatalf("rebind:\n got %s\nwant %s", got, want)
	}
}
