package corpus

import "testing"

func TestFillCyclesText(t *testing.T) {
	n := len(Ozymandias)*2 + 13
	out := Fill(n)
	if len(out) != n {
		t.Fatalf("len(Fill(%d)) = %d, want %d", n, len(out), n)
	}
	src := []byte(Ozymandias)
	for i, b := range out {
		if b != src[i%len(src)] {
			t.Fatalf("Fill output[%d] = %d, want %d", i, b, src[i%len(src)])
		}
	}
}

func TestFillShorterThanSource(t *testing.T) {
	out := Fill(10)
	if len(out) != 10 {
		t.Fatalf("len(Fill(10)) = %d, want 10", len(out))
	}
	if string(out) != Ozymandias[:10] {
		t.Fatalf("Fill(10) = %q, want %q", out, Ozymandias[:10])
	}
}

func TestFillZero(t *testing.T) {
	out := Fill(0)
	if len(out) != 0 {
		t.Fatalf("len(Fill(0)) = %d, want 0", len(out))
	}
}
