package pluralforms

import (
	"math/rand"
	"testing"
)

// russianExpr is the expression used throughout the GNU gettext
// documentation for Russian plural forms, adjusted (>1 instead of >=2) so
// that every supported operator appears at least once.
const russianExpr = "n%10==1 && n%100!=11 ? 0 : n%10>1 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2"

// russianExpected holds the expected plural index for n in [0,100); the
// rule has period 100, so expected[n] == expected[n+100*k] for any k.
var russianExpected = [100]uint64{
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 0, 1, 1, 1, 2, 2, 2, 2, 2,
}

func TestRussianPluralsKnownValues(t *testing.T) {
	node := node0(t, russianExpr)
	for _, n := range []uint32{0, 1, 2, 5, 11, 21, 22, 25} {
		got := node.Eval(n)
		want := russianExpected[n%100]
		if got != want {
			t.Errorf("eval(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestRussianPluralsSmallNumbers(t *testing.T) {
	node := node0(t, russianExpr)
	for n := uint32(0); n < 130; n++ {
		got := node.Eval(n)
		want := russianExpected[n%100]
		if got != want {
			t.Fatalf("eval(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestRussianPluralsRandomLargeNumbers(t *testing.T) {
	node := node0(t, russianExpr)
	rng := rand.New(rand.NewSource(1))

	const total = 1_000_000
	checkN := func(n uint32) {
		got := node.Eval(n)
		want := russianExpected[n%100]
		if got != want {
			t.Fatalf("eval(%d) = %d, want %d", n, got, want)
		}
	}
	checkN(^uint32(0))
	for i := 0; i < total-1; i++ {
		checkN(rng.Uint32())
	}
}

// gnuVsTransifex compares the GNU-documented rule text against the
// equivalent (but syntactically different) expression used by Transifex
// for the same language, confirming both evaluate identically over
// integers despite the differing boundary conditions used to express
// "the rest" plural form.
func TestGNUEquivalentToTransifexRules(t *testing.T) {
	cases := []struct {
		lang string
		gnu  string
		tfx  string
	}{
		{
			"pl",
			"(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2)",
			"(n==1 ? 0 : (n%10>=2 && n%10<=4) && (n%100<12 || n%100>14) ? 1 : n!=1" +
				"&& (n%10>=0 && n%10<=1) || (n%10>=5 && n%10<=9) || (n%100>=12 && n%100<=14) ? 2 : 3)",
		},
		{
			"ru",
			"(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2)",
			"(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<12 || n%100>14) ? 1 :" +
				" n%10==0 || (n%10>=5 && n%10<=9) || (n%100>=11 && n%100<=14)? 2 : 3)",
		},
		{
			"uk",
			"(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2)",
			"(n % 1 == 0 && n % 10 == 1 && n % 100 != " +
				"11 ? 0 : n % 1 == 0 && n % 10 >= 2 && n % 10 <= 4 && (n % 100 < 12 || n % " +
				"100 > 14) ? 1 : n % 1 == 0 && (n % 10 ==0 || (n % 10 >=5 && n % 10 <=9) || " +
				"(n % 100 >=11 && n % 100 <=14 )) ? 2: 3)",
		},
	}

	rng := rand.New(rand.NewSource(2))
	const total = 100_000

	for _, tc := range cases {
		gnu := node0(t, tc.gnu)
		tfx := node0(t, tc.tfx)
		for i := 0; i < total; i++ {
			n := rng.Uint32()
			g, f := gnu.Eval(n), tfx.Eval(n)
			if g != f {
				t.Fatalf("%s: n=%d gnu=%d transifex=%d", tc.lang, n, g, f)
			}
		}
	}
}
