// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"math"
	"slices"
	"strings"
	"testing"
)

const pinSeed = 0xDEADBEEF

func assertPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNoWarmupStreams(t *testing.T) {
	want := map[Engine][2]uint32{
		MWC:         {3073780141, 2828037266},
		XorShift128: {1361383432, 1327541568},
		LibcLCG:     {469868345, 1791393089},
		PCG32:       {27, 1824507900},
		SplitMix64:  {1256175887, 3730336304},
	}
	for e, w := range want {
		r := Init(e, pinSeed, 0)
		got := [2]uint32{r.NextU32(), r.NextU32()}
		if got != w {
			t.Fatalf("%s: got %v want %v", e, got, w)
		}
	}
}

func TestWarmup16Streams(t *testing.T) {
	want := map[Engine][2]uint32{
		MWC:         {4076396857, 722815884},
		XorShift128: {3278299617, 3128668795},
		LibcLCG:     {1915965019, 3368874545},
		PCG32:       {324135822, 1388836347},
		SplitMix64:  {327935919, 2503596185},
	}
	for e, w := range want {
		r := Init(e, pinSeed, 16)
		got := [2]uint32{r.NextU32(), r.NextU32()}
		if got != w {
			t.Fatalf("%s: got %v want %v", e, got, w)
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, e := range Engines() {
		r1 := Init(e, 12345, 16)
		r2 := Init(e, 12345, 16)
		for i := 0; i < 1000; i++ {
			if a, b := r1.NextU32(), r2.NextU32(); a != b {
				t.Fatalf("%s: mismatch at %d: %d != %d", e, i, a, b)
			}
		}
	}
}

func TestWarmupDiscardsOutputs(t *testing.T) {
	for _, e := range Engines() {
		cold := Init(e, 99, 0)
		for i := 0; i < 16; i++ {
			cold.NextU32()
		}
		warm := Init(e, 99, 16)
		if a, b := cold.NextU32(), warm.NextU32(); a != b {
			t.Fatalf("%s: warmup mismatch %d != %d", e, a, b)
		}
	}
}

func TestWarmupClamp(t *testing.T) {
	hi := Init(PCG32, 7, 5000)
	if hi.Warmup() != WarmupMax {
		t.Fatalf("expected warmup clamp to %d, got %d", WarmupMax, hi.Warmup())
	}
	ref := Init(PCG32, 7, WarmupMax)
	if hi.NextU32() != ref.NextU32() {
		t.Fatalf("clamped warmup should equal WarmupMax")
	}

	neg := Init(PCG32, 7, -3)
	zero := Init(PCG32, 7, 0)
	if neg.Warmup() != 0 || neg.NextU32() != zero.NextU32() {
		t.Fatalf("negative warmup should behave as 0")
	}
}

func TestInitPanics(t *testing.T) {
	assertPanic(t, "zero seed", func() { Init(SplitMix64, 0, 0) })
	assertPanic(t, "unknown engine", func() { Init(Engine(99), 1, 0) })
	assertPanic(t, "unknown info", func() { _ = Engine(99).Info() })
}

func TestEngineTagFollowsPayload(t *testing.T) {
	for _, e := range Engines() {
		r := Init(e, 5, 0)
		if r.Engine() != e {
			t.Fatalf("engine tag mismatch: %s vs %s", r.Engine(), e)
		}
	}
}

func TestParseEngine(t *testing.T) {
	cases := map[string]Engine{
		"mwc":        MWC,
		"Marsaglia":  MWC,
		"XORSHIFT":   XorShift128,
		"lcg":        LibcLCG,
		"c99":        LibcLCG,
		" pcg32 ":    PCG32,
		"splitmix64": SplitMix64,
	}
	for in, want := range cases {
		got, err := ParseEngine(in)
		if err != nil || got != want {
			t.Fatalf("ParseEngine(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseEngine("mersenne"); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
	for _, e := range Engines() {
		back, err := ParseEngine(e.String())
		if err != nil || back != e {
			t.Fatalf("round trip failed for %s", e)
		}
	}
}

func TestIsValidSeed(t *testing.T) {
	if !IsValidSeed(1, MWC) {
		t.Fatalf("mwc seed 1 should be valid")
	}
	if IsValidSeed(0x10, XorShift128) || IsValidSeed(0xF0, XorShift128) {
		t.Fatalf("xorshift low nibble zero should be invalid")
	}
	if !IsValidSeed(0x11, XorShift128) {
		t.Fatalf("xorshift 0x11 should be valid")
	}
	for _, e := range []Engine{LibcLCG, PCG32, SplitMix64} {
		if !IsValidSeed(0x10, e) {
			t.Fatalf("%s should accept any seed", e)
		}
	}
	// advisory only
	r := Init(XorShift128, 0x10, 0)
	_ = r.NextU32()
}

func TestNextFloatRange(t *testing.T) {
	for _, e := range Engines() {
		r := Init(e, 2024, 16)
		for i := 0; i < 10000; i++ {
			f := r.NextFloat()
			if f < 0 || f >= 1 {
				t.Fatalf("%s: float out of range: %v", e, f)
			}
		}
	}
	r := Init(SplitMix64, pinSeed, 0)
	if got, want := r.NextFloat(), float64(1256175887)/4294967296.0; got != want {
		t.Fatalf("NextFloat = %v, want %v", got, want)
	}
}

func TestRangeBiased(t *testing.T) {
	cases := []struct {
		v, min, max, want uint32
	}{
		{0, 0, 9, 0},
		{0x80000000, 0, 9, 5},
		{math.MaxUint32, 0, 9, 9},
		{12345, 0, math.MaxUint32, 12345},
		{0x40000000, 100, 103, 101},
		{77, 8, 8, 8},
	}
	for _, c := range cases {
		if got := RangeBiased(c.v, c.min, c.max); got != c.want {
			t.Fatalf("RangeBiased(%d,%d,%d) = %d, want %d", c.v, c.min, c.max, got, c.want)
		}
	}
	assertPanic(t, "biased min > max", func() { RangeBiased(0, 2, 1) })
}

func TestRangeExactSpecialCases(t *testing.T) {
	r := Init(PCG32, pinSeed, 0)
	ref := Init(PCG32, pinSeed, 0)

	if got := r.RangeExact(0, math.MaxUint32); got != ref.NextU32() {
		t.Fatalf("full range should pass NextU32 through")
	}
	// min == max 不消耗亂數
	if got := r.RangeExact(42, 42); got != 42 {
		t.Fatalf("degenerate range returned %d", got)
	}
	if r.NextU32() != ref.NextU32() {
		t.Fatalf("degenerate range must not draw")
	}
	assertPanic(t, "exact min > max", func() { r.RangeExact(3, 2) })
}

func TestRangeExactBounds(t *testing.T) {
	for _, e := range Engines() {
		r := Init(e, 31337, 16)
		for i := 0; i < 5000; i++ {
			v := r.RangeExact(10, 20)
			if v < 10 || v > 20 {
				t.Fatalf("%s: out of bounds %d", e, v)
			}
		}
	}
}

func TestRangeExactUniformity(t *testing.T) {
	const draws = 100000
	const critical = 20.515 // chi-square 99.9%, dof 5
	for _, e := range Engines() {
		r := Init(e, 0xCAFE, 16)
		var counts [6]int
		for i := 0; i < draws; i++ {
			counts[r.RangeExact(0, 5)]++
		}
		exp := float64(draws) / 6
		chi := 0.0
		for _, c := range counts {
			d := float64(c) - exp
			chi += d * d / exp
		}
		if chi >= critical {
			t.Fatalf("%s: chi-square %.2f >= %.3f (%v)", e, chi, critical, counts)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	for _, e := range Engines() {
		r := Init(e, 77, 16)
		c := r.Clone()
		for i := 0; i < 8; i++ {
			if r.NextU32() != c.NextU32() {
				t.Fatalf("%s: clone diverged at %d", e, i)
			}
		}
		c.NextU32()
		a, b := r.NextU32(), c.NextU32()
		if a == b {
			// 極小機率巧合，再比一次
			if r.NextU32() == c.NextU32() {
				t.Fatalf("%s: clone shares state", e)
			}
		}
	}
}

func TestString(t *testing.T) {
	pcg := Init(PCG32, pinSeed, 0).String()
	if pcg != "[PRNG] PCG32 State:0x00000000DEADBEEF Seq:0xF767814F" {
		t.Fatalf("unexpected dump %q", pcg)
	}
	sm := Init(SplitMix64, pinSeed, 0).String()
	if sm != "[PRNG] SplitMix64 State:0x00000000DEADBEEF" {
		t.Fatalf("unexpected dump %q", sm)
	}
	for _, e := range Engines() {
		s := Init(e, 3, 0).String()
		if !strings.HasPrefix(s, "[PRNG] "+e.Info().Name) {
			t.Fatalf("dump missing name: %q", s)
		}
	}
}

func TestSeeds(t *testing.T) {
	for i := 0; i < 16; i++ {
		if DefaultSeed() == 0 || TimeSeed() == 0 {
			t.Fatalf("seed helpers must be non-zero")
		}
	}
	a := NewSeedMaker(7)
	b := NewSeedMaker(7)
	seen := map[uint64]bool{}
	for i := 0; i < 1000; i++ {
		x, y := a.Next(), b.Next()
		if x != y {
			t.Fatalf("seed maker not deterministic at %d", i)
		}
		if x == 0 || seen[x] {
			t.Fatalf("seed maker produced zero or repeat at %d", i)
		}
		seen[x] = true
	}
}

func TestRandInterface(t *testing.T) {
	r := Init(SplitMix64, pinSeed, 0)
	want := uint64(1256175887)<<32 | uint64(3730336304)
	if got := r.Uint64(); got != want {
		t.Fatalf("Uint64 = %d, want %d", got, want)
	}
	if r.IntN(0) != -1 || r.UintN(0) != 0 {
		t.Fatalf("sentinel values wrong")
	}
	for i := 0; i < 1000; i++ {
		if v := r.IntN(7); v < 0 || v >= 7 {
			t.Fatalf("IntN out of range: %d", v)
		}
		if v := r.UintN(1 << 40); v >= 1<<40 {
			t.Fatalf("UintN out of range: %d", v)
		}
	}
}

func TestCorePickAndShuffle(t *testing.T) {
	c := New(Init(PCG32, 9, 16))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}
	if got := c.Pick([]int{4, 5, 6}); got < 4 || got > 6 {
		t.Fatalf("pick returned foreign element %d", got)
	}

	src := []int{1, 2, 3, 4}
	c.ShuffleInts(src)
	got := slices.Clone(src)
	slices.Sort(got)
	if !slices.Equal([]int{1, 2, 3, 4}, got) {
		t.Fatalf("shuffle changed elements: %v", src)
	}

	s := c.Sample(10, 4)
	if len(s) != 4 {
		t.Fatalf("sample size %d", len(s))
	}
	seen := map[int]bool{}
	for _, v := range s {
		if v < 0 || v >= 10 || seen[v] {
			t.Fatalf("bad sample %v", s)
		}
		seen[v] = true
	}
	assertPanic(t, "nil core", func() { New(nil) })
}
