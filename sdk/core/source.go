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

import "fmt"

// source 是產生器狀態的封閉和型別：只有本檔與 pcg32.go 內的五個變體實作它。
// 引擎標籤由變體本身回報，因此標籤與狀態不可能不一致。
type source interface {
	next() uint32
	engine() Engine
	dump() string
	clone() source
}

const (
	mwcMultA = 36969
	mwcMultB = 18000

	xorShiftInitSeed = 0xBADF00D
	xorShiftSeedStep = 0x11111111

	splitMixGamma = 0x9e3779b97f4a7c15
	splitMixMul1  = 0xbf58476d1ce4e5b9
	splitMixMul2  = 0x94d049bb133111eb

	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
)

// newSource 依引擎建立對應變體。未知引擎屬於程式錯誤。
func newSource(e Engine, seed uint64) source {
	switch e {
	case MWC:
		return newMWC(seed)
	case XorShift128:
		return newXorShift128(seed)
	case LibcLCG:
		return newLibcLCG(seed)
	case PCG32:
		return newPCG32(seed)
	case SplitMix64:
		return newSplitMix64(seed)
	}
	panic(fmt.Sprintf("core: unknown engine %d", uint8(e)))
}

//---------------------------------------
// Marsaglia multiply-with-carry
//---------------------------------------

// mwc 只推進 a, b 兩個 lane；c, d 保留種子展開後的值供狀態輸出。
type mwc struct {
	a, b, c, d uint32
}

func newMWC(seed uint64) *mwc {
	return &mwc{
		a: uint32(seed),
		b: uint32(seed + 1),
		c: uint32(seed + 2),
		d: uint32(seed + 3),
	}
}

func (m *mwc) next() uint32 {
	m.a = mwcMultA*m.a + (m.a >> 16)
	m.b = mwcMultB*m.b + (m.b >> 16)
	return (m.a << 16) + m.b
}

func (m *mwc) engine() Engine { return MWC }

func (m *mwc) dump() string {
	return fmt.Sprintf("State:a=0x%08X b=0x%08X", m.a, m.b)
}

func (m *mwc) clone() source {
	c := *m
	return &c
}

//---------------------------------------
// XorShift128
//---------------------------------------

type xorShift128 struct {
	x [4]uint32
}

func newXorShift128(seed uint64) *xorShift128 {
	s := &xorShift128{}
	for i := range s.x {
		s.x[i] = uint32(seed) ^ (xorShiftInitSeed + uint32(i)*xorShiftSeedStep)
	}
	return s
}

func (s *xorShift128) next() uint32 {
	t := s.x[3]
	t ^= t << 11
	t ^= t >> 8
	s.x[3], s.x[2], s.x[1] = s.x[2], s.x[1], s.x[0]
	t ^= s.x[0]
	t ^= s.x[0] >> 19
	s.x[0] = t
	return t
}

func (s *xorShift128) engine() Engine { return XorShift128 }

func (s *xorShift128) dump() string {
	return fmt.Sprintf("State:0x%08X..0x%08X", s.x[0], s.x[3])
}

func (s *xorShift128) clone() source {
	c := *s
	return &c
}

//---------------------------------------
// SplitMix64
//---------------------------------------

type splitMix64 struct {
	x uint64
}

func newSplitMix64(seed uint64) *splitMix64 {
	return &splitMix64{x: seed}
}

func (s *splitMix64) next() uint32 {
	s.x += splitMixGamma
	return uint32(mix64(s.x) >> 32)
}

func (s *splitMix64) engine() Engine { return SplitMix64 }

func (s *splitMix64) dump() string {
	return fmt.Sprintf("State:0x%016X", s.x)
}

func (s *splitMix64) clone() source {
	c := *s
	return &c
}

// mix64 為 SplitMix64 的兩輪 xor-shift/乘法，不含最後的 z^(z>>31)。
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * splitMixMul1
	z = (z ^ (z >> 27)) * splitMixMul2
	return z
}

//---------------------------------------
// Libc-style LCG
//---------------------------------------

// libcLCG 自帶私有狀態的 ANSI C rand() 風格 LCG。
// 單步只有高 16 bits 品質可用，因此一次輸出串接兩步的高位。
type libcLCG struct {
	seed uint32
}

func newLibcLCG(seed uint64) *libcLCG {
	return &libcLCG{seed: uint32(seed)}
}

func (l *libcLCG) step() uint32 {
	l.seed = l.seed*lcgMultiplier + lcgIncrement
	return l.seed >> 16
}

func (l *libcLCG) next() uint32 {
	hi := l.step()
	lo := l.step()
	return hi<<16 | lo
}

func (l *libcLCG) engine() Engine { return LibcLCG }

func (l *libcLCG) dump() string {
	return fmt.Sprintf("Seed:0x%08X", l.seed)
}

func (l *libcLCG) clone() source {
	c := *l
	return &c
}
