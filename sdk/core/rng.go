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
	"fmt"
	"math"
)

const (
	// WarmupMax 為 Init 接受的最大暖機輪數，超過會被截斷。
	WarmupMax = 1024

	floatUnit = 1.0 / (1 << 32)
)

// Rng 是單一呼叫端獨占的亂數產生器。
// 不可在多個 goroutine 間共用而不加外部同步。
type Rng struct {
	src    source
	seed   uint64
	warmup int
}

// Init 以指定引擎與種子建立產生器，並丟棄 warmup 個輸出。
//
//   - seed == 0 會 panic；需要預設種子時請先呼叫 DefaultSeed / TimeSeed。
//   - 未知引擎會 panic。
//   - warmup 會被夾在 [0, WarmupMax]。
//   - 不會呼叫 IsValidSeed；引擎特定的低熵種子檢查由呼叫端決定。
func Init(engine Engine, seed uint64, warmup int) *Rng {
	if seed == 0 {
		panic("core: zero seed")
	}
	if !engine.Valid() {
		panic(fmt.Sprintf("core: unknown engine %d", uint8(engine)))
	}
	warmup = min(max(warmup, 0), WarmupMax)
	r := &Rng{src: newSource(engine, seed), seed: seed, warmup: warmup}
	for range warmup {
		r.src.next()
	}
	return r
}

// Engine 回傳目前使用的引擎。
func (r *Rng) Engine() Engine { return r.src.engine() }

// Seed 回傳建立時的種子。
func (r *Rng) Seed() uint64 { return r.seed }

// Warmup 回傳實際套用的暖機輪數（截斷後）。
func (r *Rng) Warmup() int { return r.warmup }

// NextU32 推進狀態並回傳下一個 32-bit 輸出。
func (r *Rng) NextU32() uint32 { return r.src.next() }

// NextFloat 回傳 [0,1) 的浮點數，精度 32 bits。
func (r *Rng) NextFloat() float64 {
	return float64(r.src.next()) * floatUnit
}

// RangeExact 以拒絕採樣回傳 [min,max] 內完全均勻的整數。
//
// 完整範圍 [0, MaxUint32] 直接回傳 NextU32；min == max 不消耗亂數。
// min > max 屬於程式錯誤。
func (r *Rng) RangeExact(min, max uint32) uint32 {
	if min > max {
		panic("core: range min > max")
	}
	if min == 0 && max == math.MaxUint32 {
		return r.src.next()
	}
	if min == max {
		return min
	}
	rng := max - min + 1
	threshold := -rng % rng
	for {
		v := r.src.next()
		if v >= threshold {
			return min + v%rng
		}
	}
}

// RangeBiased 以乘法高位把 v 映射到 [min,max]。
//
// 快但有偏：偏差有界但不為零，區間長度越偏離 2 的次方越明顯。
// 需要精確均勻時請改用 (*Rng).RangeExact。
func RangeBiased(v, min, max uint32) uint32 {
	if min > max {
		panic("core: range min > max")
	}
	span := uint64(max-min) + 1
	return min + uint32((uint64(v)*span)>>32)
}

// Clone 回傳狀態相同但彼此獨立的副本。
func (r *Rng) Clone() *Rng {
	c := *r
	c.src = r.src.clone()
	return &c
}

// String 回傳精簡的狀態描述，例如 "[PRNG] PCG32 State:0x... Seq:0x..."。
func (r *Rng) String() string {
	return fmt.Sprintf("[PRNG] %s %s", r.src.engine().Info().Name, r.src.dump())
}

//---------------------------------------
// RAND 介面
//---------------------------------------

// Uint64 串接兩次 32-bit 輸出（先高後低）。
func (r *Rng) Uint64() uint64 {
	return uint64(r.src.next())<<32 | uint64(r.src.next())
}

// Float64 等同 NextFloat。
func (r *Rng) Float64() float64 { return r.NextFloat() }

// UintN 回傳 [0,n) 的無偏亂數，若 n == 0 回傳 0。
func (r *Rng) UintN(n uint) uint {
	if n == 0 {
		return 0
	}
	return uint(r.below(uint64(n)))
}

// IntN 回傳 [0,n) 的無偏亂數，若 n <= 0 回傳 -1。
func (r *Rng) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	return int(r.below(uint64(n)))
}

func (r *Rng) below(n uint64) uint64 {
	if n <= 1<<32 {
		return uint64(r.RangeExact(0, uint32(n-1)))
	}
	threshold := -n % n
	for {
		v := r.Uint64()
		if v >= threshold {
			return v % n
		}
	}
}
