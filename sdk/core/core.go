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

// Package core 提供五種可互換的 32-bit 亂數引擎（MWC、XorShift128、Libc LCG、PCG32、SplitMix64）
// 以及建立在 NextU32 之上的取樣層。
//
// 相同 (engine, seed, warmup) 永遠產生相同的輸出序列。
// 這些產生器都不具密碼學安全性。
package core

// RAND 定義核心亂數取樣能力，*Rng 實作此介面。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

var _ RAND = (*Rng)(nil)

// Core 封裝 RAND，並提供常用取樣與工具方法。
type Core struct {
	RAND
}

// New 允許使用任意 RAND 實作建立 Core。
func New(rng RAND) *Core {
	if rng == nil {
		panic("core: nil generator")
	}
	return &Core{rng}
}

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1
// 熱路徑中只使用哨兵值回傳
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntN(len(src))]
}

// ShuffleInts 使用 Fisher-Yates 演算法對 []int 就地重排。
// 所有 N! 種排列機率相等；時間 O(N)，不配置記憶體。
func (c *Core) ShuffleInts(src []int) {
	if len(src) <= 1 {
		return
	}
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}

// Sample 從 [0,n) 中不重複抽出 k 個索引（部分 Fisher-Yates）。
// k > n 時回傳全部 n 個索引的隨機排列。
func (c *Core) Sample(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	k = min(k, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + c.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
