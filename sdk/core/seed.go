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
	"crypto/rand"
	"math"
	"math/big"
	"os"
	"sync/atomic"
	"time"
)

const (
	seedMWCMin     = 1
	seedXorShiftLo = 0xF
	goldenRatio64  = 0x9E3779B97F4A7C15
)

// IsValidSeed 檢查引擎特定的低熵種子：
//   - MWC：seed >= 1
//   - XorShift128：低 4 bits 不可全為 0
//   - 其他引擎：永遠為 true
//
// 僅供參考，Init 不會呼叫。
func IsValidSeed(seed uint64, engine Engine) bool {
	switch engine {
	case MWC:
		return seed >= seedMWCMin
	case XorShift128:
		return seed&seedXorShiftLo != 0
	}
	return true
}

// DefaultSeed 以目前時間與 pid 產生非零種子。
func DefaultSeed() uint64 {
	now := time.Now()
	seed := uint64(now.Unix()) << 32
	seed ^= uint64(now.Nanosecond()) << 16
	seed ^= uint64(os.Getpid())
	return nonZero(fmix64(seed))
}

// TimeSeed 混合時間、單調時鐘與加密隨機來源產生非零種子。
// 加密來源失敗時退回只用時間。
func TimeSeed() uint64 {
	start := time.Now()
	seed := uint64(start.UnixNano())
	if n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64)); err == nil {
		seed ^= uint64(n.Int64()) << 1
	}
	seed ^= uint64(time.Since(start).Nanoseconds()) << 48
	return nonZero(fmix64(seed))
}

func nonZero(seed uint64) uint64 {
	if seed == 0 {
		return goldenRatio64
	}
	return seed
}

// fmix64 為 MurmurHash3 的 64-bit finalizer。
func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

//---------------------------------------
// SeedMaker
//---------------------------------------

const mask63 = uint64(1<<63) - 1

// SeedMaker 從 base seed 派生決定性的非零子種子序列。
//
// state 走 mod 2^63 的全週期 LCG（不重複），再用可逆 mix63 打散。
// Next 可被多個 goroutine 同時呼叫，每次都會取得唯一的下一個 state。
type SeedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func NewSeedMaker(base uint64) *SeedMaker {
	s := &SeedMaker{}
	s.state.Store(base & mask63)
	return s
}

// Next 回傳下一個子種子，保證非零。
func (s *SeedMaker) Next() uint64 {
	for {
		old := s.state.Load()
		next := (old*pcg32Multiplier + pcg32Increment) & mask63
		if !s.state.CompareAndSwap(old, next) {
			continue
		}
		if v := mix63(next); v != 0 {
			return v
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * splitMixMul1) & mask63
	x ^= x >> 27
	x = (x * splitMixMul2) & mask63
	x ^= x >> 31
	return x & mask63
}
