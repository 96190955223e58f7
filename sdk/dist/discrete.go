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

package dist

import (
	"math"
	"math/bits"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/sdk/core"
)

// Discrete 是 Vose alias method 的整數版本加權類別抽樣器。
//
//   - 建表 O(N)，抽樣 O(1)（固定兩次 RangeExact）。
//   - 全整數運算：prob[i] = w[i]*N 與 total 比較，沒有 0.999... != 1.0 的誤差。
type Discrete struct {
	prob    []uint64
	aliases []int
	total   uint64
}

// NewDiscrete 以非負整數權重建立抽樣器。
// 空權重、負權重、總和為 0、或 total*N 溢位時回傳 ErrDomain。
func NewDiscrete(weights []int) (*Discrete, error) {
	n := len(weights)
	if n == 0 {
		return nil, errs.Domainf("discrete: no weights")
	}
	total := uint64(0)
	for i, w := range weights {
		if w < 0 {
			return nil, errs.Domainf("discrete: negative weight at %d", i)
		}
		if total > math.MaxUint32-uint64(w) {
			return nil, errs.Domainf("discrete: total weight exceeds uint32")
		}
		total += uint64(w)
	}
	if total == 0 {
		return nil, errs.Domainf("discrete: all weights are zero")
	}
	if hi, _ := bits.Mul64(total, uint64(n)); hi != 0 {
		return nil, errs.Domainf("discrete: weights too large")
	}

	prob := make([]uint64, n)
	aliases := make([]int, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, w := range weights {
		prob[i] = uint64(w) * uint64(n)
		aliases[i] = i
		if prob[i] < total {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}
	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		aliases[s] = l
		prob[l] = prob[l] + prob[s] - total // sum(prob) = total*n 維持不變
		if prob[l] < total {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	return &Discrete{prob: prob, aliases: aliases, total: total}, nil
}

// Len 回傳類別數。
func (d *Discrete) Len() int { return len(d.prob) }

// Pick 抽出一個類別索引。
func (d *Discrete) Pick(rng *core.Rng) int {
	mustRng(rng)
	idx := int(rng.RangeExact(0, uint32(len(d.prob)-1)))
	if uint64(rng.RangeExact(0, uint32(d.total-1))) < d.prob[idx] {
		return idx
	}
	return d.aliases[idx]
}

// Fill 將 len(out) 個抽樣結果寫入 out。
func (d *Discrete) Fill(out []int, rng *core.Rng) {
	mustRng(rng)
	for i := range out {
		out[i] = d.Pick(rng)
	}
}
