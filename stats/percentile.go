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

package stats

import (
	"errors"
	"math"
	"slices"

	"github.com/zintix-labs/randstat/errs"
)

// sortedCopy 回傳 data 的遞增排序副本，從不修改呼叫端的 data。
// 空資料回傳 ErrEmpty；含 NaN 回傳 ErrNaN（NaN 沒有定義的排序位置）。
func sortedCopy(op string, data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, errs.Empty(op)
	}
	if hasNaN(data) {
		return nil, errs.NaN(op)
	}
	cp := slices.Clone(data)
	slices.Sort(cp)
	return cp, nil
}

func hasNaN(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func validP(p float64) bool { return p >= 0 && p <= 100 } // NaN 也會是 false

// percentileSorted 在已排序資料上做線性內插；rank = p/100*(n-1)。
// p == 100 直接回傳最大值，不讀取越界。
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	rank := p / 100 * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	if frac == 0 {
		// 避免 0*Inf
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Percentile 回傳 data 的第 p 百分位（p ∈ [0,100]），不修改 data。
func Percentile(data []float64, p float64) (float64, error) {
	if !validP(p) {
		return math.NaN(), errs.Domainf("percentile: p=%v out of [0,100]", p)
	}
	sorted, err := sortedCopy("percentile", data)
	if err != nil {
		return math.NaN(), err
	}
	return percentileSorted(sorted, p), nil
}

// Percentiles 一次排序 data、一次排序 ps 的索引，依呼叫端順序回傳結果。
//
// 超出 [0,100] 的項目得到 NaN 並記錄在回傳的錯誤中（errors.Is(err, errs.ErrDomain)），
// 其餘項目照常計算。data 為空或含 NaN 時所有結果都是 NaN。
func Percentiles(data, ps []float64) ([]float64, error) {
	out := make([]float64, len(ps))
	sorted, err := sortedCopy("percentiles", data)
	if err != nil {
		for i := range out {
			out[i] = math.NaN()
		}
		return out, err
	}

	order := make([]int, len(ps))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return cmpNaNLast(ps[a], ps[b]) })

	var bad []error
	for _, i := range order {
		p := ps[i]
		if !validP(p) {
			out[i] = math.NaN()
			bad = append(bad, errs.Domainf("percentiles: p[%d]=%v out of [0,100]", i, p))
			continue
		}
		out[i] = percentileSorted(sorted, p)
	}
	if len(bad) > 0 {
		return out, errs.Wrap(errors.Join(bad...), "percentiles: invalid entries")
	}
	return out, nil
}

func cmpNaNLast(a, b float64) int {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	case math.IsNaN(b):
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Quartile 回傳第 q 四分位數，q ∈ {1,2,3}。
func Quartile(data []float64, q int) (float64, error) {
	if q < 1 || q > 3 {
		return math.NaN(), errs.Domainf("quartile: q=%d out of {1,2,3}", q)
	}
	return Percentile(data, float64(q)*25)
}
