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
	"math"

	"github.com/zintix-labs/randstat/errs"
)

func minMax(op string, data []float64) (float64, float64, error) {
	if len(data) == 0 {
		return math.NaN(), math.NaN(), errs.Empty(op)
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		if math.IsNaN(v) {
			return math.NaN(), math.NaN(), errs.NaN(op)
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, nil
}

func Min(data []float64) (float64, error) {
	lo, _, err := minMax("min", data)
	return lo, err
}

func Max(data []float64) (float64, error) {
	_, hi, err := minMax("max", data)
	return hi, err
}

func Mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return math.NaN(), errs.Empty("mean")
	}
	if hasNaN(data) {
		return math.NaN(), errs.NaN("mean")
	}
	return mean(data), nil
}

// Median 奇數個取中間值，偶數個取兩中間值的內插。
func Median(data []float64) (float64, error) {
	sorted, err := sortedCopy("median", data)
	if err != nil {
		return math.NaN(), err
	}
	return summarizeSorted(sorted).Median, nil
}

// Mode 回傳所有出現次數最多的值（遞增）。全部值都只出現一次時，所有值都是眾數。
func Mode(data []float64) ([]float64, error) {
	sorted, err := sortedCopy("mode", data)
	if err != nil {
		return nil, err
	}
	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			run++
			best = max(best, run)
		} else {
			run = 1
		}
	}
	modes := make([]float64, 0)
	run = 1
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i] == sorted[i-1] {
			run++
			continue
		}
		if run == best {
			modes = append(modes, sorted[i-1])
		}
		run = 1
	}
	return modes, nil
}
