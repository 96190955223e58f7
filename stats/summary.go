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

// TukeyK 為 Tukey fence 的倍數。
const TukeyK = 1.5

// FiveNumSummary 由同一份排序副本計算。
// 對任何非空有限資料 Min <= Q1 <= Median <= Q3 <= Max。
type FiveNumSummary struct {
	Min        float64 `json:"min" yaml:"min"`
	Q1         float64 `json:"q1" yaml:"q1"`
	Median     float64 `json:"median" yaml:"median"`
	Q3         float64 `json:"q3" yaml:"q3"`
	Max        float64 `json:"max" yaml:"max"`
	IQR        float64 `json:"iqr" yaml:"iqr"`
	LowerFence float64 `json:"lower_fence" yaml:"lower_fence"`
	UpperFence float64 `json:"upper_fence" yaml:"upper_fence"`
}

// Summarize 計算五數摘要與 Tukey fences，不修改 data。
func Summarize(data []float64) (FiveNumSummary, error) {
	sorted, err := sortedCopy("five number summary", data)
	if err != nil {
		return FiveNumSummary{}, err
	}
	return summarizeSorted(sorted), nil
}

func summarizeSorted(sorted []float64) FiveNumSummary {
	n := len(sorted)
	s := FiveNumSummary{
		Min: sorted[0],
		Q1:  percentileSorted(sorted, 25),
		Q3:  percentileSorted(sorted, 75),
		Max: sorted[n-1],
	}
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = percentileSorted(sorted, 50)
	}
	s.IQR = s.Q3 - s.Q1
	s.LowerFence = s.Q1 - TukeyK*s.IQR
	s.UpperFence = s.Q3 + TukeyK*s.IQR
	return s
}

// IsOutlier 回報 v 是否落在 Tukey fences 之外。
func (s FiveNumSummary) IsOutlier(v float64) bool {
	return v < s.LowerFence || v > s.UpperFence
}

func IsOutlier(v float64, s FiveNumSummary) bool { return s.IsOutlier(v) }

// OutlierMask 是唯一執行判斷的地方；Count/Collect 都由 mask 推導。
func OutlierMask(values []float64, s FiveNumSummary) []bool {
	mask := make([]bool, len(values))
	for i, v := range values {
		mask[i] = s.IsOutlier(v)
	}
	return mask
}

func CountOutliers(values []float64, s FiveNumSummary) int {
	n := 0
	for _, m := range OutlierMask(values, s) {
		if m {
			n++
		}
	}
	return n
}

// CollectOutliers 依原始順序回傳所有離群值。
func CollectOutliers(values []float64, s FiveNumSummary) []float64 {
	mask := OutlierMask(values, s)
	out := make([]float64, 0)
	for i, m := range mask {
		if m {
			out = append(out, values[i])
		}
	}
	return out
}
