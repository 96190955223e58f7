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
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/zintix-labs/randstat/errs"
)

// Strategy 為分桶邊界的建構方式。
type Strategy uint8

const (
	Linear         Strategy = iota // 等寬
	Logarithmic                    // log10(x+1) 空間等寬
	PercentileBins                 // 以資料分位數切分，需要資料
)

var strategyNames = [...]string{
	Linear:         "linear",
	Logarithmic:    "log",
	PercentileBins: "percentile",
}

// Strategies 依固定順序回傳所有分桶策略。
func Strategies() []Strategy {
	return []Strategy{Linear, Logarithmic, PercentileBins}
}

func (s Strategy) String() string {
	if int(s) >= len(strategyNames) {
		return "unknown"
	}
	return strategyNames[s]
}

// ParseStrategy 不分大小寫解析，接受 "logarithmic" 與 "quantile"。
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	case "percentile", "quantile":
		return PercentileBins, nil
	}
	return 0, errs.Domainf("unknown binning strategy %q", name)
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Schema 描述 Count 個桶與 Count+1 個邊界。
// Edges 由呼叫端配置；本包只寫入，不會配置或保存其他副本。
type Schema struct {
	Min      float64   `json:"min" yaml:"min"`
	Max      float64   `json:"max" yaml:"max"`
	Count    int       `json:"count" yaml:"count"`
	Strategy Strategy  `json:"strategy" yaml:"strategy"`
	Edges    []float64 `json:"edges" yaml:"edges"`
}

// 與原本的數值輸出一致，邊界統一四捨五入到小數 6 位。
// 絕對值過大時 x*1e6 會溢位，且小數 6 位已超出精度，直接回傳。
func round6(x float64) float64 {
	if math.Abs(x) >= 1e15 {
		return x
	}
	return math.Round(x*1e6) / 1e6
}

// 四捨五入最多移動 5e-7；相鄰邊界間距都大於 2e-6 時，捨入後仍嚴格遞增。
const minRoundGap = 2e-6

// roundInterior 將內部邊界四捨五入到小數 6 位，但只在不破壞嚴格遞增時才做。
func roundInterior(edges []float64) {
	for i := 1; i < len(edges); i++ {
		if edges[i]-edges[i-1] <= minRoundGap {
			return
		}
	}
	for i := 1; i < len(edges)-1; i++ {
		edges[i] = round6(edges[i])
	}
}

// BuildEdges 依 (min, max, strategy) 填入 edges 並回傳 Schema，桶數為 len(edges)-1。
//
// 以下皆為程式錯誤並 panic：len(edges) < 2、min >= max、非有限值、
// PercentileBins（需要資料，請用 AutoEdges）、Logarithmic 且 min <= -1。
func BuildEdges(edges []float64, min, max float64, strategy Strategy) Schema {
	if len(edges) < 2 {
		panic("stats: edges buffer must hold count+1 >= 2 values")
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min >= max {
		panic(fmt.Sprintf("stats: invalid schema range [%v, %v]", min, max))
	}
	count := len(edges) - 1
	switch strategy {
	case Linear:
		step := (max - min) / float64(count)
		for i := range edges {
			edges[i] = min + float64(i)*step
		}
	case Logarithmic:
		if min <= -1 {
			panic("stats: logarithmic schema needs min > -1")
		}
		lo := math.Log10(min + 1)
		hi := math.Log10(max + 1)
		step := (hi - lo) / float64(count)
		for i := range edges {
			edges[i] = math.Pow(10, lo+float64(i)*step) - 1
		}
	case PercentileBins:
		panic("stats: percentile schema needs data, use AutoEdges")
	default:
		panic(fmt.Sprintf("stats: unknown strategy %d", uint8(strategy)))
	}
	edges[0], edges[count] = min, max
	roundInterior(edges)
	return Schema{Min: min, Max: max, Count: count, Strategy: strategy, Edges: edges}
}

// NewSchema 是 BuildEdges 的別名寫法，方便一次建好 buffer。
func NewSchema(count int, min, max float64, strategy Strategy) Schema {
	if count <= 0 {
		panic("stats: bin count must be > 0")
	}
	return BuildEdges(make([]float64, count+1), min, max, strategy)
}

// AutoEdges 以資料的最小/最大值建立 Schema。
// PercentileBins 的內部邊界為第 100*i/count 百分位（可能因重複值而相等）。
// 空資料回傳 ErrEmpty，含 NaN 回傳 ErrNaN，含 ±Inf 或所有值相同回傳 ErrDomain。
func AutoEdges(edges []float64, data []float64, strategy Strategy) (Schema, error) {
	if len(edges) < 2 {
		panic("stats: edges buffer must hold count+1 >= 2 values")
	}
	sorted, err := sortedCopy("auto bin", data)
	if err != nil {
		return Schema{}, err
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Schema{}, errs.Domainf("auto bin: non-finite range [%v, %v]", lo, hi)
	}
	if lo == hi {
		return Schema{}, errs.Domainf("auto bin: all values equal %v", lo)
	}
	if strategy != PercentileBins {
		if strategy == Logarithmic && lo <= -1 {
			return Schema{}, errs.Domainf("auto bin: logarithmic needs min > -1, got %v", lo)
		}
		return BuildEdges(edges, lo, hi, strategy), nil
	}
	count := len(edges) - 1
	edges[0], edges[count] = lo, hi
	for i := 1; i < count; i++ {
		edges[i] = round6(percentileSorted(sorted, 100*float64(i)/float64(count)))
	}
	return Schema{Min: lo, Max: hi, Count: count, Strategy: strategy, Edges: edges}, nil
}

// Index 回傳 v 所在的桶 [0, Count-1]；NaN 回傳 -1。
//
// Linear 用 floor((v-min)/(max-min)*count)；其他策略以邊界二分搜尋。
// 範圍外的值夾到第一或最後一桶。
func (s Schema) Index(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	var i int
	if s.Strategy == Linear {
		f := math.Floor((v - s.Min) / (s.Max - s.Min) * float64(s.Count))
		switch {
		case f < 0:
			return 0
		case f >= float64(s.Count):
			return s.Count - 1
		}
		i = int(f)
	} else {
		// 第一個上界 > v 的桶
		i = sort.Search(s.Count, func(k int) bool { return s.Edges[k+1] > v })
	}
	return min(max(i, 0), s.Count-1)
}

// AssignFloat 將每個值的桶索引寫入 bins（len(bins) 必須等於 len(values)）。
// 與 Max 相差 eps 以內的值一律歸最後一桶，避免浮點誤差。
// NaN 的索引為 -1，並回傳 ErrNaN；其餘值照常分桶。
func AssignFloat(values []float64, s Schema, eps float64, bins []int) error {
	if len(bins) != len(values) {
		panic("stats: bins length must equal values length")
	}
	var nanSeen bool
	for i, v := range values {
		if math.IsNaN(v) {
			bins[i] = -1
			nanSeen = true
			continue
		}
		if math.Abs(v-s.Max) <= eps {
			bins[i] = s.Count - 1
			continue
		}
		bins[i] = s.Index(v)
	}
	if nanSeen {
		return errs.NaN("assign bins")
	}
	return nil
}

// AssignInt 為整數版本；整數不需要 epsilon。
func AssignInt(values []int, s Schema, bins []int) {
	if len(bins) != len(values) {
		panic("stats: bins length must equal values length")
	}
	for i, v := range values {
		bins[i] = s.Index(float64(v))
	}
}

// Counts 回傳每個桶的個數（長度 Count）。NaN 不計入，並回傳 ErrNaN。
func Counts(values []float64, s Schema, eps float64) ([]int, error) {
	idx := make([]int, len(values))
	err := AssignFloat(values, s, eps, idx)
	counts := make([]int, s.Count)
	for _, b := range idx {
		if b >= 0 {
			counts[b]++
		}
	}
	return counts, err
}

func (s Schema) mustBin(i int) {
	if i < 0 || i >= s.Count {
		panic(fmt.Sprintf("stats: bin index %d out of range [0,%d)", i, s.Count))
	}
}

// Center 回傳第 i 桶的中點。
func (s Schema) Center(i int) float64 {
	s.mustBin(i)
	return (s.Edges[i] + s.Edges[i+1]) / 2
}

// Width 回傳第 i 桶的寬度。
func (s Schema) Width(i int) float64 {
	s.mustBin(i)
	return s.Edges[i+1] - s.Edges[i]
}

// Label 回傳像 "[0,20)" 的區間標籤，最後一桶為閉區間。
func (s Schema) Label(i int) string {
	s.mustBin(i)
	if i == s.Count-1 {
		return fmt.Sprintf("[%g,%g]", s.Edges[i], s.Edges[i+1])
	}
	return fmt.Sprintf("[%g,%g)", s.Edges[i], s.Edges[i+1])
}
