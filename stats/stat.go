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

// Package stats 以私有排序副本為核心，提供百分位、五數摘要、離群判斷、
// 離散度估計、分桶與彙整報表。所有函數都不會修改呼叫端的輸入陣列。
package stats

import (
	"io"
	"math"
	"slices"

	"github.com/zintix-labs/randstat/errs"
)

// 預設參數
const (
	DefaultConfidence = 0.95
	DefaultBins       = 10
	DefaultQnLimit    = 2000
	DefaultEpsilon    = 1e-9
)

// DefaultPercentiles 為 Describe 未指定時的百分位。
var DefaultPercentiles = []float64{5, 25, 50, 75, 95}

// DescribeOptions 控制 Describe 的輸出內容；零值套用預設。
type DescribeOptions struct {
	Percentiles []float64 // 空值套用 DefaultPercentiles
	Bins        int       // <= 0 套用 DefaultBins
	Strategy    Strategy
	Confidence  float64 // 0 套用 DefaultConfidence
	QnLimit     int     // 0 套用 DefaultQnLimit；< 0 停用 Qn
}

func (o DescribeOptions) normalized() DescribeOptions {
	if len(o.Percentiles) == 0 {
		o.Percentiles = DefaultPercentiles
	}
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.Confidence == 0 {
		o.Confidence = DefaultConfidence
	}
	if o.QnLimit == 0 {
		o.QnLimit = DefaultQnLimit
	}
	return o
}

// PercentilePoint 為單一百分位結果。
type PercentilePoint struct {
	P     float64 `json:"p" yaml:"p"`
	Value float64 `json:"value" yaml:"value"`
}

// BinReport 為分桶結果。
type BinReport struct {
	Schema Schema `json:"schema" yaml:"schema"`
	Counts []int  `json:"counts" yaml:"counts"`
}

// OutlierReport 為 Tukey fence 離群統計。
type OutlierReport struct {
	Count int     `json:"count" yaml:"count"`
	Rate  float64 `json:"rate" yaml:"rate"`
	Low   int     `json:"low" yaml:"low"`
	High  int     `json:"high" yaml:"high"`
}

// Report 為單一資料集的彙整報表。
type Report struct {
	Count       int               `json:"count" yaml:"count"`
	Mean        float64           `json:"mean" yaml:"mean"`
	StdDev      float64           `json:"std_dev" yaml:"std_dev"`
	Variance    float64           `json:"variance" yaml:"variance"`
	MAD         float64           `json:"mad" yaml:"mad"`
	MeanAbsDev  float64           `json:"mean_abs_dev" yaml:"mean_abs_dev"`
	Qn          *float64          `json:"qn,omitempty" yaml:"qn,omitempty"`
	Summary     FiveNumSummary    `json:"summary" yaml:"summary"`
	Percentiles []PercentilePoint `json:"percentiles" yaml:"percentiles"`
	Bins        *BinReport        `json:"bins,omitempty" yaml:"bins,omitempty"`
	Outliers    OutlierReport     `json:"outliers" yaml:"outliers"`
	MeanCI      PointStat         `json:"mean_ci" yaml:"mean_ci"`
	MedianCI    PointStat         `json:"median_ci" yaml:"median_ci"`
	Confidence  float64           `json:"confidence" yaml:"confidence"`
}

// Describe 以一份排序副本計算完整報表，需要至少 2 個有限值。
//
// 若所有值相同則不分桶（Bins 為 nil）。n > QnLimit 時略過 Qn。
func Describe(data []float64, opt DescribeOptions) (*Report, error) {
	opt = opt.normalized()
	if err := needTwo("describe", data); err != nil {
		return nil, err
	}
	for _, v := range data {
		if math.IsInf(v, 0) {
			return nil, errs.Domainf("describe: infinite value")
		}
	}
	for i, p := range opt.Percentiles {
		if !validP(p) {
			return nil, errs.Domainf("describe: percentiles[%d]=%v out of [0,100]", i, p)
		}
	}
	if err := validConfidence(opt.Confidence); err != nil {
		return nil, err
	}
	if opt.Strategy > PercentileBins {
		return nil, errs.Domainf("describe: unknown strategy %d", uint8(opt.Strategy))
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)
	n := len(sorted)
	m := mean(sorted)
	v := variance(sorted, m)
	mad := madSorted(sorted, MADScale)
	meanAbs, _ := MeanAbsDev(sorted, 1)

	r := &Report{
		Count:      n,
		Mean:       m,
		StdDev:     math.Sqrt(v),
		Variance:   v,
		MAD:        mad,
		MeanAbsDev: meanAbs,
		Summary:    summarizeSorted(sorted),
		Confidence: opt.Confidence,
	}

	if opt.QnLimit > 0 && n <= opt.QnLimit {
		if qn, err := Qn(sorted); err == nil {
			r.Qn = &qn
		}
	}

	ps := slices.Clone(opt.Percentiles)
	slices.Sort(ps)
	r.Percentiles = make([]PercentilePoint, len(ps))
	for i, p := range ps {
		r.Percentiles[i] = PercentilePoint{P: p, Value: percentileSorted(sorted, p)}
	}

	// 低側離群值必小於 Q1，高側必大於 Q3，以中位數區分即可
	for i, out := range OutlierMask(sorted, r.Summary) {
		switch {
		case !out:
		case sorted[i] < r.Summary.Median:
			r.Outliers.Low++
		default:
			r.Outliers.High++
		}
	}
	r.Outliers.Count = r.Outliers.Low + r.Outliers.High
	r.Outliers.Rate = float64(r.Outliers.Count) / float64(n)

	if sorted[0] < sorted[n-1] {
		edges := make([]float64, opt.Bins+1)
		strategy := opt.Strategy
		if strategy == Logarithmic && sorted[0] <= -1 {
			strategy = Linear
		}
		schema, err := AutoEdges(edges, sorted, strategy)
		if err != nil {
			return nil, err
		}
		counts, _ := Counts(data, schema, DefaultEpsilon)
		r.Bins = &BinReport{Schema: schema, Counts: counts}
	}

	r.MeanCI = meanCI(m, r.StdDev, n, opt.Confidence)
	r.MedianCI = quantileCISorted(sorted, 0.5, opt.Confidence)
	return r, nil
}

// WriteWith 以指定的 render 輸出報表。
func (r *Report) WriteWith(w io.Writer, rep ReportRender) error {
	return rep.Write(w, r)
}
