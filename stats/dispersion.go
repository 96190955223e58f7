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
	"slices"

	"github.com/zintix-labs/randstat/errs"
)

// 常態分布下的一致性係數
const (
	MADScale = 1.4826
	QnScale  = 2.21914
)

// QnMaxN 為 Qn 接受的最大樣本數；n 個樣本需要 n(n-1)/2 個 float64。
const QnMaxN = 10000

func needTwo(op string, data []float64) error {
	switch {
	case len(data) == 0:
		return errs.Empty(op)
	case len(data) < 2:
		return errs.Domainf("%s: need at least 2 values, got %d", op, len(data))
	case hasNaN(data):
		return errs.NaN(op)
	}
	return nil
}

// Variance 回傳樣本變異數（兩段式，分母 n-1），需 n >= 2。
func Variance(data []float64) (float64, error) {
	if err := needTwo("variance", data); err != nil {
		return math.NaN(), err
	}
	return variance(data, mean(data)), nil
}

func mean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func variance(data []float64, m float64) float64 {
	ss := 0.0
	for _, v := range data {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(data)-1)
}

func StdDev(data []float64) (float64, error) {
	v, err := Variance(data)
	if err != nil {
		return math.NaN(), err
	}
	return math.Sqrt(v), nil
}

// MAD 回傳 median(|x - median(x)|) * 1.4826。
func MAD(data []float64) (float64, error) {
	return MedianAbsDev(data, MADScale)
}

// MedianAbsDev 回傳以 scale 縮放的中位數絕對離差；scale = 1 為原始值。
func MedianAbsDev(data []float64, scale float64) (float64, error) {
	sorted, err := sortedCopy("mad", data)
	if err != nil {
		return math.NaN(), err
	}
	return madSorted(sorted, scale), nil
}

func madSorted(sorted []float64, scale float64) float64 {
	med := percentileSorted(sorted, 50)
	dev := make([]float64, len(sorted))
	for i, v := range sorted {
		dev[i] = math.Abs(v - med)
	}
	slices.Sort(dev)
	return percentileSorted(dev, 50) * scale
}

// IQR 回傳 Q3 - Q1。
func IQR(data []float64) (float64, error) {
	sorted, err := sortedCopy("iqr", data)
	if err != nil {
		return math.NaN(), err
	}
	return percentileSorted(sorted, 75) - percentileSorted(sorted, 25), nil
}

// Qn 回傳 Rousseeuw-Croux Qn 尺度估計：所有成對絕對差的第 25 百分位 * 2.21914。
//
// 成本：O(n²) 時間與 O(n²) 記憶體（n(n-1)/2 個差值）。n > QnMaxN 回傳 ErrDomain。
// 不需要先估計位置，因此崩潰點較高。
func Qn(data []float64) (float64, error) {
	if err := needTwo("qn", data); err != nil {
		return math.NaN(), err
	}
	n := len(data)
	if n > QnMaxN {
		return math.NaN(), errs.Domainf("qn: n=%d exceeds %d", n, QnMaxN)
	}
	diffs := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			diffs = append(diffs, math.Abs(data[i]-data[j]))
		}
	}
	slices.Sort(diffs)
	return percentileSorted(diffs, 25) * QnScale, nil
}

// Range 回傳 max - min。
func Range(data []float64) (float64, error) {
	lo, hi, err := minMax("range", data)
	if err != nil {
		return math.NaN(), err
	}
	return hi - lo, nil
}

// MeanAbsDev 回傳 mean(|x - mean(x)|) * scale。
func MeanAbsDev(data []float64, scale float64) (float64, error) {
	if len(data) == 0 {
		return math.NaN(), errs.Empty("mean abs dev")
	}
	if hasNaN(data) {
		return math.NaN(), errs.NaN("mean abs dev")
	}
	m := mean(data)
	sum := 0.0
	for _, v := range data {
		sum += math.Abs(v - m)
	}
	return sum / float64(len(data)) * scale, nil
}
