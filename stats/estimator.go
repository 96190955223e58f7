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
	"gonum.org/v1/gonum/stat/distuv"
)

// CI 信賴區間
type CI struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64 `json:"hat" yaml:"hat"`
	CI  CI      `json:"ci" yaml:"ci"`
}

func validConfidence(c float64) error {
	if !(c > 0 && c < 1) {
		return errs.Domainf("confidence %v out of (0,1)", c)
	}
	return nil
}

// ProportionCI 以 Clopper–Pearson 精確法估計二項比例 k/n 的信賴區間。
func ProportionCI(k, n int, confidence float64) (PointStat, error) {
	if n <= 0 {
		return PointStat{}, errs.Empty("proportion ci")
	}
	if k < 0 || k > n {
		return PointStat{}, errs.Domainf("proportion ci: k=%d out of [0,%d]", k, n)
	}
	if err := validConfidence(confidence); err != nil {
		return PointStat{}, err
	}
	return proportionCICP(k, n, confidence), nil
}

func proportionCICP(k int, n int, confidence float64) PointStat {
	alpha := 1 - confidence
	out := PointStat{Hat: float64(k) / float64(n)}

	// Beta PPF 映射，處理邊界
	if k == 0 {
		out.CI.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		out.CI.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		out.CI.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		out.CI.Hi = b.Quantile(1 - alpha/2)
	}
	return out
}

// ECDFCI 估計 P(X <= x0) 的點估計與 Clopper–Pearson 區間。
func ECDFCI(data []float64, x0, confidence float64) (PointStat, error) {
	if len(data) == 0 {
		return PointStat{}, errs.Empty("ecdf ci")
	}
	k := 0
	for _, v := range data {
		if v <= x0 {
			k++
		}
	}
	return ProportionCI(k, len(data), confidence)
}

// QuantileCI 以 order statistic 估計第 q 分位（q ∈ (0,1)）的無母數信賴區間：
// 把秩視為二項，經 Beta 反推 p 的上下界，再轉回樣本索引。Hat 為線性內插的分位數。
func QuantileCI(data []float64, q, confidence float64) (PointStat, error) {
	if !(q > 0 && q < 1) {
		return PointStat{}, errs.Domainf("quantile ci: q=%v out of (0,1)", q)
	}
	if err := validConfidence(confidence); err != nil {
		return PointStat{}, err
	}
	sorted, err := sortedCopy("quantile ci", data)
	if err != nil {
		return PointStat{}, err
	}
	return quantileCISorted(sorted, q, confidence), nil
}

func quantileCISorted(sorted []float64, q, confidence float64) PointStat {
	n := len(sorted)
	out := PointStat{Hat: percentileSorted(sorted, q*100)}
	if n == 1 {
		out.CI = CI{Lo: sorted[0], Hi: sorted[0]}
		return out
	}
	alpha := 1 - confidence
	k := int(q * float64(n))
	k = min(max(k, 1), n-1)

	bLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	bHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	pLo := bLo.Quantile(alpha / 2)
	pHi := bHi.Quantile(1 - alpha/2)

	li := int(pLo * float64(n))
	ui := int(pHi * float64(n))
	if ui > 0 {
		ui--
	}
	li = min(max(li, 0), n-1)
	ui = min(max(ui, 0), n-1)
	out.CI = CI{Lo: sorted[li], Hi: sorted[ui]}
	return out
}

// MeanCI 以 Student t 分布估計平均數的信賴區間，需 n >= 2。
func MeanCI(data []float64, confidence float64) (PointStat, error) {
	if err := validConfidence(confidence); err != nil {
		return PointStat{}, err
	}
	if err := needTwo("mean ci", data); err != nil {
		return PointStat{}, err
	}
	m := mean(data)
	return meanCI(m, math.Sqrt(variance(data, m)), len(data), confidence), nil
}

func meanCI(m, sd float64, n int, confidence float64) PointStat {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	half := t.Quantile(1-(1-confidence)/2) * sd / math.Sqrt(float64(n))
	return PointStat{Hat: m, CI: CI{Lo: m - half, Hi: m + half}}
}
