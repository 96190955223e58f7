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

// FitResult 為適合度檢定結果。
type FitResult struct {
	Stat   float64 `json:"stat" yaml:"stat"`
	DoF    int     `json:"dof" yaml:"dof"`
	PValue float64 `json:"p_value" yaml:"p_value"`
}

// ChiSquareUniform 檢定 counts 是否來自各類別機率相等的分布，DoF = len(counts)-1。
func ChiSquareUniform(counts []int) (FitResult, error) {
	k := len(counts)
	if k < 2 {
		return FitResult{}, errs.Domainf("chi-square: need at least 2 categories, got %d", k)
	}
	total := 0
	for i, c := range counts {
		if c < 0 {
			return FitResult{}, errs.Domainf("chi-square: negative count at %d", i)
		}
		total += c
	}
	if total == 0 {
		return FitResult{}, errs.Empty("chi-square")
	}
	exp := float64(total) / float64(k)
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - exp
		chi += d * d / exp
	}
	dist := distuv.ChiSquared{K: float64(k - 1)}
	return FitResult{Stat: chi, DoF: k - 1, PValue: dist.Survival(chi)}, nil
}

// ChiSquareCritical 回傳自由度 dof、顯著水準 alpha 的右尾臨界值。
func ChiSquareCritical(dof int, alpha float64) (float64, error) {
	if dof < 1 {
		return math.NaN(), errs.Domainf("chi-square: dof=%d must be >= 1", dof)
	}
	if !(alpha > 0 && alpha < 1) {
		return math.NaN(), errs.Domainf("chi-square: alpha=%v out of (0,1)", alpha)
	}
	return distuv.ChiSquared{K: float64(dof)}.Quantile(1 - alpha), nil
}

// KSNormal 為單樣本 Kolmogorov–Smirnov 檢定，對照 N(mean, sd²)。
// DoF 欄位填樣本數 n；PValue 使用漸近 Kolmogorov 分布（Stephens 修正）。
func KSNormal(data []float64, mean, sd float64) (FitResult, error) {
	if sd <= 0 || math.IsNaN(sd) || math.IsNaN(mean) {
		return FitResult{}, errs.Domainf("ks: need sd > 0, got %v", sd)
	}
	sorted, err := sortedCopy("ks", data)
	if err != nil {
		return FitResult{}, err
	}
	norm := distuv.Normal{Mu: mean, Sigma: sd}
	n := float64(len(sorted))
	d := 0.0
	for i, v := range sorted {
		f := norm.CDF(v)
		d = max(d, f-float64(i)/n, float64(i+1)/n-f)
	}
	sn := math.Sqrt(n)
	return FitResult{Stat: d, DoF: len(sorted), PValue: kolmogorovQ((sn + 0.12 + 0.11/sn) * d)}, nil
}

// kolmogorovQ = 2 Σ (-1)^(k-1) exp(-2 k² λ²)
func kolmogorovQ(lambda float64) float64 {
	if lambda < 1e-3 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * 2 * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	return min(max(sum, 0), 1)
}
