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

// Package dist 以 core.Rng 的 NextFloat 為唯一亂數來源，產生常見分布的樣本。
//
// 所有產生器都寫入呼叫端預先配置的 out：
//   - rng == nil 屬於程式錯誤，直接 panic。
//   - len(out) == 0 或參數不合法時回傳 errs.ErrDomain，且完全不寫入 out。
package dist

import (
	"math"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/sdk/core"
)

// PoissonMaxLambda 是 Knuth 乘積法可接受的最大 λ；更大時 e^-λ 會逼近浮點下限。
const PoissonMaxLambda = 500.0

func mustRng(rng *core.Rng) {
	if rng == nil {
		panic("dist: nil generator")
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Uniform 於 [min,max) 產生均勻樣本，需 min < max。
func Uniform(out []float64, min, max float64, rng *core.Rng) error {
	mustRng(rng)
	if len(out) == 0 {
		return errs.Domainf("uniform: empty output")
	}
	if err := checkUniform(min, max); err != nil {
		return err
	}
	span := max - min
	for i := range out {
		out[i] = min + rng.NextFloat()*span
	}
	return nil
}

// Normal 以 Box-Muller 成對產生常態樣本，需 stdDev >= 0。
// 奇數長度時最後一對的第二個值被丟棄；u1 == 0 會重抽以避免 log(0)。
func Normal(out []float64, mean, stdDev float64, rng *core.Rng) error {
	mustRng(rng)
	if len(out) == 0 {
		return errs.Domainf("normal: empty output")
	}
	if err := checkNormal(mean, stdDev); err != nil {
		return err
	}
	for i := 0; i < len(out); i += 2 {
		u1 := rng.NextFloat()
		for u1 == 0 {
			u1 = rng.NextFloat()
		}
		u2 := rng.NextFloat()
		mag := stdDev * math.Sqrt(-2*math.Log(u1))
		s, c := math.Sincos(2 * math.Pi * u2)
		out[i] = mag*c + mean
		if i+1 < len(out) {
			out[i+1] = mag*s + mean
		}
	}
	return nil
}

// Exponential 以反函數法 -ln(1-u)/λ 產生樣本，需 λ > 0。
func Exponential(out []float64, lambda float64, rng *core.Rng) error {
	mustRng(rng)
	if len(out) == 0 {
		return errs.Domainf("exponential: empty output")
	}
	if err := checkExponential(lambda); err != nil {
		return err
	}
	for i := range out {
		out[i] = -math.Log1p(-rng.NextFloat()) / lambda
	}
	return nil
}

// Poisson 以 Knuth 乘積法產生樣本，需 0 < λ <= PoissonMaxLambda。
func Poisson(out []int, lambda float64, rng *core.Rng) error {
	mustRng(rng)
	if len(out) == 0 {
		return errs.Domainf("poisson: empty output")
	}
	if err := checkPoisson(lambda); err != nil {
		return err
	}
	limit := math.Exp(-lambda)
	for i := range out {
		k := 0
		p := 1.0
		for {
			p *= rng.NextFloat()
			if p <= limit {
				break
			}
			k++
		}
		out[i] = k
	}
	return nil
}

// Binomial 直接模擬 n 次 Bernoulli 試驗，每個樣本 O(n)，只適合小 n。
// 需 n > 0 且 p ∈ [0,1]。
func Binomial(out []int, n int, p float64, rng *core.Rng) error {
	mustRng(rng)
	if len(out) == 0 {
		return errs.Domainf("binomial: empty output")
	}
	if err := checkBinomial(n, p); err != nil {
		return err
	}
	for i := range out {
		k := 0
		for range n {
			if rng.NextFloat() < p {
				k++
			}
		}
		out[i] = k
	}
	return nil
}

func checkUniform(min, max float64) error {
	if !finite(min, max) || min >= max {
		return errs.Domainf("uniform: need min < max, got [%v, %v]", min, max)
	}
	return nil
}

func checkNormal(mean, stdDev float64) error {
	if !finite(mean, stdDev) || stdDev < 0 {
		return errs.Domainf("normal: need std_dev >= 0, got %v", stdDev)
	}
	return nil
}

func checkExponential(lambda float64) error {
	if !finite(lambda) || lambda <= 0 {
		return errs.Domainf("exponential: need lambda > 0, got %v", lambda)
	}
	return nil
}

func checkPoisson(lambda float64) error {
	if !finite(lambda) || lambda <= 0 || lambda > PoissonMaxLambda {
		return errs.Domainf("poisson: need 0 < lambda <= %v, got %v", PoissonMaxLambda, lambda)
	}
	return nil
}

func checkBinomial(n int, p float64) error {
	if n <= 0 || !finite(p) || p < 0 || p > 1 {
		return errs.Domainf("binomial: need n > 0 and p in [0,1], got n=%d p=%v", n, p)
	}
	return nil
}
