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
	"strings"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/sdk/core"
)

// Kind 為分布種類。
type Kind uint8

const (
	KindUniform Kind = iota
	KindNormal
	KindExponential
	KindPoisson
	KindBinomial

	kindCount
)

var kindNames = [kindCount]string{
	KindUniform:     "uniform",
	KindNormal:      "normal",
	KindExponential: "exponential",
	KindPoisson:     "poisson",
	KindBinomial:    "binomial",
}

// Kinds 依固定順序回傳所有分布。
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Discrete 回報此分布是否產生整數樣本。
func (k Kind) Discrete() bool { return k == KindPoisson || k == KindBinomial }

// ParseKind 不分大小寫解析分布名稱，接受 "exp"、"gauss" 等簡寫。
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "exp":
		return KindExponential, nil
	case "gauss", "gaussian":
		return KindNormal, nil
	}
	for k, n := range kindNames {
		if n == key {
			return Kind(k), nil
		}
	}
	return 0, errs.Domainf("unknown distribution %q", name)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Params 為分布參數，各欄位意義依 Kind 而定：
//
//	uniform      A=min    B=max
//	normal       A=mean   B=std_dev
//	exponential  A=lambda
//	poisson      A=lambda
//	binomial     A=p      N=trials
type Params struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	N int     `json:"n,omitempty" yaml:"n,omitempty"`
}

// DefaultParams 回傳各分布的常用預設參數。
func DefaultParams(k Kind) Params {
	switch k {
	case KindNormal:
		return Params{A: 0, B: 1}
	case KindExponential, KindPoisson:
		return Params{A: 1}
	case KindBinomial:
		return Params{A: 0.5, N: 10}
	}
	return Params{A: 0, B: 1}
}

// Validate 檢查 p 對 k 是否合法，規則與對應的產生器相同。
func Validate(k Kind, p Params) error {
	switch k {
	case KindUniform:
		return checkUniform(p.A, p.B)
	case KindNormal:
		return checkNormal(p.A, p.B)
	case KindExponential:
		return checkExponential(p.A)
	case KindPoisson:
		return checkPoisson(p.A)
	case KindBinomial:
		return checkBinomial(p.N, p.A)
	}
	return errs.Domainf("unknown distribution %d", uint8(k))
}

// Fill 依 kind 將樣本寫入 out；整數分布會轉成 float64。
func Fill(k Kind, p Params, out []float64, rng *core.Rng) error {
	switch k {
	case KindUniform:
		return Uniform(out, p.A, p.B, rng)
	case KindNormal:
		return Normal(out, p.A, p.B, rng)
	case KindExponential:
		return Exponential(out, p.A, rng)
	case KindPoisson, KindBinomial:
		mustRng(rng)
		if len(out) == 0 {
			return errs.Domainf("%s: empty output", k)
		}
		ints := make([]int, len(out))
		var err error
		if k == KindPoisson {
			err = Poisson(ints, p.A, rng)
		} else {
			err = Binomial(ints, p.N, p.A, rng)
		}
		if err != nil {
			return err
		}
		for i, v := range ints {
			out[i] = float64(v)
		}
		return nil
	}
	return errs.Domainf("unknown distribution %d", uint8(k))
}
