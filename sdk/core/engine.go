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

package core

import (
	"strings"

	"github.com/zintix-labs/randstat/errs"
)

// Engine 選擇一種 32-bit 亂數演算法。
type Engine uint8

const (
	MWC Engine = iota
	XorShift128
	LibcLCG
	PCG32
	SplitMix64

	engineCount
)

// EngineInfo 為各引擎的靜態描述。
type EngineInfo struct {
	Name       string  `json:"name" yaml:"name"`
	Key        string  `json:"key" yaml:"key"`
	PeriodLog2 int     `json:"period_log2" yaml:"period_log2"` // 週期約為 2^PeriodLog2
	Speed      float64 `json:"speed" yaml:"speed"`             // 相對速度（LibcLCG 的基準略低於 1）
}

var engineInfos = [engineCount]EngineInfo{
	MWC:         {Name: "Marsaglia's MWC", Key: "mwc", PeriodLog2: 60, Speed: 1.0},
	XorShift128: {Name: "XORShift128", Key: "xorshift128", PeriodLog2: 128, Speed: 1.3},
	LibcLCG:     {Name: "Libc LCG", Key: "lcg", PeriodLog2: 31, Speed: 0.8},
	PCG32:       {Name: "PCG32", Key: "pcg32", PeriodLog2: 64, Speed: 1.1},
	SplitMix64:  {Name: "SplitMix64", Key: "splitmix64", PeriodLog2: 64, Speed: 1.2},
}

// 額外接受的別名
var engineAlias = map[string]Engine{
	"marsaglia": MWC,
	"xorshift":  XorShift128,
	"c99":       LibcLCG,
	"libc":      LibcLCG,
	"pcg":       PCG32,
	"splitmix":  SplitMix64,
}

// Engines 依固定順序回傳所有引擎。
func Engines() []Engine {
	out := make([]Engine, 0, engineCount)
	for e := Engine(0); e < engineCount; e++ {
		out = append(out, e)
	}
	return out
}

// Valid 回報 e 是否為已定義的引擎。
func (e Engine) Valid() bool { return e < engineCount }

// Info 回傳引擎描述；未定義的引擎會 panic。
func (e Engine) Info() EngineInfo {
	if !e.Valid() {
		panic("core: unknown engine")
	}
	return engineInfos[e]
}

func (e Engine) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return engineInfos[e].Key
}

// ParseEngine 不分大小寫解析引擎名稱（key 或別名）。
func ParseEngine(name string) (Engine, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for e := Engine(0); e < engineCount; e++ {
		if engineInfos[e].Key == key {
			return e, nil
		}
	}
	if e, ok := engineAlias[key]; ok {
		return e, nil
	}
	return 0, errs.Domainf("unknown engine %q", name)
}

func (e Engine) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, errs.Domainf("unknown engine %d", uint8(e))
	}
	return []byte(e.String()), nil
}

func (e *Engine) UnmarshalText(b []byte) error {
	v, err := ParseEngine(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
