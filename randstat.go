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

// Package randstat 提供 randstat 的「組裝入口（assembler）」。
//
// 它把三層地基接在一起：
//  1. sdk/core：五種 32-bit 亂數引擎與取樣層（Init / NextU32 / NextFloat / RangeExact）。
//  2. sdk/dist：以 NextFloat 為唯一來源的分布產生器。
//  3. stats：排序副本上的百分位、五數摘要、離散度、分桶與彙整報表。
//
// Lab 是對外的最小單位：給它一個 runcfg.RunSetting，它會建立引擎、產生樣本、
// 計算 stats.Report 並回傳 Result。同一組 (engine, seed, warmup, dist, params, count)
// 一定得到相同的樣本與報表。
//
// 典型使用情境：
//   - CLI（cmd/run）：以旗標或 YAML 計畫執行並輸出表格 / JSON / YAML。
//   - HTTP 服務（cmd/svr）：由 server/api/v1 呼叫 Lab.RunContext。
//
// 注意：產生是單執行緒的；Lab 本身可被多個 goroutine 共用（只有種子產生器是共享狀態，且為原子操作）。
package randstat

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/stats"
)

// Lab 組裝引擎、分布與統計。
type Lab struct {
	log      *slog.Logger
	progress bool
	baseSeed uint64
	seeds    *core.SeedMaker
}

// Option 設定 Lab。
type Option func(*Lab)

// WithLogger 指定 logger；nil 表示不輸出。
func WithLogger(l *slog.Logger) Option {
	return func(lab *Lab) {
		if l != nil {
			lab.log = l
		}
	}
}

// WithProgress 控制是否在 stderr 顯示進度條。
func WithProgress(show bool) Option {
	return func(lab *Lab) { lab.progress = show }
}

// WithBaseSeed 指定種子產生器的起點；0 表示以 core.TimeSeed 產生。
func WithBaseSeed(seed uint64) Option {
	return func(lab *Lab) { lab.baseSeed = seed }
}

// New 建立 Lab。
func New(opts ...Option) *Lab {
	lab := &Lab{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(lab)
	}
	if lab.baseSeed == 0 {
		lab.baseSeed = core.TimeSeed()
	}
	lab.seeds = core.NewSeedMaker(lab.baseSeed)
	return lab
}

// BaseSeed 回傳種子產生器的起點，用於重現整批執行。
func (l *Lab) BaseSeed() uint64 { return l.baseSeed }

// Result 為單次執行的結果。Values 只在 RunSetting.ReturnValues 時保留。
type Result struct {
	Name   string           `json:"name"              yaml:"name"`
	Engine core.Engine      `json:"engine"            yaml:"engine"`
	Seed   uint64           `json:"seed"              yaml:"seed"`
	Warmup int              `json:"warmup"            yaml:"warmup"`
	Dist   dist.Kind        `json:"dist"              yaml:"dist"`
	Params dist.Params      `json:"params"            yaml:"params"`
	Values []float64        `json:"values,omitempty"  yaml:"values,omitempty"`
	Report *stats.Report    `json:"report"            yaml:"report"`
	Fit    *stats.FitResult `json:"fit,omitempty"     yaml:"fit,omitempty"`
	Used   time.Duration    `json:"used_ns"           yaml:"used_ns"`
}
