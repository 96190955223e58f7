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

// Package runcfg 定義執行計畫（Plan）與單次執行設定（RunSetting）。
//
// 計畫可由 YAML 或 JSON 載入，載入後一律經過 Normalize：補上預設值並檢查參數，
// 參數錯誤回傳 errs.Warn 等級的資料錯誤（errors.Is(err, errs.ErrDomain)）。
package runcfg

import (
	"fmt"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/stats"
)

const (
	DefaultWarmup = 16
	DefaultCount  = 10000
	MinCount      = 2 // 離散度與報表需要至少兩個樣本
	MaxCount      = 50_000_000
)

// Bins 為分桶設定。
type Bins struct {
	Count    int            `yaml:"count"    json:"count"`
	Strategy stats.Strategy `yaml:"strategy" json:"strategy"`
}

// RunSetting 描述一次「產生 + 統計」。
//
// Seed 為 0 時由 Lab 產生；Warmup 與 Params 未填時套用預設。
type RunSetting struct {
	Name         string       `yaml:"name"               json:"name"`
	Engine       core.Engine  `yaml:"engine"             json:"engine"`
	Seed         uint64       `yaml:"seed"               json:"seed"`
	Warmup       *int         `yaml:"warmup,omitempty"   json:"warmup,omitempty"`
	Dist         dist.Kind    `yaml:"dist"               json:"dist"`
	Params       *dist.Params `yaml:"params,omitempty"   json:"params,omitempty"`
	Count        int          `yaml:"count"              json:"count"`
	Bins         Bins         `yaml:"bins"               json:"bins"`
	Percentiles  []float64    `yaml:"percentiles"        json:"percentiles"`
	Confidence   float64      `yaml:"confidence"         json:"confidence"`
	ReturnValues bool         `yaml:"return_values"      json:"return_values"`
}

// Normalize 補上預設值並驗證所有欄位。可重複呼叫。
func (rs *RunSetting) Normalize() error {
	if !rs.Engine.Valid() {
		return errs.Domainf("unknown engine %d", uint8(rs.Engine))
	}
	if rs.Warmup == nil {
		w := DefaultWarmup
		rs.Warmup = &w
	}
	// 與 core.Init 相同的夾限
	w := min(max(*rs.Warmup, 0), core.WarmupMax)
	rs.Warmup = &w

	switch {
	case rs.Count == 0:
		rs.Count = DefaultCount
	case rs.Count < MinCount || rs.Count > MaxCount:
		return errs.Domainf("count=%d out of [%d,%d]", rs.Count, MinCount, MaxCount)
	}

	if rs.Params == nil {
		p := dist.DefaultParams(rs.Dist)
		rs.Params = &p
	}
	if err := dist.Validate(rs.Dist, *rs.Params); err != nil {
		return err
	}

	if rs.Bins.Count <= 0 {
		rs.Bins.Count = stats.DefaultBins
	}
	if rs.Bins.Strategy.String() == "unknown" {
		return errs.Domainf("unknown binning strategy %d", uint8(rs.Bins.Strategy))
	}
	if len(rs.Percentiles) == 0 {
		rs.Percentiles = append([]float64(nil), stats.DefaultPercentiles...)
	}
	for i, p := range rs.Percentiles {
		if !(p >= 0 && p <= 100) {
			return errs.Domainf("percentiles[%d]=%v out of [0,100]", i, p)
		}
	}
	if rs.Confidence == 0 {
		rs.Confidence = stats.DefaultConfidence
	}
	if !(rs.Confidence > 0 && rs.Confidence < 1) {
		return errs.Domainf("confidence %v out of (0,1)", rs.Confidence)
	}
	if rs.Name == "" {
		rs.Name = fmt.Sprintf("%s-%s", rs.Engine, rs.Dist)
	}
	return nil
}

// WarmupValue 回傳 warm-up 次數（未 Normalize 時為預設值）。
func (rs *RunSetting) WarmupValue() int {
	if rs.Warmup == nil {
		return DefaultWarmup
	}
	return *rs.Warmup
}

// ParamsValue 回傳分布參數（未填時為該分布的預設值）。
func (rs *RunSetting) ParamsValue() dist.Params {
	if rs.Params == nil {
		return dist.DefaultParams(rs.Dist)
	}
	return *rs.Params
}

// DescribeOptions 轉成 stats.Describe 的選項。
func (rs *RunSetting) DescribeOptions() stats.DescribeOptions {
	return stats.DescribeOptions{
		Percentiles: rs.Percentiles,
		Bins:        rs.Bins.Count,
		Strategy:    rs.Bins.Strategy,
		Confidence:  rs.Confidence,
	}
}

// Plan 為依序執行的一組 RunSetting。
// Seed 非 0 時作為種子產生器的起點，使未指定種子的執行可重現。
type Plan struct {
	Name string       `yaml:"name" json:"name"`
	Seed uint64       `yaml:"seed" json:"seed"`
	Runs []RunSetting `yaml:"runs" json:"runs"`
}

// Normalize 依序正規化每個執行設定，錯誤訊息帶上索引。
func (p *Plan) Normalize() error {
	if len(p.Runs) == 0 {
		return errs.Domainf("plan %q: empty runs", p.Name)
	}
	for i := range p.Runs {
		if err := p.Runs[i].Normalize(); err != nil {
			return errs.Wrap(err, fmt.Sprintf("plan %q: runs[%d]", p.Name, i))
		}
	}
	return nil
}
