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

package randstat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/runcfg"
	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/stats"
)

// 每次填入的樣本數；必須是偶數，讓 Normal 的成對輸出與一次填滿的序列一致。
const chunk = 4096

// Run 等同於 RunContext(context.Background(), rs)。
func (l *Lab) Run(rs runcfg.RunSetting) (*Result, error) {
	return l.RunContext(context.Background(), rs)
}

// RunContext 正規化 rs、建立引擎、產生樣本並計算報表。
//
// rs.Seed 為 0 時由 Lab 的種子產生器給定；實際使用的種子記錄在 Result.Seed。
// ctx 在每個區塊之間檢查，取消時回傳 ctx.Err()。
func (l *Lab) RunContext(ctx context.Context, rs runcfg.RunSetting) (*Result, error) {
	if err := rs.Normalize(); err != nil {
		return nil, err
	}
	seed := rs.Seed
	if seed == 0 {
		seed = l.seeds.Next()
	}
	return l.run(ctx, rs, seed)
}

func (l *Lab) run(ctx context.Context, rs runcfg.RunSetting, seed uint64) (*Result, error) {
	start := time.Now()
	rng := core.Init(rs.Engine, seed, rs.WarmupValue())
	params := rs.ParamsValue()
	values := make([]float64, rs.Count)

	bar := l.newBar(rs.Count)
	for i := 0; i < rs.Count; i += chunk {
		if err := ctx.Err(); err != nil {
			bar.Finish()
			return nil, err
		}
		j := min(i+chunk, rs.Count)
		if err := dist.Fill(rs.Dist, params, values[i:j], rng); err != nil {
			bar.Finish()
			return nil, err
		}
		bar.Add(j - i)
	}
	bar.Finish()

	rep, err := stats.Describe(values, rs.DescribeOptions())
	if err != nil {
		return nil, errs.Wrap(err, fmt.Sprintf("%s: describe", rs.Name))
	}

	res := &Result{
		Name:   rs.Name,
		Engine: rs.Engine,
		Seed:   seed,
		Warmup: rng.Warmup(),
		Dist:   rs.Dist,
		Params: params,
		Report: rep,
		Fit:    fitFor(rs.Dist, params, values, rep),
	}
	if rs.ReturnValues {
		res.Values = values
	}
	res.Used = time.Since(start)

	l.log.Debug("run",
		slog.String("name", rs.Name),
		slog.String("engine", rs.Engine.String()),
		slog.Uint64("seed", seed),
		slog.Int("count", rs.Count),
		slog.Duration("latency", res.Used),
	)
	return res, nil
}

// newBar 建立並啟動進度條；未開啟進度顯示時為 Static，不啟動刷新 goroutine。
func (l *Lab) newBar(total int) *pb.ProgressBar {
	bar := pb.New(total)
	if !l.progress {
		bar.SetWriter(io.Discard)
		bar.Set(pb.Static, true)
	}
	return bar.Start()
}

// fitFor 對能直接檢定的分布附上適合度：uniform 的等寬分桶做卡方，normal 做 KS。
func fitFor(k dist.Kind, p dist.Params, values []float64, rep *stats.Report) *stats.FitResult {
	switch k {
	case dist.KindUniform:
		if rep.Bins == nil || rep.Bins.Schema.Strategy != stats.Linear {
			return nil
		}
		fit, err := stats.ChiSquareUniform(rep.Bins.Counts)
		if err != nil {
			return nil
		}
		return &fit
	case dist.KindNormal:
		if p.B <= 0 {
			return nil
		}
		fit, err := stats.KSNormal(values, p.A, p.B)
		if err != nil {
			return nil
		}
		return &fit
	}
	return nil
}

// RunPlan 依序執行計畫中的每個設定（不平行）。
//
// plan.Seed 非 0 時，未指定種子的執行改由以 plan.Seed 為起點的種子產生器給定，
// 因此同一份計畫每次都得到相同結果。
func (l *Lab) RunPlan(ctx context.Context, plan *runcfg.Plan) ([]*Result, error) {
	if plan == nil {
		return nil, errs.NewWarn("nil plan")
	}
	if err := plan.Normalize(); err != nil {
		return nil, err
	}
	seeds := l.seeds
	if plan.Seed != 0 {
		seeds = core.NewSeedMaker(plan.Seed)
	}
	out := make([]*Result, 0, len(plan.Runs))
	for i, rs := range plan.Runs {
		seed := rs.Seed
		if seed == 0 {
			seed = seeds.Next()
		}
		res, err := l.run(ctx, rs, seed)
		if err != nil {
			return out, errs.Wrap(err, fmt.Sprintf("plan %q: runs[%d]", plan.Name, i))
		}
		out = append(out, res)
	}
	return out, nil
}
