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

package runcfg_test

import (
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/runcfg"
	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/stats"
)

const planYAML = `
name: smoke
seed: 0xDEADBEEF
runs:
  - engine: PCG
    dist: gauss
    params: {a: 10, b: 2}
    count: 500
    bins: {count: 8, strategy: quantile}
    percentiles: [10, 90]
  - engine: xorshift128
    warmup: 0
    dist: poisson
    params: {a: 3}
  - engine: lcg
    warmup: 5000
`

func TestPlanByYAML(t *testing.T) {
	p, err := runcfg.PlanByYAML([]byte(planYAML))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if p.Name != "smoke" || p.Seed != 0xDEADBEEF || len(p.Runs) != 3 {
		t.Fatalf("plan header wrong: %+v", p)
	}

	r0 := p.Runs[0]
	if r0.Engine != core.PCG32 || r0.Dist != dist.KindNormal || r0.Count != 500 {
		t.Fatalf("run0 = %+v", r0)
	}
	if r0.Params.A != 10 || r0.Params.B != 2 {
		t.Fatalf("run0 params = %+v", *r0.Params)
	}
	if r0.Bins.Count != 8 || r0.Bins.Strategy != stats.PercentileBins {
		t.Fatalf("run0 bins = %+v", r0.Bins)
	}
	if r0.WarmupValue() != runcfg.DefaultWarmup || r0.Name != "pcg32-normal" {
		t.Fatalf("run0 defaults: warmup=%d name=%q", r0.WarmupValue(), r0.Name)
	}
	if !slices.Equal(r0.Percentiles, []float64{10, 90}) {
		t.Fatalf("run0 percentiles = %v", r0.Percentiles)
	}

	r1 := p.Runs[1]
	if r1.WarmupValue() != 0 || r1.Count != runcfg.DefaultCount || r1.ParamsValue().A != 3 {
		t.Fatalf("run1 = %+v", r1)
	}
	if r1.Bins.Count != stats.DefaultBins || r1.Bins.Strategy != stats.Linear {
		t.Fatalf("run1 bins = %+v", r1.Bins)
	}

	r2 := p.Runs[2]
	if r2.Engine != core.LibcLCG || r2.WarmupValue() != core.WarmupMax {
		t.Fatalf("run2 warmup should clamp: %d", r2.WarmupValue())
	}
	if r2.Dist != dist.KindUniform || r2.ParamsValue() != dist.DefaultParams(dist.KindUniform) {
		t.Fatalf("run2 dist defaults = %v %+v", r2.Dist, r2.ParamsValue())
	}
	if !slices.Equal(r2.Percentiles, stats.DefaultPercentiles) || r2.Confidence != stats.DefaultConfidence {
		t.Fatalf("run2 stats defaults = %v %v", r2.Percentiles, r2.Confidence)
	}
}

func TestPlanByJSON(t *testing.T) {
	raw := `{"name":"j","runs":[{"engine":"splitmix64","dist":"binomial","params":{"a":0.3,"b":0,"n":20},"count":100,"return_values":true}]}`
	p, err := runcfg.PlanByJSON([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	r := p.Runs[0]
	if r.Engine != core.SplitMix64 || r.Dist != dist.KindBinomial || r.Params.N != 20 || !r.ReturnValues {
		t.Fatalf("run = %+v", r)
	}
	opt := r.DescribeOptions()
	if opt.Bins != stats.DefaultBins || opt.Confidence != stats.DefaultConfidence {
		t.Fatalf("describe options = %+v", opt)
	}
}

func TestPlanErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field": "runs:\n  - engine: mwc\n    colour: red\n",
		"bad engine":    "runs:\n  - engine: mt19937\n",
		"bad dist":      "runs:\n  - dist: cauchy\n",
	}
	for name, raw := range cases {
		if _, err := runcfg.PlanByYAML([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	domain := map[string]string{
		"empty runs":     "name: x\nruns: []\n",
		"bad params":     "runs:\n  - dist: exponential\n    params: {a: -1}\n",
		"bad percentile": "runs:\n  - percentiles: [50, 101]\n",
		"bad confidence": "runs:\n  - confidence: 1.5\n",
		"negative count": "runs:\n  - count: -3\n",
	}
	for name, raw := range domain {
		_, err := runcfg.PlanByYAML([]byte(raw))
		if !errors.Is(err, errs.ErrDomain) {
			t.Fatalf("%s: expected domain error, got %v", name, err)
		}
		if e, ok := errs.AsErr(err); !ok || e.ErrLv != errs.Warn {
			t.Fatalf("%s: expected warn level", name)
		}
	}

	if _, err := runcfg.PlanByExt("plan.toml", nil); err == nil {
		t.Fatalf("unsupported extension should fail")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rs := runcfg.RunSetting{Engine: core.MWC, Dist: dist.KindExponential}
	if err := rs.Normalize(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	first := rs
	if err := rs.Normalize(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if rs.Name != first.Name || rs.Count != first.Count || *rs.Warmup != *first.Warmup {
		t.Fatalf("second normalize changed the setting")
	}
	bad := runcfg.RunSetting{Engine: core.Engine(42)}
	if err := bad.Normalize(); !errors.Is(err, errs.ErrDomain) {
		t.Fatalf("invalid engine: %v", err)
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(planYAML)},
		"b.json": {Data: []byte(`{"runs":[{}]}`)},
	}
	if p, err := runcfg.Load(fsys, "a.yaml"); err != nil || len(p.Runs) != 3 {
		t.Fatalf("yaml load: %v", err)
	}
	p, err := runcfg.Load(fsys, "b.json")
	if err != nil || p.Runs[0].Engine != core.MWC || p.Runs[0].Count != runcfg.DefaultCount {
		t.Fatalf("json load: %v", err)
	}
	if _, err := runcfg.Load(fsys, "missing.yaml"); err == nil {
		t.Fatalf("missing file should fail")
	}
}
