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

package randstat_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/zintix-labs/randstat"
	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/runcfg"
	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
)

func setting(e core.Engine, k dist.Kind, seed uint64, count int) runcfg.RunSetting {
	return runcfg.RunSetting{Engine: e, Dist: k, Seed: seed, Count: count, ReturnValues: true}
}

func TestRunDeterministic(t *testing.T) {
	lab := randstat.New()
	for _, e := range core.Engines() {
		a, err := lab.Run(setting(e, dist.KindNormal, 0xDEADBEEF, 5001))
		if err != nil {
			t.Fatalf("%s: %v", e, err)
		}
		b, err := randstat.New().Run(setting(e, dist.KindNormal, 0xDEADBEEF, 5001))
		if err != nil {
			t.Fatalf("%s: %v", e, err)
		}
		if !slices.Equal(a.Values, b.Values) {
			t.Fatalf("%s: same seed produced different values", e)
		}
		if a.Report.Mean != b.Report.Mean || a.Report.Summary != b.Report.Summary {
			t.Fatalf("%s: same seed produced different reports", e)
		}
		if a.Seed != 0xDEADBEEF || a.Warmup != runcfg.DefaultWarmup || a.Engine != e {
			t.Fatalf("%s: result header %+v", e, a)
		}
	}
}

func TestRunMatchesDirectFill(t *testing.T) {
	// 分塊填入必須與一次填滿相同
	res, err := randstat.New().Run(setting(core.PCG32, dist.KindNormal, 77, 10001))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	want := make([]float64, 10001)
	if err := dist.Normal(want, 0, 1, core.Init(core.PCG32, 77, runcfg.DefaultWarmup)); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !slices.Equal(res.Values, want) {
		t.Fatalf("chunked generation diverged from a single fill")
	}
}

func TestRunSeeds(t *testing.T) {
	a := randstat.New(randstat.WithBaseSeed(42))
	b := randstat.New(randstat.WithBaseSeed(42))
	if a.BaseSeed() != 42 {
		t.Fatalf("base seed = %d", a.BaseSeed())
	}
	for i := 0; i < 3; i++ {
		ra, err := a.Run(setting(core.MWC, dist.KindUniform, 0, 100))
		if err != nil {
			t.Fatalf("unexpected: %v", err)
		}
		rb, _ := b.Run(setting(core.MWC, dist.KindUniform, 0, 100))
		if ra.Seed == 0 || ra.Seed != rb.Seed {
			t.Fatalf("seed sequence differs: %d vs %d", ra.Seed, rb.Seed)
		}
	}
	if randstat.New().BaseSeed() == 0 {
		t.Fatalf("auto base seed must be non-zero")
	}
}

func TestRunFit(t *testing.T) {
	lab := randstat.New()
	u, err := lab.Run(setting(core.XorShift128, dist.KindUniform, 9, 50000))
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if u.Fit == nil || u.Fit.DoF != 9 || u.Fit.PValue < 0.001 {
		t.Fatalf("uniform fit = %+v", u.Fit)
	}
	n, _ := lab.Run(setting(core.SplitMix64, dist.KindNormal, 9, 5000))
	if n.Fit == nil || n.Fit.PValue < 0.001 {
		t.Fatalf("normal fit = %+v", n.Fit)
	}
	p, _ := lab.Run(setting(core.SplitMix64, dist.KindPoisson, 9, 500))
	if p.Fit != nil {
		t.Fatalf("poisson should not carry a fit")
	}
}

func TestRunErrors(t *testing.T) {
	lab := randstat.New()
	bad := setting(core.MWC, dist.KindExponential, 1, 100)
	bad.Params = &dist.Params{A: -2}
	if _, err := lab.Run(bad); !errors.Is(err, errs.ErrDomain) {
		t.Fatalf("bad params: %v", err)
	}
	if _, err := lab.Run(setting(core.MWC, dist.KindUniform, 1, 1)); !errors.Is(err, errs.ErrDomain) {
		t.Fatalf("count 1: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := lab.RunContext(ctx, setting(core.MWC, dist.KindUniform, 1, 100)); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled: %v", err)
	}
}

func TestRunValuesOptional(t *testing.T) {
	rs := setting(core.LibcLCG, dist.KindBinomial, 5, 300)
	rs.ReturnValues = false
	res, err := randstat.New().Run(rs)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if res.Values != nil || res.Report.Count != 300 {
		t.Fatalf("values should be dropped: %d", len(res.Values))
	}
}

func TestRunPlan(t *testing.T) {
	plan := &runcfg.Plan{
		Name: "p",
		Seed: 1234,
		Runs: []runcfg.RunSetting{
			{Engine: core.PCG32, Count: 200},
			{Engine: core.MWC, Dist: dist.KindExponential, Count: 200},
			{Engine: core.SplitMix64, Seed: 99, Count: 200},
		},
	}
	lab := randstat.New()
	a, err := lab.RunPlan(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	b, _ := randstat.New().RunPlan(context.Background(), plan)
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("results %d %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Seed != b[i].Seed || a[i].Report.Mean != b[i].Report.Mean {
			t.Fatalf("run %d not reproducible", i)
		}
	}
	if a[2].Seed != 99 {
		t.Fatalf("explicit seed overridden: %d", a[2].Seed)
	}

	if _, err := lab.RunPlan(context.Background(), &runcfg.Plan{}); !errors.Is(err, errs.ErrDomain) {
		t.Fatalf("empty plan: %v", err)
	}
	if _, err := lab.RunPlan(context.Background(), nil); err == nil {
		t.Fatalf("nil plan should fail")
	}
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := randstat.New(randstat.WithLogger(log)).Run(setting(core.PCG32, dist.KindUniform, 3, 100)); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "engine=pcg32") || !strings.Contains(out, "count=100") {
		t.Fatalf("log output: %s", out)
	}
}
