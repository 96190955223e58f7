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

package demo

import (
	"context"
	"slices"
	"testing"

	"github.com/zintix-labs/randstat"
	"github.com/zintix-labs/randstat/sdk/core"
)

func TestPlansLoad(t *testing.T) {
	names := Names()
	if !slices.Equal(names, []string{"distributions", "engines", "lcg-warmup"}) {
		t.Fatalf("names = %v", names)
	}
	for _, n := range names {
		p, err := Plan(n)
		if err != nil {
			t.Fatalf("%s: %v", n, err)
		}
		if p.Name != n || len(p.Runs) == 0 {
			t.Fatalf("%s: plan = %+v", n, p)
		}
	}
	if _, err := Plan("missing"); err == nil {
		t.Fatalf("missing plan should fail")
	}
}

func TestEnginesPlanCoversAllEngines(t *testing.T) {
	p, err := Plan("engines")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	var got []core.Engine
	for _, rs := range p.Runs {
		got = append(got, rs.Engine)
	}
	if !slices.Equal(got, core.Engines()) {
		t.Fatalf("engines = %v", got)
	}
}

func TestLcgWarmupPlanRuns(t *testing.T) {
	p, err := Plan("lcg-warmup")
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	res, err := randstat.New().RunPlan(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	for i, w := range []int{0, 16, 1024} {
		if res[i].Warmup != w || res[i].Seed != 1 || res[i].Fit == nil {
			t.Fatalf("run %d: %+v", i, res[i])
		}
	}
}

func TestNewServerConfig(t *testing.T) {
	sc, err := NewServerConfig()
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if sc.Lab == nil || sc.MaxCount != 1_000_000 {
		t.Fatalf("config = %+v", sc)
	}
}
