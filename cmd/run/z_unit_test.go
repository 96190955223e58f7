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

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/stats"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-engine", "splitmix", "-dist", "binomial", "-a", "0.25", "-n", "40",
		"-seed", "0xff", "-warmup", "0", "-count", "300", "-pct", "10,90", "-strategy", "quantile",
	})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	rs := cfg.setting
	if rs.Engine != core.SplitMix64 || rs.Dist != dist.KindBinomial || rs.Seed != 255 || rs.Count != 300 {
		t.Fatalf("setting = %+v", rs)
	}
	if rs.Warmup == nil || *rs.Warmup != 0 {
		t.Fatalf("warmup = %v", rs.Warmup)
	}
	if rs.Params == nil || rs.Params.A != 0.25 || rs.Params.N != 40 {
		t.Fatalf("params = %+v", rs.Params)
	}
	if len(rs.Percentiles) != 2 || rs.Percentiles[1] != 90 || rs.Bins.Strategy != stats.PercentileBins {
		t.Fatalf("report options = %+v", rs)
	}

	cfg, _ = parseFlags(nil)
	if cfg.setting.Warmup != nil || cfg.setting.Params != nil || cfg.format != "table" {
		t.Fatalf("defaults = %+v", cfg)
	}

	for _, bad := range [][]string{
		{"-engine", "rand48"},
		{"-seed", "-1"},
		{"-format", "xml"},
		{"-pct", "1,x"},
	} {
		if _, err := parseFlags(bad); err == nil {
			t.Fatalf("%v should fail", bad)
		}
	}
}

func TestExecuteTable(t *testing.T) {
	cfg, err := parseFlags([]string{"-engine", "pcg32", "-dist", "normal", "-seed", "77", "-count", "2000"})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	var buf bytes.Buffer
	if err := execute(&buf, cfg); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[ENGINE:pcg32]", "[COUNT:2,000]", "pcg32-normal", "fit :", "used:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExecuteDemoPlanJSON(t *testing.T) {
	cfg, err := parseFlags([]string{"-plan", "demo:lcg-warmup", "-format", "json"})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	var buf bytes.Buffer
	if err := execute(&buf, cfg); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	var res []struct {
		Name   string `json:"name"`
		Warmup int    `json:"warmup"`
	}
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res) != 3 || res[2].Name != "lcg-w1024" || res[2].Warmup != 1024 {
		t.Fatalf("results = %+v", res)
	}

	cfg, _ = parseFlags([]string{"-plan", "demo:nope"})
	if err := execute(&buf, cfg); err == nil {
		t.Fatalf("unknown demo plan should fail")
	}
}

func TestExecuteYAML(t *testing.T) {
	cfg, _ := parseFlags([]string{"-seed", "5", "-count", "50", "-format", "yaml"})
	var buf bytes.Buffer
	if err := execute(&buf, cfg); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !strings.Contains(buf.String(), "engine: mwc") || !strings.Contains(buf.String(), "count: 50") {
		t.Fatalf("yaml:\n%s", buf.String())
	}
}
