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
	"context"
	"encoding/json"
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/zintix-labs/randstat"
	"github.com/zintix-labs/randstat/demo"
	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/runcfg"
	"github.com/zintix-labs/randstat/sdk/core"
	"github.com/zintix-labs/randstat/sdk/dist"
	"github.com/zintix-labs/randstat/server/logger"
	"github.com/zintix-labs/randstat/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const demoPrefix = "demo:"

type config struct {
	plan     string
	format   string
	pprof    string
	progress bool
	logMode  string
	baseSeed uint64
	setting  runcfg.RunSetting
}

// floatList 解析以逗號分隔的百分位，例如 -pct 1,50,99。
type floatList struct{ p *[]float64 }

func (f floatList) String() string {
	if f.p == nil {
		return ""
	}
	parts := make([]string, len(*f.p))
	for i, v := range *f.p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f floatList) Set(s string) error {
	*f.p = (*f.p)[:0]
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		*f.p = append(*f.p, v)
	}
	return nil
}

// textFlag 以解析函式讓列舉型別（引擎、分布、分桶策略）成為 flag。
type textFlag[T interface{ String() string }] struct {
	v     *T
	parse func(string) (T, error)
}

func (f textFlag[T]) String() string {
	if f.v == nil {
		return ""
	}
	return (*f.v).String()
}

func (f textFlag[T]) Set(s string) error {
	v, err := f.parse(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}
	rs := &cfg.setting
	var (
		seed       string
		warmup     int
		a, b       float64
		n          int
		paramsSet  bool
		warmupSeen bool
	)

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.Var(textFlag[core.Engine]{&rs.Engine, core.ParseEngine}, "engine", "engine: mwc|xorshift128|lcg|pcg32|splitmix64")
	fs.Var(textFlag[dist.Kind]{&rs.Dist, dist.ParseKind}, "dist", "distribution: uniform|normal|exponential|poisson|binomial")
	fs.Var(textFlag[stats.Strategy]{&rs.Bins.Strategy, stats.ParseStrategy}, "strategy", "binning: linear|log|percentile")
	fs.StringVar(&seed, "seed", "", "seed (decimal or 0x hex); empty for a generated seed")
	fs.IntVar(&warmup, "warmup", runcfg.DefaultWarmup, "outputs discarded after seeding [0,1024]")
	fs.Float64Var(&a, "a", 0, "first distribution parameter (min|mean|lambda|p)")
	fs.Float64Var(&b, "b", 0, "second distribution parameter (max|std_dev)")
	fs.IntVar(&n, "n", 0, "binomial trials")
	fs.IntVar(&rs.Count, "count", runcfg.DefaultCount, "number of samples")
	fs.IntVar(&rs.Bins.Count, "bins", stats.DefaultBins, "number of bins")
	fs.Var(floatList{&rs.Percentiles}, "pct", "percentiles, comma separated")
	fs.Float64Var(&rs.Confidence, "confidence", stats.DefaultConfidence, "confidence level for intervals")
	fs.StringVar(&cfg.plan, "plan", "", "plan file (.yaml|.json) or demo:<name>")
	fs.StringVar(&cfg.format, "format", "table", "output: table|json|yaml")
	fs.StringVar(&cfg.pprof, "pprof", "", "pprof: '', cpu, heap, allocs")
	fs.BoolVar(&cfg.progress, "progress", false, "show a progress bar")
	fs.StringVar(&cfg.logMode, "log-mode", "silence", "log mode: dev|prod|silence")
	fs.Uint64Var(&cfg.baseSeed, "base-seed", 0, "base of the seed sequence for runs without a seed")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a", "b", "n":
			paramsSet = true
		case "warmup":
			warmupSeen = true
		}
	})

	if seed != "" {
		v, err := strconv.ParseUint(seed, 0, 64)
		if err != nil {
			return nil, errs.NewWarn("seed must be an unsigned integer: " + seed)
		}
		rs.Seed = v
	}
	if warmupSeen {
		rs.Warmup = &warmup
	}
	if paramsSet {
		p := dist.DefaultParams(rs.Dist)
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "a":
				p.A = a
			case "b":
				p.B = b
			case "n":
				p.N = n
			}
		})
		rs.Params = &p
	}
	switch cfg.format {
	case "table", "json", "yaml":
	default:
		return nil, errs.NewWarn("format must be table, json or yaml")
	}
	return cfg, nil
}

func (cfg *config) buildPlan() (*runcfg.Plan, error) {
	switch {
	case strings.HasPrefix(cfg.plan, demoPrefix):
		return demo.Plan(strings.TrimPrefix(cfg.plan, demoPrefix))
	case cfg.plan != "":
		return runcfg.LoadFile(cfg.plan)
	}
	p := &runcfg.Plan{Name: "cli", Runs: []runcfg.RunSetting{cfg.setting}}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

func execute(w io.Writer, cfg *config) error {
	plan, err := cfg.buildPlan()
	if err != nil {
		return err
	}
	mode, err := logger.ParseLogMode(cfg.logMode)
	if err != nil {
		return err
	}
	lab := randstat.New(
		randstat.WithLogger(logger.NewDefaultLogger(mode)),
		randstat.WithProgress(cfg.progress),
		randstat.WithBaseSeed(cfg.baseSeed),
	)

	results, err := lab.RunPlan(context.Background(), plan)
	if err != nil {
		return err
	}
	return output(w, cfg.format, plan, results)
}

func output(w io.Writer, format string, plan *runcfg.Plan, results []*randstat.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		return stats.WriteYAML(w, &results)
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	for i, res := range results {
		rs := plan.Runs[i]
		p.Fprintf(w, "%s[RUN:%s] [ENGINE:%s] [DIST:%s] [SEED:%#x] [WARMUP:%d] [COUNT:%d]%s\n",
			green, res.Name, res.Engine, res.Dist, res.Seed, res.Warmup, rs.Count, reset)
		if _, err := io.WriteString(w, res.Report.Table(res.Name)); err != nil {
			return err
		}
		if res.Fit != nil {
			p.Fprintf(w, "fit : stat=%.4f dof=%d p=%.4f\n", res.Fit.Stat, res.Fit.DoF, res.Fit.PValue)
		}
		if _, err := io.WriteString(w, stats.FormatDuration(res.Used, res.Report.Count)); err != nil {
			return err
		}
	}
	return nil
}
