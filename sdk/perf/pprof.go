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

// Package perf 以 runtime/pprof 包裝一次執行，輸出 cpu / heap / allocs profile。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/randstat/errs"
)

// DefaultDir 為 profile 寫入路徑。
const DefaultDir = "build/profiling"

// RunPProf 依 mode 執行 exe 並寫出 profile：
//
//	""      直接執行
//	cpu     build/profiling/cpu.pprof（也可作為 PGO 的 default.pgo）
//	heap    執行後的 in-use 快照
//	allocs  累積配置
//
// exe 的錯誤原樣回傳；profile 寫入失敗為 Fatal。
func RunPProf(dir, mode string, exe func() error) error {
	switch mode {
	case "":
		return exe()
	case "cpu":
		return pprofCPU(dir, exe)
	case "heap":
		return pprofAfter(dir, "heap", exe)
	case "allocs":
		return pprofAfter(dir, "allocs", exe)
	}
	return errs.NewWarn("unknown pprof mode: " + mode + " (cpu|heap|allocs)")
}

func create(dir, name string) (*os.File, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "pprof: mkdir")
	}
	f, err := os.Create(filepath.Join(dir, name+".pprof"))
	if err != nil {
		return nil, errs.Wrap(err, "pprof: create")
	}
	return f, nil
}

func pprofCPU(dir string, exe func() error) error {
	f, err := create(dir, "cpu")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "pprof: start cpu profile")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// pprofAfter 在 exe 之後寫出一次快照；heap 會先 GC 讓 live objects 貼近實際。
func pprofAfter(dir, name string, exe func() error) error {
	if err := exe(); err != nil {
		return err
	}
	f, err := create(dir, name)
	if err != nil {
		return err
	}
	defer f.Close()
	if name == "heap" {
		runtime.GC()
	}
	prof := pprof.Lookup(name)
	if prof == nil {
		return errs.NewFatal("pprof: profile not found: " + name)
	}
	if err := prof.WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "pprof: write "+name)
	}
	return nil
}
