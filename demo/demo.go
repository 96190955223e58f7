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

// Package demo 提供內嵌的示範計畫與可直接啟動的 server 設定。
package demo

import (
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/zintix-labs/randstat"
	"github.com/zintix-labs/randstat/demo/demo_configs"
	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/runcfg"
	"github.com/zintix-labs/randstat/server/logger"
	"github.com/zintix-labs/randstat/server/svrcfg"
)

// Names 回傳所有示範計畫名稱（不含副檔名），依字母排序。
func Names() []string {
	files, _ := fs.Glob(demo_configs.FS, "*.yaml")
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, strings.TrimSuffix(f, path.Ext(f)))
	}
	slices.Sort(out)
	return out
}

// Plan 載入指定名稱的示範計畫。
func Plan(name string) (*runcfg.Plan, error) {
	if !slices.Contains(Names(), name) {
		return nil, errs.NewWarn("demo plan not found: " + name)
	}
	return runcfg.Load(demo_configs.FS, name+".yaml")
}

// NewServerConfig 回傳開發用設定：dev 模式的非同步 log 與預設上限。
func NewServerConfig() (*svrcfg.SvrCfg, error) {
	log := logger.NewDefaultAsyncLogger(logger.ModeDev)
	scfg := &svrcfg.SvrCfg{
		Log: log,
		Lab: randstat.New(randstat.WithLogger(log)),
	}
	if err := scfg.Valid(); err != nil {
		return nil, errs.Wrap(err, "demo server config")
	}
	return scfg, nil
}
