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
package api

import (
	"github.com/zintix-labs/randstat/server/api/dev"
	"github.com/zintix-labs/randstat/server/api/index"
	v1 "github.com/zintix-labs/randstat/server/api/v1"
	"github.com/zintix-labs/randstat/server/netsvr"
	"github.com/zintix-labs/randstat/server/netsvr/middleware"
	"github.com/zintix-labs/randstat/server/svrcfg"
)

// RegisterRoutes 註冊所有 middleware 與路由。sCfg 需已通過 Valid。
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	metrics := middleware.NewMetrics()
	registerMiddleware(svr, sCfg, metrics) // 1. 註冊 middleware
	registerIndex(svr, metrics)            // 2. 註冊主頁與 metrics
	dev.Register(svr, sCfg)                // 3. 開發者工具頁

	// 4. 註冊 v1 api
	return registerV1API(svr, sCfg, metrics)
}

// 註冊 middleware；Recover 在 AccessLog 內層，panic 轉成的 500 也會留下 access log。
func registerMiddleware(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg, metrics *middleware.Metrics) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(sCfg.Log))
	svr.Use(metrics.Middleware)
	svr.Use(middleware.Recover(sCfg.Log))
	svr.Use(middleware.Compression)
}

// 註冊主頁
func registerIndex(svr netsvr.NetRouter, metrics *middleware.Metrics) {
	svr.Get("/", index.IndexHandlerFn)
	svr.Handle("/metrics", metrics.Handler())
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg, metrics *middleware.Metrics) error {
	h, err := v1.NewHandler(sCfg, metrics)
	if err != nil {
		return err
	}
	svr.Group("/v1", h.Register)
	return nil
}
