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

// Package server 組裝 randstat 的 HTTP 服務：middleware、路由與生命週期。
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/server/api"
	"github.com/zintix-labs/randstat/server/app"
	"github.com/zintix-labs/randstat/server/logger"
	"github.com/zintix-labs/randstat/server/netsvr"
	"github.com/zintix-labs/randstat/server/svrcfg"
)

// Run 是 server 套件的「組裝器」與「啟動入口」。
//
// 它負責：
//  1. 驗證輸入的 SvrCfg（補上 logger、Lab 等預設值）。
//  2. 建立 HTTP server（netsvr），監聽 sCfg.Addr。
//  3. 註冊路由與 middleware（api.RegisterRoutes）。
//  4. 阻塞於 app.Run() 並回傳停止原因。
//
// Run 不讀取檔案或環境變數；所有依賴都透過 SvrCfg 明確注入。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// 外層傳入的 logger 可能不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(sCfg, netsvr.NewChiServer(sCfg.Addr))
}

// RunWithSvr 與 Run 相同，但允許呼叫端注入自訂的 NetSvr（例如自訂 timeout 或 listener）。
//   - svr 必須非 nil；若是 ChiAdapter 會要求 Ready() 為 true。
//   - 若 sCfg.Log 的 handler 是 *logger.AsyncHandler，關閉時會 flush。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		err := errs.NewFatal("svr is required")
		sCfg.Log.Error(err.Error())
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		err := errs.NewFatal("default server is not ready")
		sCfg.Log.Error(err.Error())
		return err
	}

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return errs.Wrap(err, "register routes")
	}

	a := app.NewWith(sCfg.Log, svr)
	if ah, ok := sCfg.Log.Handler().(*logger.AsyncHandler); ok {
		a.OnShutdown(ah.Close)
	}
	sCfg.Log.Info("[randstat] listening", slog.String("addr", sCfg.Addr))
	if err := a.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}

// Handler 回傳已註冊完成的 http.Handler，不啟動監聽；供測試或嵌入既有服務使用。
func Handler(sCfg *svrcfg.SvrCfg) (http.Handler, error) {
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	svr := netsvr.NewChiServer(sCfg.Addr)
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return nil, err
	}
	return svr.Handler(), nil
}
