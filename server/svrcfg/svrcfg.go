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
// Package app 提供應用程式生命週期管理（App），負責統一啟動與關閉多個 Component。
package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/randstat"
	"github.com/zintix-labs/randstat/errs"
	"github.com/zintix-labs/randstat/server/logger"
)

const (
	DefaultAddr     = ":5808"
	DefaultMaxCount = 1_000_000
	MaxCountLimit   = 5_000_000
	DefaultTimeout  = 5 * time.Second
)

// SvrCfg 為 server 的所有外部依賴；由 main 組裝後交給 server.Run。
type SvrCfg struct {
	Log      *slog.Logger
	Addr     string
	MaxCount int           // 單一請求可產生的最大樣本數
	Timeout  time.Duration // 單一請求的運算時限
	Lab      *randstat.Lab
}

// Valid 補上預設值並檢查必要依賴。
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log = logger.NewDefaultLogger(logger.ModeSilence)
	}
	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	// 1 <= MaxCount <= MaxCountLimit
	if sc.MaxCount <= 0 {
		sc.MaxCount = DefaultMaxCount
	}
	sc.MaxCount = min(sc.MaxCount, MaxCountLimit)
	if sc.Timeout <= 0 {
		sc.Timeout = DefaultTimeout
	}
	if sc.Lab == nil {
		sc.Lab = randstat.New(randstat.WithLogger(sc.Log))
	}
	return nil
}
