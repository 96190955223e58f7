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
	"testing"

	"github.com/zintix-labs/randstat/server/logger"
)

func TestValidDefaults(t *testing.T) {
	sc := &SvrCfg{}
	if err := sc.Valid(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if sc.Log == nil || sc.Lab == nil {
		t.Fatalf("defaults missing: %+v", sc)
	}
	if sc.Addr != DefaultAddr || sc.MaxCount != DefaultMaxCount || sc.Timeout != DefaultTimeout {
		t.Fatalf("defaults = %+v", sc)
	}

	sc = &SvrCfg{MaxCount: 1 << 40}
	_ = sc.Valid()
	if sc.MaxCount != MaxCountLimit {
		t.Fatalf("max count not clamped: %d", sc.MaxCount)
	}
}

func TestValidRejectsClosedAsync(t *testing.T) {
	ah := &logger.AsyncHandler{}
	sc := &SvrCfg{Log: logger.NewLogger(ah)}
	if err := sc.Valid(); err == nil {
		t.Fatalf("uninitialised async handler should be rejected")
	}
}
