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
package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// App 啟動所有註冊的 Component，並在收到 OS 信號、ctx 結束或任一 Component 返回時協調優雅關閉。
type App struct {
	comps   []Component
	hooks   []func()
	log     *slog.Logger
	timeout time.Duration
}

// New 建立一個新的 App 實例。log 為 nil 時不輸出。
func New(log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{log: log, timeout: defaultShutdownTimeout}
}

// NewWith 是 New 的語法糖，允許在建立時直接註冊多個 Component。
func NewWith(log *slog.Logger, comps ...Component) *App {
	app := New(log)
	for _, c := range comps {
		app.Register(c)
	}
	return app
}

// Register 將一個 Component 註冊到 App 中，該 Component 將在 Run 時被管理。
func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// OnShutdown 註冊在所有 Component 關閉之後執行的收尾函式（例如 flush 非同步 log）。
// 依註冊的相反順序執行。
func (a *App) OnShutdown(fn func()) {
	if fn != nil {
		a.hooks = append(a.hooks, fn)
	}
}

// Run 等同於以 SIGINT/SIGTERM 為取消條件的 RunContext。
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext 並行啟動所有 Component 並阻塞：
//   - ctx 結束：優雅關閉並返回 nil。
//   - 任一 Component.Run 返回：優雅關閉並返回該錯誤（可能為 nil）。
//
// 假設每個 Component.Run 是阻塞調用，代表該元件的生命週期。
func (a *App) RunContext(ctx context.Context) error {
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("app: shutting down", slog.String("reason", context.Cause(ctx).Error()))
	case err = <-errCh:
	}
	a.gracefulShutdown(a.timeout)
	return err
}

// gracefulShutdown 在給定的 timeout 內依序呼叫所有 Component.Shutdown，再執行收尾函式。
func (a *App) gracefulShutdown(td time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), td)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil {
			a.log.Error("app: shutdown", slog.Any("err", err))
		}
	}
	for i := len(a.hooks) - 1; i >= 0; i-- {
		a.hooks[i]()
	}
}
