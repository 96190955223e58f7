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
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zintix-labs/randstat"
	"github.com/zintix-labs/randstat/server"
	"github.com/zintix-labs/randstat/server/logger"
	"github.com/zintix-labs/randstat/server/svrcfg"
)

// HTTP 服務入口：
//
//	go run ./cmd/svr -addr :5808 -log-mode prod -max-count 2000000
func main() {
	cfg, err := loadConfigFromFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := server.Run(cfg); err != nil {
		os.Exit(1)
	}
}

type config struct {
	Addr     string
	LogMode  string
	MaxCount int
	Timeout  time.Duration
	BaseSeed uint64
	LogBuf   int
}

func loadConfigFromFlags(args []string) (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	fs := flag.NewFlagSet("svr", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", svrcfg.DefaultAddr, "listen address")
	fs.StringVar(&cfg.LogMode, "log-mode", "dev", "log mode: dev|prod|silence")
	fs.IntVar(&cfg.MaxCount, "max-count", svrcfg.DefaultMaxCount, "max samples per request")
	fs.DurationVar(&cfg.Timeout, "timeout", svrcfg.DefaultTimeout, "per-request computation timeout")
	fs.Uint64Var(&cfg.BaseSeed, "base-seed", 0, "base of the server seed sequence (0 = time based)")
	fs.IntVar(&cfg.LogBuf, "log-buf", 4096, "async log buffer size")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	mode, err := logger.ParseLogMode(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	log, _ := logger.NewAsync(cfg.LogBuf, mode)
	return &svrcfg.SvrCfg{
		Log:      log,
		Addr:     cfg.Addr,
		MaxCount: cfg.MaxCount,
		Timeout:  cfg.Timeout,
		Lab:      randstat.New(randstat.WithLogger(log), randstat.WithBaseSeed(cfg.BaseSeed)),
	}, nil
}
