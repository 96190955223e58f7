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

// Package errs 定義 randstat 的兩層錯誤模型。
//
//   - 程式錯誤（zero seed、nil generator、schema min >= max、buffer 長度不符）：直接 panic，不在這裡表達。
//   - 資料錯誤（空資料、NaN、百分位超出 [0,100]、分母為 0）：回傳 *E（ErrLv = Warn），
//     並以 Cause 串接本包的哨兵錯誤，呼叫端用 errors.Is 判斷種類。
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// 資料錯誤哨兵。所有資料錯誤都會以 Cause 指向其中之一。
var (
	ErrEmpty   = &E{Message: "empty dataset", ErrLv: Warn}
	ErrDomain  = &E{Message: "argument out of domain", ErrLv: Warn}
	ErrNaN     = &E{Message: "nan encountered", ErrLv: Warn}
	ErrDivZero = &E{Message: "division by zero", ErrLv: Warn}
)

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為呼叫端可追加的額外上下文；
// Cause 可串接下層錯誤或哨兵錯誤；ErrLv 表示嚴重度。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %s)", causeText(e.Cause))
	}
	return base
}

// 哨兵錯誤只輸出訊息本體，避免 "errlv=warn" 重複出現。
func causeText(err error) string {
	if s, ok := err.(*E); ok && s.isSentinel() {
		return s.Message
	}
	return err.Error()
}

func (e *E) isSentinel() bool {
	return e == ErrEmpty || e == ErrDomain || e == ErrNaN || e == ErrDivZero
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// New 依錯誤分級與訊息建立錯誤
func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// Empty 回傳「空資料」資料錯誤，op 為發生的操作名稱（例如 "percentile"）。
func Empty(op string) *E {
	return &E{Message: op + ": empty dataset", ErrLv: Warn, Cause: ErrEmpty}
}

// Domainf 回傳「參數超出定義域」資料錯誤。
func Domainf(format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), ErrLv: Warn, Cause: ErrDomain}
}

// NaN 回傳「輸入含 NaN」資料錯誤。
func NaN(op string) *E {
	return &E{Message: op + ": nan in input", ErrLv: Warn, Cause: ErrNaN}
}

// DivZero 回傳「分母為 0」資料錯誤。
func DivZero(op string) *E {
	return &E{Message: op + ": zero denominator", ErrLv: Warn, Cause: ErrDivZero}
}

// Wrap 使用給定的訊息包裝底層錯誤，建立一個 *E。
//
// ErrLevel 規則：
//   - 若 cause 已經是 *E，則沿用其 ErrLv（保持原本嚴重度）。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），則 ErrLv 一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	var e *E
	errLv := Fatal
	if errors.As(cause, &e) {
		errLv = e.ErrLv
	}
	r := New(errLv, msg)
	r.Cause = cause
	return r
}

// WrapWithExtra 與 Wrap 相同，但可附加額外上下文字串。
func WrapWithExtra(cause error, msg string, extra string) *E {
	r := Wrap(cause, msg)
	r.Extra = extra
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// IsData 回報 err 是否為可恢復的資料錯誤（任一哨兵）。
func IsData(err error) bool {
	return errors.Is(err, ErrEmpty) || errors.Is(err, ErrDomain) ||
		errors.Is(err, ErrNaN) || errors.Is(err, ErrDivZero)
}
