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

package perf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunPProfModes(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	exe := func() error {
		calls++
		s := make([]byte, 1<<16)
		_ = s
		return nil
	}
	for _, mode := range []string{"", "cpu", "heap", "allocs"} {
		if err := RunPProf(dir, mode, exe); err != nil {
			t.Fatalf("%q: %v", mode, err)
		}
		if mode == "" {
			continue
		}
		if st, err := os.Stat(filepath.Join(dir, mode+".pprof")); err != nil || st.Size() == 0 {
			t.Fatalf("%s profile missing: %v", mode, err)
		}
	}
	if calls != 4 {
		t.Fatalf("exe called %d times", calls)
	}
}

func TestRunPProfErrors(t *testing.T) {
	boom := errors.New("boom")
	if err := RunPProf(t.TempDir(), "heap", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("exe error not returned: %v", err)
	}
	if err := RunPProf(t.TempDir(), "trace", func() error { return nil }); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
