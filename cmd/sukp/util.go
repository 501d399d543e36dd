// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// reportPath builds the output path for the i-th solution of instPath
// inside dir: "<dir>/<instance-basename>.<i>.report".
func reportPath(dir, instPath string, i int) string {
	base := strings.TrimSuffix(filepath.Base(instPath), filepath.Ext(instPath))
	return filepath.Join(dir, fmt.Sprintf("%s.%d.report", base, i))
}
