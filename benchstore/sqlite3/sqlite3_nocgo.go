// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !cgo

// Without cgo, go-sqlite3 registers a stub driver whose Open always
// fails and whose SQLiteConn lacks Exec, so the foreign-key connect
// hook cannot be installed.
package sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)
