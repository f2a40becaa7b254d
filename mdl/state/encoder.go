// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"encoding/gob"
	"encoding/json"
	goio "io"

	"github.com/cpmech/gosl/utl"
)

// NewEncoder returns a new encoder; enctype is "gob" (default) or "json"
func NewEncoder(w goio.Writer, enctype string) utl.Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// NewDecoder returns a new decoder; enctype is "gob" (default) or "json"
func NewDecoder(r goio.Reader, enctype string) utl.Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}
