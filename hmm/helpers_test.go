// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import narray "github.com/akualab/narray/na64"

// vec builds a *narray.NArray feature vector or mixture parameter from
// literal values, for test fixtures.
func vec(values ...float64) *narray.NArray {
	return narray.NewArray(append([]float64(nil), values...), len(values))
}
