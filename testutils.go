// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dsp

import "testing"

func comparef64(f1, f2, epsilon float64) bool {
	err := f2 - f1
	if err < 0 {
		err = -err
	}
	return err < epsilon
}

// CompareSliceFloat fails t if any element of actual differs from the
// corresponding element of expected by more than epsilon.
func CompareSliceFloat(t *testing.T, expected, actual []float64, message string, epsilon float64) {
	for i := range expected {
		if !comparef64(expected[i], actual[i], epsilon) {
			t.Errorf("[%s]. Expected: [%f], Got: [%f]", message, expected[i], actual[i])
		}
	}
}

// CompareFloats fails t if actual differs from expected by more than epsilon.
func CompareFloats(t *testing.T, expected, actual float64, message string, epsilon float64) {
	if !comparef64(expected, actual, epsilon) {
		t.Errorf("[%s]. Expected: [%f], Got: [%f]", message, expected, actual)
	}
}

// CheckError fails t immediately if e is not nil.
func CheckError(t *testing.T, e error) {
	if e != nil {
		t.Fatal(e)
	}
}
