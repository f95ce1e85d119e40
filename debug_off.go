//go:build !debugoparse
// +build !debugoparse

package oparse

var debugging = false

func debugf(string, ...interface{}) {}

func debug(...interface{}) {}
