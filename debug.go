//go:build debugoparse
// +build debugoparse

package oparse

import (
	"log"
)

var debugging = true

func debugf(fmt string, args ...interface{}) {
	log.Printf(fmt, args...)
}

func debug(args ...interface{}) {
	log.Println(args...)
}
