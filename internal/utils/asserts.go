package utils

import "log"

// MustBeTrue aborts when an internal accounting invariant is violated.
func MustBeTrue(condition bool, msg string) {
	if !condition {
		log.Fatal(msg)
	}
}
