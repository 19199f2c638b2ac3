// Package options holds checks shared by the functional-option entry points.
package options

import "errors"

// RequireOneSource returns an error unless exactly one of sources is set.
// noSourceMsg and multiSourceMsg become the error text for the zero and
// many cases.
func RequireOneSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return errors.New(noSourceMsg)
	case n > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}
