//go:build !linux

package raspberry

import "errors"

var errMemmapUnsupported = errors.New("gpiomem driver requires linux")

func openMemmap(bool) (GPIO, error) {
	return nil, errMemmapUnsupported
}
