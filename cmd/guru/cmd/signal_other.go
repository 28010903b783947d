//go:build !unix

package cmd

import "errors"

func raiseFPE() error {
	return errors.New("signal demo requires a unix system")
}
