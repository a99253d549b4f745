//go:build nopreview

package main

import "errors"

func runPreview(*result) error {
	return errors.New("preview support was not built in (nopreview tag)")
}
