// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package ioext

import (
	"errors"
	"os"
)

func mmapRead(_ *os.File, _ int) ([]byte, error) {
	return nil, errors.New("mmap unsupported")
}

func munmap(_ []byte) error {
	return nil
}
