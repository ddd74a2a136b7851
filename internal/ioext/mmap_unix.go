// SPDX-License-Identifier: MPL-2.0

//go:build unix

package ioext

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmapRead(f *os.File, size int) ([]byte, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	// The scan is strictly front to back; let the kernel read ahead.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	return data, nil
}

func munmap(data []byte) error {
	return unix.Munmap(data)
}
