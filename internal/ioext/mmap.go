// SPDX-License-Identifier: MPL-2.0

package ioext

import "os"

// MapFile returns the full contents of f, memory-mapped when f is a
// non-empty regular file, otherwise buffered with ReadAll. The release
// function must be called once the data is no longer needed; it is never nil.
func MapFile(f *os.File) ([]byte, func(), error) {
	size, regular := RegularFileSize(f)
	if !regular || size == 0 || int64(int(size)) != size {
		data, err := ReadAll(f)
		return data, func() {}, err
	}

	data, err := mmapRead(f, int(size))
	if err != nil {
		// mmap can fail on unusual filesystems; fall back to reading.
		buf, rerr := ReadAll(f)
		return buf, func() {}, rerr
	}
	return data, func() { _ = munmap(data) }, nil
}
