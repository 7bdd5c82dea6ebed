package tossup

import (
	"encoding/binary"
	"log"
	"path"
	"path/filepath"
)

func Ptr[T any](v T) *T {
	return &v
}

func Must1(err error) {
	if err != nil {
		log.Panic(err)
	}
}

func EncodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func PathJoin(prefix, suffix string) string {
	if path.IsAbs(suffix) {
		return suffix
	}
	return filepath.Join(prefix, suffix)
}
