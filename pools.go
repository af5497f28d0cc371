package coll

import "sync"

var identityBytesPool = &sync.Pool{
	New: func() any {
		return make([]byte, 0, 1024)
	},
}

func releaseIdentityBytes(b []byte) {
	if cap(b) > 1<<20 {
		return
	}
	identityBytesPool.Put(b[:0])
}

var recordBytesPool = &sync.Pool{
	New: func() any {
		return make([]byte, 0, 4096)
	},
}

func releaseRecordBytes(b []byte) {
	if cap(b) > 1<<20 {
		return
	}
	recordBytesPool.Put(b[:0])
}
