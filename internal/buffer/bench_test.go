package buffer

import "testing"

func BenchmarkAppend_Presized(b *testing.B) {
	chunk := make([]byte, 4096)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := New(1 << 20)
		buf.Reserve(16*len(chunk) + 1) //nolint:errcheck
		for j := 0; j < 16; j++ {
			buf.Append(chunk) //nolint:errcheck
		}
	}
}

func BenchmarkAppend_Unsized(b *testing.B) {
	chunk := make([]byte, 4096)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := New(1 << 20)
		for j := 0; j < 16; j++ {
			buf.Append(chunk) //nolint:errcheck
		}
	}
}
