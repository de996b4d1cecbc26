package scanner

import (
	"testing"
)

func FuzzScanner(f *testing.F) {
	f.Add(`\psline[linewidth=0.1]{->}(0,0)(1,2)`)
	f.Add(`\rput{45}(1,1){\psdots(0,0)}`)
	f.Add(`% comment only`)
	f.Add(`{{{`)
	f.Add(`\`)

	f.Fuzz(func(t *testing.T, data string) {
		s := New(data, Config{MaxTokenLength: 1024, MaxDepth: 10})
		for i := 0; i <= len(data); i++ {
			tok, err := s.Next()
			if err != nil {
				return
			}
			if tok.Type == TokenLBrace {
				_, _ = s.ReadGroup('{', '}')
			}
		}
		t.Fatalf("scanner did not terminate on %q", data)
	})
}
