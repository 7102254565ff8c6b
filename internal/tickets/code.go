package tickets

import (
	"math/rand/v2"
	"strings"
	"time"
)

const (
	codePrefix   = "BRT"
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeSuffix   = 3
)

// GenerateCode builds a ticket code: BRT, the date as YYMMDD, then three
// characters drawn uniformly from [A-Z0-9]. intn must return a value in
// [0, n); nil uses the shared math/rand/v2 source. Codes are not checked
// against existing tickets.
func GenerateCode(now time.Time, intn func(n int) int) string {
	if intn == nil {
		intn = rand.IntN
	}
	var b strings.Builder
	b.Grow(len(codePrefix) + 6 + codeSuffix)
	b.WriteString(codePrefix)
	b.WriteString(now.Format("060102"))
	for i := 0; i < codeSuffix; i++ {
		b.WriteByte(codeAlphabet[intn(len(codeAlphabet))])
	}
	return b.String()
}
