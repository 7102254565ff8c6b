package tickets

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var codePattern = regexp.MustCompile(`^BRT\d{6}[A-Z0-9]{3}$`)

func TestGenerateCodeFormat(t *testing.T) {
	now := time.Date(2025, 3, 7, 23, 59, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		code := GenerateCode(now, nil)
		assert.Regexp(t, codePattern, code)
		assert.Equal(t, "BRT250307", code[:9])
	}
}

func TestGenerateCodeUsesDrawnCharacters(t *testing.T) {
	draws := []int{0, 25, 35}
	i := 0
	intn := func(n int) int {
		assert.Equal(t, 36, n)
		v := draws[i]
		i++
		return v
	}

	code := GenerateCode(time.Date(2031, 12, 1, 0, 0, 0, 0, time.UTC), intn)

	assert.Equal(t, "BRT311201AZ9", code)
}
