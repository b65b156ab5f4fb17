package dstgopher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUptimeFile(t *testing.T) {
	ut, errParse := parseUptimeFile([]byte("123.45 678.90"))
	assert.Equal(t, nil, errParse)
	assert.Equal(t, int64(123), ut)

	_, errBad := parseUptimeFile([]byte("garbage"))
	assert.NotNil(t, errBad)

	_, errBad = parseUptimeFile([]byte("abc def"))
	assert.NotNil(t, errBad)
}
