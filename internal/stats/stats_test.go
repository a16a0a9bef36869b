package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcserver-go/mcserver/internal/stats"
)

func TestMean(t *testing.T) {
	t.Parallel()

	m := new(stats.Mean)
	assert.Equal(t, m.Get(), float64(0.0)) //nolint:testifylint

	m.Record(5)
	assert.Equal(t, m.Get(), float64(5.0)) //nolint:testifylint

	m.Record(6)
	assert.Equal(t, m.Get(), float64(5.5)) //nolint:testifylint

	m.Record(-10)
	assert.Equal(t, m.Get(), float64(1)/3) //nolint:testifylint
}
