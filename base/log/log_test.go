package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithFieldDoesNotShareBacking(t *testing.T) {
	base := Log().WithField("component", "cache")
	a := base.WithField("cache", "topOne")
	b := base.WithField("cache", "assets")

	assert.Equal(t, []interface{}{"component", "cache"}, base.fields)
	assert.Equal(t, []interface{}{"component", "cache", "cache", "topOne"}, a.fields)
	assert.Equal(t, []interface{}{"component", "cache", "cache", "assets"}, b.fields)
}

func TestWithFields(t *testing.T) {
	l := Log().WithFields(Fields{"a": 1})
	assert.Equal(t, []interface{}{"a", 1}, l.fields)
}
