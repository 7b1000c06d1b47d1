package chcdata

import (
	"testing"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaultsToNullLoggerAndNoopObserver(t *testing.T) {
	c := Config{}
	require.NotNil(t, c.logger())
	require.NotNil(t, c.observer())
	_, ok := c.observer().(noopObserver)
	assert.True(t, ok)
}

func TestConfigHonorsExplicitLoggerAndObserver(t *testing.T) {
	lg := hclog.NewNullLogger()
	obs := NewSimpleObserver()
	c := Config{Logger: lg, Observer: obs}

	assert.Same(t, lg, c.logger())
	assert.Same(t, obs, c.observer())
}
