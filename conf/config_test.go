package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	const key = "EDI_CONF_TEST_VAR"

	assert.Equal(t, "", GetEnv(key))

	assert.NoError(t, SetEnv(t, key, "value"))
	assert.Equal(t, "value", GetEnv(key))

	assert.NoError(t, UnsetEnv(t, key))
	assert.Equal(t, "", GetEnv(key))
}

func TestLookupEnv(t *testing.T) {
	const key = "EDI_CONF_LOOKUP_TEST_VAR"

	_, found := LookupEnv(key)
	assert.False(t, found)

	assert.NoError(t, SetEnv(t, key, "value"))
	value, found := LookupEnv(key)
	assert.True(t, found)
	assert.Equal(t, "value", value)

	assert.NoError(t, UnsetEnv(t, key))
}
