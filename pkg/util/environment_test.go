package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("SUBWAY_REDIS_ADDRESS", "redis:6379")
	t.Setenv("SUBWAY_ELASTICSEARCH_PASSWORD", "a=b")
	t.Setenv("OTHER_SETTING", "ignored")

	env := GetEnvironmentVariables()

	assert.Equal(t, "redis:6379", env["SUBWAY_REDIS_ADDRESS"])
	assert.Equal(t, "a=b", env["SUBWAY_ELASTICSEARCH_PASSWORD"])
	assert.NotContains(t, env, "OTHER_SETTING")
}
