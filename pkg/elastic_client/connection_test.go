package elastic_client

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientConfig(t *testing.T) {
	_, configured := clientConfig(map[string]string{})
	assert.False(t, configured)

	config, configured := clientConfig(map[string]string{
		"SUBWAY_ELASTICSEARCH_ADDRESS":  "http://elastic:9200",
		"SUBWAY_ELASTICSEARCH_USERNAME": "subway",
		"SUBWAY_ELASTICSEARCH_PASSWORD": "secret",
	})
	assert.True(t, configured)
	assert.Equal(t, []string{"http://elastic:9200"}, config.Addresses)
	assert.Equal(t, "subway", config.Username)
	assert.Equal(t, "secret", config.Password)
}

func TestIndexRequestWithoutConnection(t *testing.T) {
	assert.NotPanics(t, func() {
		IndexRequest("path-queries", bytes.NewReader([]byte(`{}`)))
		WaitUntilQueueEmpty()
	})
}
