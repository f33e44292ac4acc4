package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHost(t *testing.T) {
	assert.Equal(t, DefaultHost(), normalizeHost(""))
	assert.Equal(t, "unix:///run/user/1000/docker.sock", normalizeHost("/run/user/1000/docker.sock"))
	assert.Equal(t, "unix:///var/run/docker.sock", normalizeHost("unix:///var/run/docker.sock"))
	assert.Equal(t, "tcp://127.0.0.1:2375", normalizeHost("tcp://127.0.0.1:2375"))
	assert.Equal(t, "npipe:////./pipe/docker_engine", normalizeHost("npipe:////./pipe/docker_engine"))
}
