package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Ping(t *testing.T) {
	c, mr := newTestClient(t)
	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
