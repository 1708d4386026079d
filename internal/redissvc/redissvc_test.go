package redissvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectWithoutAddr(t *testing.T) {
	rs, err := Connect(context.Background(), "", "", 0)
	assert.NoError(t, err)
	assert.Nil(t, rs)
}

func TestConnectUnreachable(t *testing.T) {
	rs, err := Connect(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
	assert.Nil(t, rs)
}
