package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketUID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		uid := NewTicketUID()
		assert.False(t, seen[uid], "duplicate UID %s", uid)
		seen[uid] = true
	}
}

func TestNewTicketUID_IsRandomUUID(t *testing.T) {
	parsed, err := uuid.Parse(NewTicketUID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}
