package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetStatus_Anonymous(t *testing.T) {
	a := &App{manager: newTestManager(t, &fakeStore{})}
	require.Equal(t, "", a.getStatus())
}

func TestGetStatus_Authenticated(t *testing.T) {
	a := &App{manager: newTestManager(t, &fakeStore{sess: activeSession()})}
	require.Equal(t, "(Alice)", a.getStatus())
}
