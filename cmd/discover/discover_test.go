package discover_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/tap-nomad/cmd/discover"
)

func TestDiscoverCommand_Metadata(t *testing.T) {
	assert.Equal(t, "discover", discover.Cmd.Use)
	assert.Contains(t, discover.Cmd.Short, "stream catalog")
	assert.NotNil(t, discover.Cmd.Run)
}

func TestDiscoverCommand_LongDescription(t *testing.T) {
	assert.Contains(t, discover.Cmd.Long, "catalog of streams")
	assert.Contains(t, discover.Cmd.Long, "JSON")
}
