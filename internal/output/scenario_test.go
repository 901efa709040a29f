package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/inhmode/internal/scenario"
)

func TestWriteScenarios(t *testing.T) {
	rows, err := scenario.Run(scenario.Cases())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteScenarios(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(rows)+1)
	assert.Equal(t, strings.Join(scenarioColumns, "\t"), lines[0])
	assert.Equal(t, "0/0\t0/0\t0/1\tautosome - novocaller high\thomo ref\thomo ref\thet\tde novo (strong)", lines[1])
}
