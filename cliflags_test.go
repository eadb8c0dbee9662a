package pidperf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestLowerPID(t *testing.T) {
	var got []*float64
	app := &cli.App{
		Flags: []cli.Flag{&LowerPIDFlag, &TreeFlag, &OutTreeFlag},
		Action: func(c *cli.Context) error {
			got = append(got, LowerPID(c))
			return nil
		},
	}

	require.NoError(t, app.Run([]string{"tool", "--lowerpid", "0.7"}))
	require.NoError(t, app.Run([]string{"tool"}))
	require.NoError(t, app.Run([]string{"tool", "-l", "0"}))

	require.Len(t, got, 3)
	require.NotNil(t, got[0])
	assert.Equal(t, 0.7, *got[0])
	assert.Nil(t, got[1], "a previous run's value must not carry over")
	require.NotNil(t, got[2])
	assert.Equal(t, 0.0, *got[2])
}

func TestOutTree(t *testing.T) {
	var names []string
	app := &cli.App{
		Flags: []cli.Flag{&TreeFlag, &OutTreeFlag},
		Action: func(c *cli.Context) error {
			names = append(names, OutTree(c))
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"tool", "-t", "DecayTree"}))
	require.NoError(t, app.Run([]string{"tool", "-t", "DecayTree", "--outtree", "pid"}))
	assert.Equal(t, []string{"DecayTree", "pid"}, names)
}
