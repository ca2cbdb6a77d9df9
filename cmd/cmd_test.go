package cmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsminer/cmd/schedule"
	"github.com/jonesrussell/newsminer/cmd/scrape"
)

func TestScrapeCommand(t *testing.T) {
	t.Parallel()

	cmd := scrape.Command()
	assert.Equal(t, "scrape", cmd.Use)
	require.NotNil(t, cmd.RunE)

	for flag, shorthand := range map[string]string{
		"keyword":  "k",
		"category": "c",
		"months":   "m",
	} {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %s", flag)
		assert.Equal(t, shorthand, f.Shorthand)
	}
}

func TestScheduleCommand(t *testing.T) {
	t.Parallel()

	cmd := schedule.Command()
	assert.Equal(t, "schedule", cmd.Use)
	require.NotNil(t, cmd.RunE)

	f := cmd.Flags().Lookup("cron")
	require.NotNil(t, f)
	assert.Equal(t, "0 6 * * *", f.DefValue)
}
