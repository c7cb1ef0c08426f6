package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAnnotate_PassthroughByteForByte(t *testing.T) {
	inputs := []string{
		"plain text\n",
		"no trailing newline",
		"",
		"binary-ish \x00\x01\x02 bytes\n",
		"multi\nline\npayload\n",
	}

	for _, in := range inputs {
		var out bytes.Buffer
		err := runAnnotate(strings.NewReader(in), &out, "-u", advisoryBlock)
		require.NoError(t, err)
		require.Equal(t, in, out.String(), "input %q must pass through unmodified", in)
	}
}

func TestRunAnnotate_PassthroughLargeInput(t *testing.T) {
	// The passthrough contract has no size cap: inputs well past the hook
	// payload limit still come out byte-for-byte.
	in := strings.Repeat("a", maxHookStdinBytes+100)

	var out bytes.Buffer
	err := runAnnotate(strings.NewReader(in), &out, "-u", advisoryBlock)
	require.NoError(t, err)
	require.Equal(t, len(in), out.Len())
	require.Equal(t, in, out.String())
}

func TestRunAnnotate_TriggerPrependsAdvisory(t *testing.T) {
	in := "make it faster -u\n"

	var out bytes.Buffer
	err := runAnnotate(strings.NewReader(in), &out, "-u", advisoryBlock)
	require.NoError(t, err)

	got := out.String()
	require.True(t, strings.HasPrefix(got, advisoryBlock+"\n\n"))
	// Original payload follows the advisory, intact and uninterleaved.
	require.Equal(t, in, strings.TrimPrefix(got, advisoryBlock+"\n\n"))
}

func TestRunAnnotate_CustomAdvisoryText(t *testing.T) {
	in := "walk me through this -e\n"

	var out bytes.Buffer
	err := runAnnotate(strings.NewReader(in), &out, "-e", "Explain the project layout first.")
	require.NoError(t, err)
	require.Equal(t, "Explain the project layout first.\n\n"+in, out.String())
}

func TestRunAnnotate_Reproducible(t *testing.T) {
	in := "same input -u"

	var first, second bytes.Buffer
	require.NoError(t, runAnnotate(strings.NewReader(in), &first, "-u", advisoryBlock))
	require.NoError(t, runAnnotate(strings.NewReader(in), &second, "-u", advisoryBlock))
	require.Equal(t, first.String(), second.String())
}

func TestRunAnnotate_TriggerMidTextDoesNotFire(t *testing.T) {
	in := "the -u flag is documented here\n"

	var out bytes.Buffer
	require.NoError(t, runAnnotate(strings.NewReader(in), &out, "-u", advisoryBlock))
	require.Equal(t, in, out.String())
}
