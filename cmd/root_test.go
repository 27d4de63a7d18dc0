package cmd

import (
	"bytes"
	"testing"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/config"

	"github.com/stretchr/testify/require"
)

func TestNewChaincode(t *testing.T) {
	c := config.Defaults()
	c.Metadata.Title = "datagov-test"
	c.Metadata.Version = "9.9.9"

	cc, err := newChaincode(c)
	require.NoError(t, err)
	require.Equal(t, "datagov-test", cc.Info.Title)
	require.Equal(t, "9.9.9", cc.Info.Version)
	require.Equal(t, "identity", cc.DefaultContract)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "datagov-cc")
	require.Contains(t, out.String(), config.Defaults().Metadata.Title)
}
