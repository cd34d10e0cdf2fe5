package siteconfig_test

import (
	"testing"

	"github.com/rijkvp/articlex/internal/siteconfig"
	"github.com/stretchr/testify/require"
)

func TestNewCollection_LoadsEmbeddedGlobal(t *testing.T) {
	c, err := siteconfig.NewCollection("")
	require.Nil(t, err)
	require.NotNil(t, c)

	entry, ok := c.Get("unknown-host.example")
	require.False(t, ok)
	require.NotEmpty(t, entry.Body)
}

func TestCollection_FingerprintFallback(t *testing.T) {
	c, err := siteconfig.NewCollection("")
	require.Nil(t, err)

	html := []byte(`<html><head><meta name="generator" content="WordPress 6.0"></head></html>`)
	entry := c.GetWithFingerprint("some-random-blog.example", html)
	require.NotEmpty(t, entry.Body)
}
