package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtondello/ShopifyProductSearchApp/internal/storefront"
)

func TestNewRoot_Commands(t *testing.T) {
	root := NewRoot(&Flags{}, &storefront.App{})

	names := make([]string, 0, len(root.Commands))
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"products", "collections", "subscribe", "seed", "config"}, names)

	flagNames := make(map[string]bool)
	for _, f := range root.Flags {
		for _, n := range f.Names() {
			flagNames[n] = true
		}
	}
	for _, want := range []string{"log-level", "config", "c", "data-dir", "shop", "access-token", "api-key", "source", "print"} {
		assert.True(t, flagNames[want], "missing flag %s", want)
	}
}

func TestNewRoot_UnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	root := NewRoot(&Flags{}, &storefront.App{})
	root.Writer = &buf
	root.ErrWriter = &buf

	err := root.Run(context.Background(), []string{"shopsearch", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "bogus"`)
}
