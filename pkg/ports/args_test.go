package ports

import (
	"testing"

	"github.com/avral/tessera/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArgs(t *testing.T) {
	t.Run("WeakTypingFromPathStrings", func(t *testing.T) {
		var in struct {
			ID   int    `mapstructure:"id"`
			Body string `mapstructure:"body"`
		}
		err := DecodeArgs(domain.Args{"id": "42", "body": "hello"}, &in)
		require.NoError(t, err)
		assert.Equal(t, 42, in.ID)
		assert.Equal(t, "hello", in.Body)
	})

	t.Run("BoolsFromFlags", func(t *testing.T) {
		var in struct {
			Draft bool `mapstructure:"draft"`
		}
		err := DecodeArgs(domain.Args{"draft": "true"}, &in)
		require.NoError(t, err)
		assert.True(t, in.Draft)
	})

	t.Run("UnconvertibleValue", func(t *testing.T) {
		var in struct {
			ID int `mapstructure:"id"`
		}
		err := DecodeArgs(domain.Args{"id": "not-a-number"}, &in)
		assert.Error(t, err)
	})

	t.Run("ExtraKeysAreIgnored", func(t *testing.T) {
		var in struct {
			ID int `mapstructure:"id"`
		}
		err := DecodeArgs(domain.Args{"id": 1, "other": "x"}, &in)
		require.NoError(t, err)
		assert.Equal(t, 1, in.ID)
	})
}
