package assets_test

import (
	"errors"
	"testing"

	"github.com/plus3/slipstream/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	aliases []string
	fail    error
}

func (f *fakeRegistry) RegisterSheet(alias, file string, frames, frameWidth, frameHeight int) error {
	if f.fail != nil {
		return f.fail
	}
	f.aliases = append(f.aliases, alias)
	return nil
}

func TestLoadManifest(t *testing.T) {
	m, err := assets.Load()
	require.NoError(t, err)
	require.NotEmpty(t, m.Sheets)

	byAlias := make(map[string]assets.Sheet)
	for _, sh := range m.Sheets {
		byAlias[sh.Alias] = sh
	}

	// The aliases the behaviors reference must exist in the manifest.
	assert.Contains(t, byAlias, assets.SpritePuddle)
	assert.Contains(t, byAlias, assets.SpriteSlip)
	assert.Equal(t, 4, byAlias[assets.SpritePuddle].Frames)
}

func TestRegister(t *testing.T) {
	reg := &fakeRegistry{}
	require.NoError(t, assets.Register(reg))
	assert.Contains(t, reg.aliases, assets.SpritePuddle)
	assert.Contains(t, reg.aliases, assets.SpriteSlip)
}

func TestRegisterPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	err := assets.Register(&fakeRegistry{fail: boom})
	assert.ErrorIs(t, err, boom)
}
