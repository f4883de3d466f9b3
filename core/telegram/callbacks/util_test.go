package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

type cbContext struct {
	tele.Context
	cb *tele.Callback
}

func (c cbContext) Callback() *tele.Callback { return c.cb }

func TestSplit(t *testing.T) {
	tests := []struct {
		data, key, payload string
	}{
		{"PAGE_3", "PAGE", "3"},
		{"GEN_bn_BD_male", "GEN", "bn_BD_male"},
		{" LOC_fr_BE ", "LOC", "fr_BE"},
		{"NOPE", "NOPE", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		k, p := Split(tt.data)
		assert.Equal(t, tt.key, k, tt.data)
		assert.Equal(t, tt.payload, p, tt.data)
	}
}

func TestContextAccessors(t *testing.T) {
	c := cbContext{cb: &tele.Callback{Data: "GEN_fr_FR_any"}}
	assert.Equal(t, "GEN_fr_FR_any", Data(c))
	assert.Equal(t, "GEN", Key(c))
	assert.Equal(t, "fr_FR_any", Payload(c))

	empty := cbContext{}
	assert.Empty(t, Data(empty))
	assert.Empty(t, Key(empty))
}
