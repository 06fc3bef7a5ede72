package diff

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTexts_Simple(t *testing.T) {
	r := Texts("Hello", "Hello World")

	require.NotEmpty(t, r.Ops)
	assert.Equal(t, Op{Type: "equal", Text: "Hello"}, r.Ops[0])
	assert.Equal(t, Op{Type: "insert", Text: " World"}, r.Ops[len(r.Ops)-1])
	assert.NotEmpty(t, r.Patch)
}

func TestTexts_Identical(t *testing.T) {
	r := Texts("same", "same")

	assert.Equal(t, []Op{{Type: "equal", Text: "same"}}, r.Ops)
	assert.Equal(t, "", r.Patch)
}

func TestApply_BadPatch(t *testing.T) {
	_, _, err := Apply("base", "@@ not a patch")
	assert.Error(t, err)
}

// 差异片段可以还原两端文本，补丁应用到原文得到新文本
func TestProperty_DiffRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("ops rebuild both sides", prop.ForAll(
		func(from, to string) bool {
			var a, b strings.Builder
			for _, op := range Texts(from, to).Ops {
				if op.Type != "insert" {
					a.WriteString(op.Text)
				}
				if op.Type != "delete" {
					b.WriteString(op.Text)
				}
			}
			return a.String() == from && b.String() == to
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("patch applied to from yields to", prop.ForAll(
		func(from, to string) bool {
			out, ok, err := Apply(from, Texts(from, to).Patch)
			return err == nil && ok && out == to
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
