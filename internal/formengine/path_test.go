package formengine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	p, err := ParsePath("enderecos.0.cep")
	require.NoError(t, err)
	assert.Equal(t, PathOf("enderecos", 0, "cep"), p)
	assert.Equal(t, "enderecos.0.cep", p.String())
	assert.Equal(t, "enderecos.0", p.Parent().String())
	assert.Equal(t, "enderecos.0.uf", p.Sibling("uf").String())
	assert.Equal(t, Key("cep"), p.Last())

	for _, raw := range []string{"", ".nome", "nome.", "enderecos..cep", "telefones.999.ddd"} {
		_, err := ParsePath(raw)
		assert.ErrorIs(t, err, models.ErrInvalidPath, raw)
	}
}

func TestPathOf_PanicsOnUnsupportedPart(t *testing.T) {
	assert.Panics(t, func() { PathOf("enderecos", 1.5) })
	assert.Panics(t, func() { MustParsePath("") })
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	base := PathOf("dados_bancarios", 0)
	a := base.Child("banco")
	b := base.Child("conta")
	assert.Equal(t, "dados_bancarios.0.banco", a.String())
	assert.Equal(t, "dados_bancarios.0.conta", b.String())

	p := MustParsePath("enderecos.0.cep")
	_ = p.Parent().Child("uf")
	assert.Equal(t, "enderecos.0.cep", p.String())
}

func TestMutate_LeavesInputUntouched(t *testing.T) {
	state := models.NewDefaultFormState()
	before := Clone(state)

	next, err := Mutate(state, PathOf("enderecos", 0, "cep"), "01310-100")
	require.NoError(t, err)

	got, ok := Get(next, MustParsePath("enderecos.0.cep"))
	require.True(t, ok)
	assert.Equal(t, "01310-100", got)

	if diff := cmp.Diff(before, state); diff != "" {
		t.Errorf("input state changed (-want +got):\n%s", diff)
	}
}

func TestMutate_SameWriteTwiceIsStable(t *testing.T) {
	state := models.NewDefaultFormState()
	path := PathOf("telefones", 0, "numero")

	once, err := Mutate(state, path, "98765-4321")
	require.NoError(t, err)
	twice, err := Mutate(once, path, "98765-4321")
	require.NoError(t, err)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second write changed state (-once +twice):\n%s", diff)
	}
}

func TestMutate_CreatesIntermediates(t *testing.T) {
	next, err := Mutate(models.FormState{}, MustParsePath("telefones.1.numero"), "3333-4444")
	require.NoError(t, err)

	want := models.FormState{
		"telefones": []interface{}{
			nil,
			map[string]interface{}{"numero": "3333-4444"},
		},
	}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("unexpected state (-want +got):\n%s", diff)
	}
}

func TestMutate_WalksPseudoArrayMaps(t *testing.T) {
	state := models.FormState{
		"enderecos": map[string]interface{}{
			"0": map[string]interface{}{"cep": ""},
		},
	}

	next, err := Mutate(state, PathOf("enderecos", 0, "cep"), "20040-020")
	require.NoError(t, err)

	enderecos, ok := next["enderecos"].(map[string]interface{})
	require.True(t, ok, "pseudo-array stays a map")
	assert.Equal(t, "20040-020", enderecos["0"].(map[string]interface{})["cep"])
	assert.Equal(t, "20040-020", GetString(next, PathOf("enderecos", 0, "cep")))
}

func TestMutate_Conflicts(t *testing.T) {
	state := models.FormState{
		"nome":      "Maria",
		"telefones": []interface{}{},
	}

	_, err := Mutate(state, MustParsePath("nome.primeiro"), "x")
	assert.ErrorIs(t, err, models.ErrPathConflict)

	_, err = Mutate(state, MustParsePath("telefones.ddd"), "21")
	assert.ErrorIs(t, err, models.ErrPathConflict)

	_, err = Mutate(state, Path{Index(0)}, "x")
	assert.ErrorIs(t, err, models.ErrInvalidPath)

	_, err = Mutate(state, nil, "x")
	assert.ErrorIs(t, err, models.ErrInvalidPath)
}

func TestGet(t *testing.T) {
	state := validClientState()

	v, ok := Get(state, MustParsePath("telefones.0.ddd"))
	assert.True(t, ok)
	assert.Equal(t, "21", v)

	_, ok = Get(state, MustParsePath("telefones.3.ddd"))
	assert.False(t, ok)

	_, ok = Get(state, MustParsePath("nome.primeiro"))
	assert.False(t, ok)

	assert.Equal(t, "", GetString(state, MustParsePath("nome_pai")))
}

func TestClone_Nil(t *testing.T) {
	assert.Equal(t, models.FormState{}, Clone(nil))
}
