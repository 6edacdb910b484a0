package entwire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entwire "github.com/entwire/entwire"
)

func TestEncodeDecodeJSON_RoundTrip(t *testing.T) {
	o := fullOuter()

	data, err := entwire.EncodeJSON(o)
	require.NoError(t, err)

	e2, err := entwire.DecodeJSON(outerType, data)
	require.NoError(t, err)

	same, err := entwire.Equal(o, e2)
	require.NoError(t, err)
	assert.True(t, same)
	assert.Empty(t, entwire.MissingFields(e2))
	assert.Empty(t, entwire.ExtraFields(e2))
}

func TestDecodeJSON_PresenceDiagnostics(t *testing.T) {
	e, err := entwire.DecodeJSON(outerType, []byte(`{
		"inner1": {"value": 1},
		"inners": [],
		"value": 3,
		"extra_value": 10.0
	}`))
	require.NoError(t, err)

	assert.Contains(t, entwire.MissingFields(e), "inner2")
	assert.Equal(t, []string{"extra_value"}, entwire.ExtraFields(e))
}

func TestDecodeJSON_RootMustBeRecord(t *testing.T) {
	_, err := entwire.DecodeJSON(outerType, []byte(`[1, 2, 3]`))
	require.Error(t, err)

	iss, ok := entwire.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, entwire.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "/", iss[0].Path)
}

func TestDecodeJSON_MalformedText(t *testing.T) {
	_, err := entwire.DecodeJSON(outerType, []byte(`{"value":`))
	require.Error(t, err)

	iss, ok := entwire.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, entwire.CodeParseError, iss[0].Code)
}

func TestEncodeDecodeYAML_RoundTrip(t *testing.T) {
	o := fullOuter()

	data, err := entwire.EncodeYAML(o)
	require.NoError(t, err)

	e2, err := entwire.DecodeYAML(outerType, data)
	require.NoError(t, err)

	same, err := entwire.Equal(o, e2)
	require.NoError(t, err)
	assert.True(t, same)
}

func TestDecodeYAML_TaggedUnion(t *testing.T) {
	e, err := entwire.DecodeYAML(outerType, []byte(`
inner1:
  value: 1
inners:
  - value: 4
value: 3
payload:
  $type: Note
  text: from yaml
`))
	require.NoError(t, err)

	o := e.(*Outer)
	require.Len(t, o.Inners, 1)
	assert.Equal(t, int64(4), o.Inners[0].Value)
	n, ok := o.Payload.(*Note)
	require.True(t, ok)
	assert.Equal(t, "from yaml", n.Text)
}
