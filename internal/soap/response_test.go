package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	body := `<?xml version="1.0"?>
<DeleteEnvelopesResponse Version="3.0">
  <Result Code="OK">
    <EnvelopeStatus EnvelopeId="E1">Deleted</EnvelopeStatus>
  </Result>
</DeleteEnvelopesResponse>`

	root, err := ParseResponse(body)
	require.NoError(t, err)

	// Имена тегов и атрибутов приводятся к нижнему регистру
	assert.Equal(t, "deleteenvelopesresponse", root.Name)
	assert.Equal(t, "3.0", root.Attrs["version"])

	result := root.Child("result")
	require.NotNil(t, result)
	assert.Equal(t, "OK", result.Attrs["code"])

	status := result.Child("envelopestatus")
	require.NotNil(t, status)
	assert.Equal(t, "E1", status.Attrs["envelopeid"])
	assert.Equal(t, "Deleted", status.Text)
}

func TestParseResponseWhitespaceNormalization(t *testing.T) {
	root, err := ParseResponse("<Message>  line one \n\t line two  </Message>")
	require.NoError(t, err)

	assert.Equal(t, "line one line two", root.Text)
}

func TestParseResponseTextAroundChildren(t *testing.T) {
	root, err := ParseResponse("<a> before <b>inner</b> after </a>")
	require.NoError(t, err)

	assert.Equal(t, "before after", root.Text)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "inner", root.Children[0].Text)
}

func TestParseResponseNoAttrs(t *testing.T) {
	root, err := ParseResponse("<ok/>")
	require.NoError(t, err)

	assert.Equal(t, "ok", root.Name)
	assert.Nil(t, root.Attrs)
	assert.Empty(t, root.Children)
}

func TestParseResponseInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Plain text", body: "OK, deleted"},
		{name: "Empty body", body: ""},
		{name: "Unclosed element", body: "<a><b></a>"},
		{name: "Multiple roots", body: "<a/><b/>"},
		{name: "JSON body", body: `{"status":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseResponse(tt.body)
			assert.Error(t, err)
			assert.Nil(t, root)
		})
	}
}
