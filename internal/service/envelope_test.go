package service

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertValidXML проверяет, что документ разбирается без ошибок
func assertValidXML(t *testing.T, doc string) {
	t.Helper()
	decoder := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestBuildEnvelope(t *testing.T) {
	chunk := []models.Record{
		{EnvelopeID: " E1 ", AuthToken: " T1 "},
		{EnvelopeID: "E2", AuthToken: "T2"},
	}

	envelope, err := BuildEnvelope(chunk, "CTX")
	require.NoError(t, err)

	// Значения атрибутов обрезаются по пробелам
	assert.Contains(t, envelope, `ContextIdentifier="CTX" EnvelopeId="E1" AuthToken="T1"`)
	assert.Contains(t, envelope, `ContextIdentifier="CTX" EnvelopeId="E2" AuthToken="T2"`)

	// Порядок записей сохраняется
	first := strings.Index(envelope, `EnvelopeId="E1"`)
	second := strings.Index(envelope, `EnvelopeId="E2"`)
	assert.Less(t, first, second)

	// Документ является корректным XML
	assertValidXML(t, envelope)
}

func TestBuildEnvelopeEscaping(t *testing.T) {
	chunk := []models.Record{
		{EnvelopeID: `E"1<>&`, AuthToken: "T'1"},
	}

	envelope, err := BuildEnvelope(chunk, `CTX&<`)
	require.NoError(t, err)

	assert.Contains(t, envelope, `EnvelopeId="E&#34;1&lt;&gt;&amp;"`)
	assert.Contains(t, envelope, `AuthToken="T&#39;1"`)
	assert.Contains(t, envelope, `ContextIdentifier="CTX&amp;&lt;"`)

	// Экранированный документ остается корректным XML
	assertValidXML(t, envelope)
}

func TestBuildEnvelopeInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		chunk     []models.Record
		contextID string
	}{
		{
			name:      "Empty context identifier",
			chunk:     []models.Record{{EnvelopeID: "E1", AuthToken: "T1"}},
			contextID: "",
		},
		{
			name:      "Whitespace context identifier",
			chunk:     []models.Record{{EnvelopeID: "E1", AuthToken: "T1"}},
			contextID: "   ",
		},
		{
			name:      "Missing EnvelopeId",
			chunk:     []models.Record{{EnvelopeID: "  ", AuthToken: "T1"}},
			contextID: "CTX",
		},
		{
			name:      "Missing AuthToken",
			chunk:     []models.Record{{EnvelopeID: "E1", AuthToken: ""}},
			contextID: "CTX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := BuildEnvelope(tt.chunk, tt.contextID)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, envelope)
		})
	}
}
