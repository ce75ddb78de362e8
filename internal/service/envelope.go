package service

import (
	"fmt"
	"strings"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
)

const (
	envelopeHeader = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <DeleteEnvelopes xmlns="http://www.docusign.net/API/3.0">
`
	envelopeFooter = `    </DeleteEnvelopes>
  </soap:Body>
</soap:Envelope>
`
)

// attrEscaper экранирует значения атрибутов XML
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

// BuildEnvelope формирует XML-документ запроса на удаление конвертов для одного пакета.
// На каждую запись приходится один элемент DeleteEnvelopeRequest с атрибутами
// ContextIdentifier, EnvelopeId и AuthToken (значения обрезаются по пробелам и экранируются).
// Возвращает ErrInvalidInput, если идентификатор контекста пуст или запись
// не содержит EnvelopeId либо AuthToken.
func BuildEnvelope(chunk []models.Record, contextID string) (string, error) {
	ctxID := strings.TrimSpace(contextID)
	if ctxID == "" {
		return "", fmt.Errorf("%w: empty context identifier", ErrInvalidInput)
	}

	var b strings.Builder
	b.WriteString(envelopeHeader)

	for i, record := range chunk {
		envelopeID := strings.TrimSpace(record.EnvelopeID)
		authToken := strings.TrimSpace(record.AuthToken)
		if envelopeID == "" {
			return "", fmt.Errorf("%w: record %d is missing EnvelopeId", ErrInvalidInput, i+1)
		}
		if authToken == "" {
			return "", fmt.Errorf("%w: record %d is missing AuthToken", ErrInvalidInput, i+1)
		}

		b.WriteString(`      <DeleteEnvelopeRequest ContextIdentifier="`)
		b.WriteString(attrEscaper.Replace(ctxID))
		b.WriteString(`" EnvelopeId="`)
		b.WriteString(attrEscaper.Replace(envelopeID))
		b.WriteString(`" AuthToken="`)
		b.WriteString(attrEscaper.Replace(authToken))
		b.WriteString("\" />\n")
	}

	b.WriteString(envelopeFooter)
	return b.String(), nil
}
