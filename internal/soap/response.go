package soap

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/InQaaaaGit/purge_env.git/internal/models"
)

// ParseResponse разбирает тело ответа провайдера в обобщенное дерево узлов.
// Имена тегов и атрибутов приводятся к нижнему регистру, текст нормализуется по пробелам.
// Корневой узел — сам корневой элемент документа, без дополнительной обертки.
func ParseResponse(body string) (*models.XMLNode, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))

	var root *models.XMLNode
	var stack []*models.XMLNode

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &models.XMLNode{Name: strings.ToLower(t.Name.Local)}
			if len(t.Attr) > 0 {
				node.Attrs = make(map[string]string, len(t.Attr))
				for _, attr := range t.Attr {
					node.Attrs[strings.ToLower(attr.Name.Local)] = attr.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("unbalanced end element")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := normalizeSpace(string(t))
			if text == "" {
				continue
			}
			current := stack[len(stack)-1]
			if current.Text != "" {
				current.Text += " "
			}
			current.Text += text
		}
	}

	if root == nil {
		return nil, errors.New("empty document")
	}
	if len(stack) != 0 {
		return nil, errors.New("unclosed element")
	}

	return root, nil
}

// normalizeSpace схлопывает последовательности пробельных символов в один пробел
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
