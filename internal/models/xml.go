package models

// XMLNode представляет узел обобщенного дерева разобранного XML-ответа провайдера.
// Имена тегов и атрибутов приводятся к нижнему регистру, текст нормализуется по пробелам.
type XMLNode struct {
	Name     string            `json:"name"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*XMLNode        `json:"children,omitempty"`
}

// Child возвращает первый дочерний узел с указанным именем.
// Имя ожидается в нижнем регистре, как после разбора.
func (n *XMLNode) Child(name string) *XMLNode {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}
