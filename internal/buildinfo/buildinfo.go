// Package buildinfo предоставляет функциональность для управления информацией о сборке приложения.
// Информация о сборке включает версию, дату сборки и commit hash.
package buildinfo

import "fmt"

// Info содержит информацию о сборке приложения
type Info struct {
	Version string
	Date    string
	Commit  string
}

// NewInfo создает новую структуру с информацией о сборке.
// Пустые значения заменяются на "N/A".
func NewInfo(version, date, commit string) *Info {
	return &Info{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

// orNA возвращает значение или "N/A", если оно пусто
func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

// Print выводит информацию о сборке в консоль
func (info *Info) Print() {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}

// String возвращает строковое представление информации о сборке
func (info *Info) String() string {
	return fmt.Sprintf("Version: %s, Date: %s, Commit: %s", info.Version, info.Date, info.Commit)
}
