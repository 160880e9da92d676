// Package categorizer maps free-text transaction descriptions to a fixed set
// of spending categories by keyword.
package categorizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Default is returned when no keyword matches.
const Default = "outros"

// Category is one entry of the keyword table.
type Category struct {
	Name     string   `json:"categoria"`
	Keywords []string `json:"palavras"`
}

// table is scanned top to bottom; the first category with a matching
// keyword wins, so order here is precedence.
var table = []Category{
	{Name: "alimentação", Keywords: []string{"supermercado", "restaurante", "lanche", "mercado", "delivery"}},
	{Name: "transporte", Keywords: []string{"uber", "táxi", "ônibus", "alcool", "gasolina"}},
	{Name: "saúde", Keywords: []string{"farmácia", "remédio", "consulta", "exame"}},
	{Name: "lazer", Keywords: []string{"cinema", "show", "bar", "viagem", "games", "livros"}},
	{Name: "moradia", Keywords: []string{"aluguel", "condomínio", "luz", "água", "internet"}},
}

// folded holds the keywords in the same form Categorize compares against.
var folded = func() [][]string {
	out := make([][]string, len(table))
	for i, c := range table {
		out[i] = make([]string, len(c.Keywords))
		for j, kw := range c.Keywords {
			out[i][j] = fold(kw)
		}
	}
	return out
}()

// Categorize returns the category for description, or Default.
func Categorize(description string) string {
	desc := fold(description)
	if desc == "" {
		return Default
	}
	for i, keywords := range folded {
		for _, kw := range keywords {
			if strings.Contains(desc, kw) {
				return table[i].Name
			}
		}
	}
	return Default
}

// Categories returns a copy of the table in precedence order.
func Categories() []Category {
	out := make([]Category, len(table))
	for i, c := range table {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// fold puts s in NFC and lower case so composed and decomposed accents
// compare equal.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
