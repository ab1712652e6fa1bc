package grocery

import "strings"

// RenderChecklist formats list as a plain-text checklist suitable for
// printing or download.
func RenderChecklist(list List) string {
	var b strings.Builder
	b.WriteString("GROCERY LIST\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")

	for _, category := range list.Categories {
		b.WriteString(strings.ToUpper(category.Name))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", 20))
		b.WriteString("\n")
		for _, item := range category.Items {
			b.WriteString("[ ] ")
			b.WriteString(item.Amount)
			b.WriteString(" ")
			b.WriteString(item.Item)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
