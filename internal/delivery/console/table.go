package console

import (
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/user/cat-census/internal/entity"
)

// NewTable returns a rounded table writer mirrored to w.
func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderCats prints every cat, oldest first. Equal ages keep input order.
func RenderCats(w io.Writer, cats []entity.CatRecord) {
	sorted := make([]entity.CatRecord, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalMonths() > sorted[j].TotalMonths()
	})

	t := NewTable(w)
	t.AppendHeader(table.Row{"#", "Name", "Age", "Sex", "Profile"})
	for i, c := range sorted {
		sex := "Male"
		if c.IsFemale {
			sex = "Female"
		}
		t.AppendRow(table.Row{i + 1, c.Name, AgeString(c.Years, c.Months), sex, c.URL})
	}
	t.AppendFooter(table.Row{"", "Total", len(sorted)})
	t.Render()
}
