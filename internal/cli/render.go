package cli

import (
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

const maxTitleWidth = 80

// row is a todo with its 1-based position in the full list.
type row struct {
	index int
	todo  model.Todo
}

func listLines(s *store.Store, f model.Filter, group bool) []string {
	th := ui.Current()
	all := s.Todos()
	var rows []row
	for i, t := range all {
		if f.Match(t) {
			rows = append(rows, row{index: i + 1, todo: t})
		}
	}

	d, p := stats(all)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Todos"),
		ui.C(th.Success, th.SymDone), d,
		ui.C(th.Pending, th.SymPending), p,
		ui.C(th.Accent, "Total"), len(all),
	)
	if f != model.FilterAll {
		header += "  " + ui.C(th.Muted, "filter: "+f.Label())
	}

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(th.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(rows)...)
	} else {
		lines = append(lines, flatLines(rows)...)
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%d left", s.Remaining()))
	lines = append(lines, ui.C(th.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func stats(todos []model.Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(rows []row) []string {
	th := ui.Current()
	if len(rows) == 0 {
		return []string{ui.C(th.Muted, "No todos")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		idx := fmt.Sprintf("%2d.", r.index)
		box, c := th.BoxUnchecked, th.Muted
		if r.todo.Completed {
			box, c = th.BoxChecked, th.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s",
			ui.C(th.Dim, idx), ui.C(c, box), truncate(r.todo.Title, maxTitleWidth), ui.C(th.Muted, r.todo.ID)))
	}
	return out
}

func groupLines(rows []row) []string {
	th := ui.Current()
	var pend, done []row
	for _, r := range rows {
		if r.todo.Completed {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	section := func(title string, rs []row) []string {
		lines := []string{ui.C(th.Accent, title)}
		if len(rs) == 0 {
			return append(lines, ui.C(th.Muted, "(none)"))
		}
		return append(lines, flatLines(rs)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
