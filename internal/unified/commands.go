package unified

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/bibliodash/internal/catalog"
	"github.com/blackwell-systems/bibliodash/internal/operations"
	"github.com/blackwell-systems/bibliodash/internal/store"
	"github.com/blackwell-systems/bibliodash/internal/tui"
)

// reload starts one batch of concurrent loads. When every load in the
// batch has settled, successfully or not, the stats are refreshed.
func (m *Model) reload(kinds ...catalog.Kind) tea.Cmd {
	if len(kinds) == 0 {
		return m.statsCmd()
	}
	m.nextBatch++
	batch := m.nextBatch
	m.batches[batch] = len(kinds)
	m.pending += len(kinds)

	cmds := make([]tea.Cmd, 0, len(kinds)+1)
	for _, k := range kinds {
		cmds = append(cmds, m.loadCmd(batch, m.state.Begin(k)))
	}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadCmd(batch int, gen store.Generation) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return loadedMsg{batch: batch, result: svc.Load(ctx, gen)}
	}
}

func (m *Model) statsCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		s, err := svc.Stats(ctx)
		return statsMsg{stats: s, err: err}
	}
}

func (m *Model) saveCmd(msg tui.FormSubmitMsg) tea.Cmd {
	svc, ctx, form := m.svc, m.ctx, m.formSeq
	return func() tea.Msg {
		out, err := svc.Save(ctx, msg.Mode, msg.Payload)
		return commandMsg{outcome: out, err: err, form: form}
	}
}

// openForm shows f, numbering it so save results can be matched to it.
func (m *Model) openForm(f tui.Form) {
	m.formSeq++
	m.form = &f
}

func (m *Model) deleteCmd(kind catalog.Kind, id int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		out, err := svc.Delete(ctx, kind, id)
		return commandMsg{outcome: out, err: err}
	}
}

func (m *Model) returnCmd(id int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		out, err := svc.ReturnLoan(ctx, id)
		return commandMsg{outcome: out, err: err}
	}
}

func (m *Model) bookReviewsCmd(bookID int) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		reviews, err := svc.BookReviews(ctx, bookID)
		return bookReviewsMsg{bookID: bookID, reviews: reviews, err: err}
	}
}

// handleLoaded applies a load result and, once its batch has settled,
// schedules the stats refresh.
func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	m.pending--
	var cmds []tea.Cmd

	if msg.result.Err != nil {
		cmds = append(cmds, m.toast.Show(tui.ToastError, operations.Message(msg.result.Err)))
	} else if applied, err := m.state.Replace(msg.result.Gen, msg.result.Data); err != nil {
		cmds = append(cmds, m.toast.Show(tui.ToastError, err.Error()))
	} else if applied {
		m.clampCursor(msg.result.Gen.Kind)
		if m.form != nil {
			m.form.RefreshOptions(m.formContext())
		}
	}

	m.batches[msg.batch]--
	if m.batches[msg.batch] <= 0 {
		delete(m.batches, msg.batch)
		cmds = append(cmds, m.statsCmd())
	}
	return tea.Batch(cmds...)
}

// handleCommand reports a command result. On success the form that saved
// closes and the affected collections reload; on failure it stays open. A
// form opened since the save was issued is left alone.
func (m *Model) handleCommand(msg commandMsg) tea.Cmd {
	own := msg.form != 0 && m.form != nil && msg.form == m.formSeq
	if msg.err != nil {
		text := operations.Message(msg.err)
		if own {
			m.form.Failed(text)
		}
		return m.toast.Show(tui.ToastError, text)
	}
	if own {
		m.form = nil
	}
	return tea.Batch(
		m.toast.Show(tui.ToastSuccess, msg.outcome.Message),
		m.reload(msg.outcome.Reload...),
	)
}
