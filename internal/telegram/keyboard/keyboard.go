package keyboard

import tele "gopkg.in/telebot.v4"

// Btn describes one inline button carrying a raw callback token.
type Btn struct {
	Text string
	Data string
}

// Inline builds an inline keyboard from rows of buttons. Tokens are
// written into the callback data verbatim so the action grammar sees
// them unchanged.
func Inline(rows ...[]Btn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = tele.InlineButton{Text: btn.Text, Data: btn.Data}
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// InlineList places each button on its own row.
func InlineList(buttons ...Btn) *tele.ReplyMarkup {
	rows := make([][]Btn, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []Btn{b})
	}
	return Inline(rows...)
}

// InlineNPerRow splits a flat list of buttons into rows with up to n
// buttons per row. If n <= 1 every button gets its own row.
func InlineNPerRow(buttons []Btn, n int) *tele.ReplyMarkup {
	if n <= 1 {
		return InlineList(buttons...)
	}
	var rows [][]Btn
	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return Inline(rows...)
}

// Pager builds the browser control row: previous, book the lead unit,
// next.
func Pager(bookData string) *tele.ReplyMarkup {
	return Inline([]Btn{
		{Text: "<<", Data: "prev_category"},
		{Text: "Book", Data: bookData},
		{Text: ">>", Data: "next_category"},
	})
}

// Skip builds a single skip button for an optional booking field.
func Skip(data string) *tele.ReplyMarkup {
	return Inline([]Btn{{Text: "Skip", Data: data}})
}
