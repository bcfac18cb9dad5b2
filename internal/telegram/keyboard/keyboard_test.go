package keyboard

import "testing"

func TestInlineNPerRow(t *testing.T) {
	buttons := []Btn{
		{Text: "a", Data: "a"}, {Text: "b", Data: "b"},
		{Text: "c", Data: "c"}, {Text: "d", Data: "d"},
		{Text: "e", Data: "e"},
	}
	markup := InlineNPerRow(buttons, 2)

	rows := markup.InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 2 || len(rows[2]) != 1 {
		t.Fatalf("row sizes = %d/%d/%d", len(rows[0]), len(rows[1]), len(rows[2]))
	}
	if rows[2][0].Data != "e" {
		t.Fatalf("last button = %q", rows[2][0].Data)
	}
}

func TestPagerTokens(t *testing.T) {
	markup := Pager("book_7")
	rows := markup.InlineKeyboard
	if len(rows) != 1 || len(rows[0]) != 3 {
		t.Fatalf("unexpected shape: %v", rows)
	}
	if rows[0][0].Data != "prev_category" || rows[0][1].Data != "book_7" || rows[0][2].Data != "next_category" {
		t.Fatalf("tokens = %q %q %q", rows[0][0].Data, rows[0][1].Data, rows[0][2].Data)
	}
}
