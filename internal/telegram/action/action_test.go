package action

import (
	"errors"
	"testing"
	"time"
)

func TestParseExactTokens(t *testing.T) {
	cases := []struct {
		data string
		kind Kind
	}{
		{"show_rooms", ShowRooms},
		{"show_services", ShowServices},
		{"prev_category", PrevCategory},
		{"next_category", NextCategory},
		{"broadcast", Broadcast},
		{"start_broadcast", StartBroadcast},
	}
	for _, tc := range cases {
		act, err := Parse(tc.data)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.data, err)
		}
		if act.Kind != tc.kind {
			t.Fatalf("Parse(%q) kind = %v, want %v", tc.data, act.Kind, tc.kind)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := ShowServices.String(); got != "show_services" {
		t.Fatalf("ShowServices.String() = %q", got)
	}
	if got := Kind(0).String(); got != "unknown" {
		t.Fatalf("Kind(0).String() = %q", got)
	}
}

func TestParseSkipTokens(t *testing.T) {
	for _, field := range []string{"email", "phone", "comment"} {
		act, err := Parse("skip_" + field)
		if err != nil {
			t.Fatalf("Parse(skip_%s): %v", field, err)
		}
		if act.Kind != SkipField || act.Field != field {
			t.Fatalf("Parse(skip_%s) = %+v", field, act)
		}
	}
}

func TestParseParameterised(t *testing.T) {
	act, err := Parse("book_42")
	if err != nil {
		t.Fatalf("book_42: %v", err)
	}
	if act.Kind != Book || act.ID != 42 {
		t.Fatalf("book_42 = %+v", act)
	}

	act, err = Parse("select_service_7")
	if err != nil {
		t.Fatalf("select_service_7: %v", err)
	}
	if act.Kind != SelectService || act.ID != 7 {
		t.Fatalf("select_service_7 = %+v", act)
	}

	act, err = Parse("back_to_admin")
	if err != nil {
		t.Fatalf("back_to_admin: %v", err)
	}
	if act.Kind != Back || act.Target != "admin" {
		t.Fatalf("back_to_admin = %+v", act)
	}
}

func TestParseAdminTokens(t *testing.T) {
	cases := []struct {
		data   string
		kind   Kind
		entity string
	}{
		{"db_user", DBList, EntityUser},
		{"db_gs", DBList, EntityOrder},
		{"add_room", AdminAdd, EntityRoom},
		{"edit_room_text", AdminEditText, EntityRoom},
		{"edit_guest_gui", AdminEditMenu, EntityGuest},
		{"delete_service_menu", AdminDeleteMenu, EntityService},
		{"delete_image_id", AdminDeleteMenu, EntityImage},
	}
	for _, tc := range cases {
		act, err := Parse(tc.data)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.data, err)
		}
		if act.Kind != tc.kind || act.Entity != tc.entity {
			t.Fatalf("Parse(%q) = %+v, want kind %v entity %q", tc.data, act, tc.kind, tc.entity)
		}
	}
}

func TestParseDeleteByID(t *testing.T) {
	act, err := Parse("delete_image_15")
	if err != nil {
		t.Fatalf("delete_image_15: %v", err)
	}
	if act.Kind != AdminDeleteByID || act.Entity != EntityImage || act.ID != 15 {
		t.Fatalf("delete_image_15 = %+v", act)
	}
}

func TestParseFieldToken(t *testing.T) {
	act, err := Parse("field_guest_first_name")
	if err != nil {
		t.Fatalf("field_guest_first_name: %v", err)
	}
	if act.Kind != AdminPickField || act.Entity != EntityGuest || act.Field != "first_name" {
		t.Fatalf("field_guest_first_name = %+v", act)
	}
}

func TestParseOrderEditRoundTrip(t *testing.T) {
	orderDate := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	token := "edit_gs_3_9_" + FormatOrderDate(orderDate)

	act, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse(%q): %v", token, err)
	}
	if act.Kind != EditGuestService || act.GuestID != 3 || act.ServiceID != 9 {
		t.Fatalf("Parse(%q) = %+v", token, act)
	}
	if !act.OrderDate.Equal(orderDate) {
		t.Fatalf("order date = %v, want %v", act.OrderDate, orderDate)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"book_",
		"book_0",
		"book_-3",
		"book_abc",
		"select_service_x",
		"back_to_",
		"db_unknown",
		"add_nothing",
		"edit_room",
		"edit_gs_1_2",
		"edit_gs_1_2_not-a-date",
		"field_room",
		"field_widget_price",
		"delete_room",
		"delete_room_abc",
	}
	for _, data := range cases {
		if _, err := Parse(data); !errors.Is(err, ErrBadAction) {
			t.Fatalf("Parse(%q) err = %v, want ErrBadAction", data, err)
		}
	}
}

func TestParseUnknownVerb(t *testing.T) {
	// Unknown verbs are a distinct error: the router swallows them
	// with the ack alone instead of complaining at the user.
	cases := []string{
		"",
		"   ",
		"unknown_token",
		"legacy_show_prices",
	}
	for _, data := range cases {
		_, err := Parse(data)
		if !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("Parse(%q) err = %v, want ErrUnknownAction", data, err)
		}
		if errors.Is(err, ErrBadAction) {
			t.Fatalf("Parse(%q) err = %v, must not be ErrBadAction", data, err)
		}
	}
}
