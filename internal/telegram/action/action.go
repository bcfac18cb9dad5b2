// Package action defines the closed set of callback actions the bot
// understands. Callback data is parsed exactly once, at the router
// boundary; anything that does not match a known shape is rejected
// before any handler runs.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadAction reports a known verb whose parameter segments are
// malformed. The router answers it with a user-visible rejection.
var ErrBadAction = errors.New("action: malformed callback data")

// ErrUnknownAction reports callback data matching no known verb at all,
// typically a button from a retired keyboard. The router acknowledges
// and otherwise ignores it.
var ErrUnknownAction = errors.New("action: unknown callback token")

// Kind enumerates every routed action.
type Kind int

const (
	// ShowRooms enters the category browser.
	ShowRooms Kind = iota + 1
	// ShowServices lists the add-on service catalog.
	ShowServices
	// PrevCategory moves the browser one category back (wrapping).
	PrevCategory
	// NextCategory moves the browser one category forward (wrapping).
	NextCategory
	// Book starts the booking dialog for a room.
	Book
	// SelectService starts the order dialog for a catalog service.
	SelectService
	// SkipField skips an optional booking field (email, phone, comment).
	SkipField
	// Broadcast starts the announcement dialog.
	Broadcast
	// StartBroadcast confirms and launches the announcement fan-out.
	StartBroadcast
	// Back returns to a named screen.
	Back
	// DBList shows the raw records of an admin entity.
	DBList
	// AdminAdd starts an add dialog for an admin entity.
	AdminAdd
	// AdminEditText starts a one-shot "id;field;value" edit dialog.
	AdminEditText
	// AdminEditMenu starts a two-phase pick-target, pick-field edit dialog.
	AdminEditMenu
	// AdminDeleteMenu asks for the id of the record to delete.
	AdminDeleteMenu
	// AdminDeleteByID deletes a record addressed directly in the token.
	AdminDeleteByID
	// AdminPickField selects the field to change in an edit-by-menu dialog.
	AdminPickField
	// EditGuestService edits one service order line addressed by its
	// composite identity.
	EditGuestService
)

var kindNames = map[Kind]string{
	ShowRooms:        "show_rooms",
	ShowServices:     "show_services",
	PrevCategory:     "prev_category",
	NextCategory:     "next_category",
	Book:             "book",
	SelectService:    "select_service",
	SkipField:        "skip_field",
	Broadcast:        "broadcast",
	StartBroadcast:   "start_broadcast",
	Back:             "back",
	DBList:           "db_list",
	AdminAdd:         "admin_add",
	AdminEditText:    "admin_edit_text",
	AdminEditMenu:    "admin_edit_menu",
	AdminDeleteMenu:  "admin_delete_menu",
	AdminDeleteByID:  "admin_delete_by_id",
	AdminPickField:   "admin_pick_field",
	EditGuestService: "edit_guest_service",
}

// String names the action kind for logs.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Entity names accepted in admin tokens.
const (
	EntityUser    = "user"
	EntityRoom    = "room"
	EntityImage   = "image"
	EntityGuest   = "guest"
	EntityService = "service"
	EntityOrder   = "gs"
)

// Action is the parsed form of one callback token. Only the fields
// relevant to Kind are populated.
type Action struct {
	Kind Kind

	// Entity names the admin entity for DBList/AdminAdd/AdminEdit*/AdminDelete*.
	Entity string
	// ID carries the room id for Book, the service id for SelectService,
	// and the record id for AdminDeleteByID.
	ID int64
	// Field carries the skipped field name for SkipField and the picked
	// column for AdminPickField.
	Field string
	// Target names the screen for Back.
	Target string

	// Composite order identity for EditGuestService.
	GuestID   int64
	ServiceID int64
	OrderDate time.Time
}

var entities = map[string]struct{}{
	EntityUser:    {},
	EntityRoom:    {},
	EntityImage:   {},
	EntityGuest:   {},
	EntityService: {},
	EntityOrder:   {},
}

// orderDateLayout is the wire form of the order timestamp embedded in
// edit_gs tokens. Full precision keeps the composite identity unique.
const orderDateLayout = time.RFC3339Nano

// FormatOrderDate renders an order timestamp for embedding in a token.
func FormatOrderDate(t time.Time) string {
	return t.Format(orderDateLayout)
}

// Parse converts raw callback data into an Action. Exact tokens are
// tried first, then parameterised prefixes. Trailing parameter segments
// are validated here so handlers never see malformed input: a known
// verb with bad parameters is ErrBadAction, data matching no verb at
// all is ErrUnknownAction.
func Parse(data string) (Action, error) {
	token := strings.TrimSpace(data)
	if token == "" {
		return Action{}, fmt.Errorf("empty token: %w", ErrUnknownAction)
	}

	switch token {
	case "show_rooms":
		return Action{Kind: ShowRooms}, nil
	case "show_services":
		return Action{Kind: ShowServices}, nil
	case "prev_category":
		return Action{Kind: PrevCategory}, nil
	case "next_category":
		return Action{Kind: NextCategory}, nil
	case "broadcast":
		return Action{Kind: Broadcast}, nil
	case "start_broadcast":
		return Action{Kind: StartBroadcast}, nil
	case "skip_email":
		return Action{Kind: SkipField, Field: "email"}, nil
	case "skip_phone":
		return Action{Kind: SkipField, Field: "phone"}, nil
	case "skip_comment":
		return Action{Kind: SkipField, Field: "comment"}, nil
	}

	if rest, ok := strings.CutPrefix(token, "book_"); ok {
		id, err := parseID(rest)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: Book, ID: id}, nil
	}
	if rest, ok := strings.CutPrefix(token, "select_service_"); ok {
		id, err := parseID(rest)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: SelectService, ID: id}, nil
	}
	if rest, ok := strings.CutPrefix(token, "back_to_"); ok {
		if rest == "" {
			return Action{}, fmt.Errorf("back_to: empty target: %w", ErrBadAction)
		}
		return Action{Kind: Back, Target: rest}, nil
	}

	// edit_gs_<guest_id>_<service_id>_<order_date> carries the composite
	// identity of one order line; checked before the generic edit_ prefix.
	if rest, ok := strings.CutPrefix(token, "edit_gs_"); ok {
		parts := strings.SplitN(rest, "_", 3)
		if len(parts) != 3 {
			return Action{}, fmt.Errorf("edit_gs: want 3 segments: %w", ErrBadAction)
		}
		guestID, err := parseID(parts[0])
		if err != nil {
			return Action{}, err
		}
		serviceID, err := parseID(parts[1])
		if err != nil {
			return Action{}, err
		}
		orderDate, err := time.Parse(orderDateLayout, parts[2])
		if err != nil {
			return Action{}, fmt.Errorf("edit_gs: bad order date %q: %w", parts[2], ErrBadAction)
		}
		return Action{
			Kind:      EditGuestService,
			Entity:    EntityOrder,
			GuestID:   guestID,
			ServiceID: serviceID,
			OrderDate: orderDate,
		}, nil
	}

	if rest, ok := strings.CutPrefix(token, "db_"); ok {
		return entityAction(DBList, rest)
	}
	if rest, ok := strings.CutPrefix(token, "add_"); ok {
		return entityAction(AdminAdd, rest)
	}
	if rest, ok := strings.CutPrefix(token, "edit_"); ok {
		if entity, found := strings.CutSuffix(rest, "_text"); found {
			return entityAction(AdminEditText, entity)
		}
		if entity, found := strings.CutSuffix(rest, "_gui"); found {
			return entityAction(AdminEditMenu, entity)
		}
		return Action{}, fmt.Errorf("edit_%s: unknown mode: %w", rest, ErrBadAction)
	}
	if rest, ok := strings.CutPrefix(token, "field_"); ok {
		entity, field, found := strings.Cut(rest, "_")
		if !found || field == "" {
			return Action{}, fmt.Errorf("field_%s: want entity and column: %w", rest, ErrBadAction)
		}
		if _, known := entities[entity]; !known {
			return Action{}, fmt.Errorf("field: unknown entity %q: %w", entity, ErrBadAction)
		}
		return Action{Kind: AdminPickField, Entity: entity, Field: field}, nil
	}
	if rest, ok := strings.CutPrefix(token, "delete_"); ok {
		if entity, found := strings.CutSuffix(rest, "_menu"); found {
			return entityAction(AdminDeleteMenu, entity)
		}
		if entity, found := strings.CutSuffix(rest, "_id"); found {
			return entityAction(AdminDeleteMenu, entity)
		}
		if entity, found := strings.CutSuffix(rest, "_gui"); found {
			return entityAction(AdminDeleteMenu, entity)
		}
		// delete_<entity>_<id> deletes directly.
		entity, idPart, found := splitLast(rest)
		if !found {
			return Action{}, fmt.Errorf("delete_%s: missing id: %w", rest, ErrBadAction)
		}
		id, err := parseID(idPart)
		if err != nil {
			return Action{}, err
		}
		act, aerr := entityAction(AdminDeleteByID, entity)
		if aerr != nil {
			return Action{}, aerr
		}
		act.ID = id
		return act, nil
	}

	return Action{}, fmt.Errorf("unknown token %q: %w", token, ErrUnknownAction)
}

func entityAction(kind Kind, entity string) (Action, error) {
	if _, ok := entities[entity]; !ok {
		return Action{}, fmt.Errorf("unknown entity %q: %w", entity, ErrBadAction)
	}
	return Action{Kind: kind, Entity: entity}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad id %q: %w", s, ErrBadAction)
	}
	return id, nil
}

func splitLast(s string) (string, string, bool) {
	i := strings.LastIndex(s, "_")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
