package guided

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotOwner is returned when a non-owner tries to start the flow.
var ErrNotOwner = errors.New("only the shop owner can add products")

// ErrNoSession is returned when a message arrives for a conversation
// with no flow in progress.
var ErrNoSession = errors.New("no product entry in progress")

// State is a step of the add-product conversation.
type State int

const (
	StateName State = iota
	StateDescription
	StatePrice
	StateQuantity
	StateCategory
	StateImage
	StateConfirmation
)

// InputKind tells the transport what the flow expects next. The flow
// never formats chat markup itself; keyboards and buttons are the
// transport's business.
type InputKind int

const (
	KindText        InputKind = iota // free text
	KindDecimal                      // decimal price string
	KindInteger                      // whole number string
	KindImageOrSkip                  // image attachment or the word "skip"
	KindConfirm                      // confirm or cancel
)

func (k InputKind) String() string {
	switch k {
	case KindDecimal:
		return "decimal"
	case KindInteger:
		return "integer"
	case KindImageOrSkip:
		return "image_or_skip"
	case KindConfirm:
		return "confirm"
	default:
		return "text"
	}
}

// Outcome is the terminal result of a flow.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSaved
	OutcomeSaveFailed
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeSaveFailed:
		return "save_failed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Input is one inbound message from the conversation.
type Input struct {
	Text        string
	ImageFileID string // set when the message carries an image attachment
	Confirm     bool
	Cancel      bool
}

// Reply is what the flow hands back to the transport: prompt text, the
// kind of input expected next, and a terminal outcome once Done.
type Reply struct {
	Prompt    string
	Expect    InputKind
	Done      bool
	Outcome   Outcome
	ProductID uuid.UUID
}
