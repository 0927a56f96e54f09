package guided

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/palspantry/pantry-backend/internal/modules/catalog"
	"github.com/palspantry/pantry-backend/internal/modules/owner"
)

const (
	promptName        = "Let's add a new product! First, what is the product's name?"
	promptNameEmpty   = "Product name cannot be empty. Please enter a name, or cancel to exit."
	promptDescEmpty   = "Product description cannot be empty. Please enter a description, or cancel to exit."
	promptPriceBad    = "That doesn't look like a valid price. Please enter a positive number (e.g., 10.99 or 5), or cancel."
	promptQuantityBad = "That doesn't look like a valid quantity. Please enter a whole positive number (e.g., 10), or cancel."
	promptCatEmpty    = "Category name cannot be empty. Please enter a category, or cancel."
	promptImage       = "Almost done. Send a product image, or reply \"skip\" to continue without one."
	promptCancelled   = "Product addition cancelled."
)

// session is the transient buffer of one conversation's flow. It lives
// only until the flow ends and is never visible to another user.
type session struct {
	state State
	draft catalog.Draft
}

// Flow is the guided add-product state machine. Each inbound message is
// handled by a single logical worker per conversation; the mutex only
// guards the session map across conversations.
type Flow struct {
	mu       sync.Mutex
	sessions map[int64]*session

	owners  owner.Service
	catalog catalog.Service
	logger  *zap.Logger
}

// NewFlow creates the guided entry flow on top of the owner registry and
// the product catalog. It consumes nothing else.
func NewFlow(owners owner.Service, cat catalog.Service, logger *zap.Logger) *Flow {
	return &Flow{
		sessions: make(map[int64]*session),
		owners:   owners,
		catalog:  cat,
		logger:   logger,
	}
}

// Start begins a flow for the conversation. Only the registered owner
// may enter; anyone else is rejected before any state exists. Starting
// over discards a previous unfinished buffer.
func (f *Flow) Start(ctx context.Context, userID int64) (Reply, error) {
	isOwner, err := f.owners.IsOwner(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	if !isOwner {
		return Reply{}, ErrNotOwner
	}

	f.mu.Lock()
	f.sessions[userID] = &session{state: StateName}
	f.mu.Unlock()

	f.logger.Info("add-product flow started", zap.Int64("user_id", userID))
	return Reply{Prompt: promptName, Expect: KindText}, nil
}

// stepFunc advances one state given an input. Each entry of the
// transition table returns the reply and mutates the session buffer.
type stepFunc func(f *Flow, ctx context.Context, s *session, in Input) Reply

var transitions = map[State]stepFunc{
	StateName:         stepName,
	StateDescription:  stepDescription,
	StatePrice:        stepPrice,
	StateQuantity:     stepQuantity,
	StateCategory:     stepCategory,
	StateImage:        stepImage,
	StateConfirmation: stepConfirmation,
}

// Handle feeds one message into the conversation's flow. Cancellation is
// honored from every state and discards the buffer without side effects.
func (f *Flow) Handle(ctx context.Context, userID int64, in Input) (Reply, error) {
	f.mu.Lock()
	s, ok := f.sessions[userID]
	f.mu.Unlock()
	if !ok {
		return Reply{}, ErrNoSession
	}

	if in.Cancel {
		f.end(userID)
		f.logger.Info("add-product flow cancelled",
			zap.Int64("user_id", userID), zap.Int("state", int(s.state)))
		return Reply{Prompt: promptCancelled, Done: true, Outcome: OutcomeCancelled}, nil
	}

	reply := transitions[s.state](f, ctx, s, in)
	if reply.Done {
		f.end(userID)
	}
	return reply, nil
}

func (f *Flow) end(userID int64) {
	f.mu.Lock()
	delete(f.sessions, userID)
	f.mu.Unlock()
}

func stepName(f *Flow, ctx context.Context, s *session, in Input) Reply {
	name := strings.TrimSpace(in.Text)
	if name == "" {
		return Reply{Prompt: promptNameEmpty, Expect: KindText}
	}
	s.draft.Name = name
	s.state = StateDescription
	return Reply{
		Prompt: fmt.Sprintf("Great! Product name is %q.\n\nNow, please enter a description for the product.", name),
		Expect: KindText,
	}
}

func stepDescription(f *Flow, ctx context.Context, s *session, in Input) Reply {
	description := strings.TrimSpace(in.Text)
	if description == "" {
		return Reply{Prompt: promptDescEmpty, Expect: KindText}
	}
	s.draft.Description = description
	s.state = StatePrice
	return Reply{
		Prompt: "Description noted.\n\nNow, what's the price for this product? Please enter a number (e.g., 10.99 or 5).",
		Expect: KindDecimal,
	}
}

func stepPrice(f *Flow, ctx context.Context, s *session, in Input) Reply {
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Text), 64)
	if err != nil || !catalog.ValidPrice(price) {
		return Reply{Prompt: promptPriceBad, Expect: KindDecimal}
	}
	s.draft.Price = price
	s.state = StateQuantity
	return Reply{
		Prompt: fmt.Sprintf("Price set to %.2f.\n\nNow, how many units of this product are available? Please enter a whole number (e.g., 10).", price),
		Expect: KindInteger,
	}
}

func stepQuantity(f *Flow, ctx context.Context, s *session, in Input) Reply {
	quantity, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil || quantity <= 0 {
		return Reply{Prompt: promptQuantityBad, Expect: KindInteger}
	}
	s.draft.Quantity = quantity
	s.state = StateCategory
	return Reply{
		Prompt: fmt.Sprintf("Quantity set to %d.\n\nNext, please specify a category for this product.", quantity),
		Expect: KindText,
	}
}

func stepCategory(f *Flow, ctx context.Context, s *session, in Input) Reply {
	category := strings.TrimSpace(in.Text)
	if category == "" {
		return Reply{Prompt: promptCatEmpty, Expect: KindText}
	}
	s.draft.Category = category
	s.state = StateImage
	return Reply{Prompt: promptImage, Expect: KindImageOrSkip}
}

func stepImage(f *Flow, ctx context.Context, s *session, in Input) Reply {
	switch {
	case in.ImageFileID != "":
		s.draft.ImageFileID = in.ImageFileID
	case strings.EqualFold(strings.TrimSpace(in.Text), "skip"):
		// image left unset
	default:
		return Reply{Prompt: promptImage, Expect: KindImageOrSkip}
	}
	s.state = StateConfirmation
	return Reply{Prompt: summarize(s.draft), Expect: KindConfirm}
}

func stepConfirmation(f *Flow, ctx context.Context, s *session, in Input) Reply {
	if !in.Confirm && !strings.EqualFold(strings.TrimSpace(in.Text), "confirm") {
		return Reply{Prompt: summarize(s.draft), Expect: KindConfirm}
	}

	id, err := f.catalog.AddProduct(ctx, s.draft)
	if err != nil {
		f.logger.Error("failed to save product from flow",
			zap.String("name", s.draft.Name), zap.Error(err))
		return Reply{
			Prompt:  fmt.Sprintf("Failed to add product %q. Please try again later.", s.draft.Name),
			Done:    true,
			Outcome: OutcomeSaveFailed,
		}
	}
	return Reply{
		Prompt:    fmt.Sprintf("Product %q (ID: %s) added!", s.draft.Name, id),
		Done:      true,
		Outcome:   OutcomeSaved,
		ProductID: id,
	}
}

func summarize(d catalog.Draft) string {
	image := "none"
	if d.ImageFileID != "" {
		image = "attached"
	}
	return fmt.Sprintf(
		"Okay, let's confirm the details for your new product:\n\n"+
			"Name: %s\nDescription: %s\nPrice: %.2f\nQuantity: %d\nCategory: %s\nImage: %s\n\n"+
			"Is everything correct?",
		d.Name, d.Description, d.Price, d.Quantity, d.Category, image)
}
