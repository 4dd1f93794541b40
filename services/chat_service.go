package services

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// ChatService runs one chat turn end to end: resolve the conversation,
// compose the user message, call the completion provider, then persist both
// new turns in a single save. A failed turn writes nothing, so a reader
// never observes a user message without its assistant reply.
type ChatService struct {
	store     ConversationStore
	composer  *MessageComposer
	completer Completer
	newID     func() string
}

type TurnResult struct {
	Reply          string
	ConversationID string
}

func NewChatService(store ConversationStore, composer *MessageComposer, completer Completer) *ChatService {
	return &ChatService{
		store:     store,
		composer:  composer,
		completer: completer,
		newID:     uuid.NewString,
	}
}

// SetIDGenerator overrides how fresh conversation identifiers are minted.
func (s *ChatService) SetIDGenerator(newID func() string) {
	s.newID = newID
}

// HandleTurn processes one user turn. conversationID, text and imageRef may
// each be empty; text and imageRef must not both be.
//
// The read-modify-write against the store is not serialized per id: two
// concurrent turns on the same conversation are last-writer-wins.
func (s *ChatService) HandleTurn(ctx context.Context, conversationID, text, imageRef string) (TurnResult, error) {
	id, history, err := s.store.Resolve(ctx, conversationID)
	if err != nil {
		return TurnResult{}, err
	}

	userTurn, err := s.composer.ComposeUserTurn(text, imageRef)
	if err != nil {
		return TurnResult{}, err
	}
	working := append(history, userTurn)

	reply, err := s.completer.Complete(ctx, working)
	if err != nil {
		return TurnResult{}, err
	}
	working = append(working, reply)

	// The id is minted only once a reply exists.
	if id == "" {
		id = s.newID()
		log.Printf("Started conversation %s", id)
	}
	if err := s.store.Save(ctx, id, working); err != nil {
		return TurnResult{}, err
	}

	return TurnResult{Reply: reply.Text(), ConversationID: id}, nil
}
