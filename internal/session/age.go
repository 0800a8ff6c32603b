package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// AgePrompter asks the user for an age-context interactively. ok is false
// when the prompt was dismissed without a value.
type AgePrompter interface {
	PromptAge(ctx context.Context) (age int, ok bool, err error)
}

// AgePersister stores the user's age preference durably. Satisfied by the
// local preference store.
type AgePersister interface {
	SetAge(ctx context.Context, age int) error
}

// AgeResolver produces the age-context every chat request requires.
// Resolution order: the active conversation's own age-context, then the
// stored preference, then an interactive prompt whose answer becomes the new
// preference. A dismissed prompt aborts the calling operation cleanly.
type AgeResolver struct {
	store    *Store
	prefs    AgePersister
	prompter AgePrompter
	log      zerolog.Logger
}

// NewAgeResolver builds a resolver. prefs and prompter may be nil: without a
// prompter, resolution failing both passive sources returns ErrAgeRequired.
func NewAgeResolver(store *Store, prefs AgePersister, prompter AgePrompter, log zerolog.Logger) *AgeResolver {
	return &AgeResolver{store: store, prefs: prefs, prompter: prompter, log: log}
}

// TryResolve resolves from the passive sources only: the active
// conversation's age-context, then the stored preference. The UI consults
// this to know whether a send will need a prompt.
func (r *AgeResolver) TryResolve() (int, bool) {
	state := r.store.Snapshot()
	if conv := state.ActiveConversation; conv != nil && types.ValidAge(conv.AgeContext) {
		return conv.AgeContext, true
	}
	if types.ValidAge(state.AgePreference) {
		return state.AgePreference, true
	}
	return 0, false
}

// Resolve returns the age-context for the next chat request, prompting if
// neither the active conversation nor the stored preference supplies one.
func (r *AgeResolver) Resolve(ctx context.Context) (int, error) {
	if age, ok := r.TryResolve(); ok {
		return age, nil
	}
	if r.prompter == nil {
		return 0, ErrAgeRequired
	}
	age, ok, err := r.prompter.PromptAge(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrAgeRequired
	}
	if !types.ValidAge(age) {
		return 0, ErrAgeOutOfRange
	}
	if err := r.SetPreference(ctx, age); err != nil {
		return 0, err
	}
	return age, nil
}

// SetPreference validates, persists, and publishes a new age preference.
func (r *AgeResolver) SetPreference(ctx context.Context, age int) error {
	if !types.ValidAge(age) {
		return ErrAgeOutOfRange
	}
	if r.prefs != nil {
		if err := r.prefs.SetAge(ctx, age); err != nil {
			r.log.Warn().Err(err).Int("age", age).Msg("persisting age preference failed")
			return err
		}
	}
	r.store.SetAgePreference(age)
	return nil
}

// CanEditAge reports whether the conversation's age-context may still be
// changed. Once a conversation holds messages the context is frozen, so
// already-generated answers keep the context they were produced under.
func (r *AgeResolver) CanEditAge(conv *types.Conversation) bool {
	if conv == nil {
		return true
	}
	return len(conv.Messages) == 0 && conv.MessageCount == 0
}
