package session

import (
	"context"
	"sync"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// fakeAPI scripts API responses and counts calls. Hooks default to empty
// successes when nil.
type fakeAPI struct {
	mu sync.Mutex

	listCalls int
	listFn    func(opts client.ListConversationsOptions) (*client.ConversationsResponse, error)

	getCalls int
	getFn    func(id string) (*client.ConversationResponse, error)

	createCalls int
	createFn    func(req client.CreateConversationRequest) (*client.CreateConversationResponse, error)

	updateCalls int
	updateErr   error

	deleteCalls     int
	deleteErr       error
	bulkDeleteCalls int

	sendCalls int
	lastSend  client.SendMessageRequest
	sendFn    func(req client.SendMessageRequest) (*client.SendMessageResponse, error)

	editCalls int
	lastEdit  client.EditMessageRequest
	editErr   error

	switchCalls  int
	switchErr    error
	lastSwitched int

	regenCalls int
	regenErr   error

	deleteMsgCalls int
	deleteMsgErr   error
}

func (f *fakeAPI) ListConversations(_ context.Context, opts client.ListConversationsOptions) (*client.ConversationsResponse, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	if fn != nil {
		return fn(opts)
	}
	return &client.ConversationsResponse{
		Envelope:   client.Envelope{Success: true},
		Pagination: types.Pagination{Page: 1, Pages: 1},
	}, nil
}

func (f *fakeAPI) GetConversation(_ context.Context, id string) (*client.ConversationResponse, error) {
	f.mu.Lock()
	f.getCalls++
	fn := f.getFn
	f.mu.Unlock()
	if fn != nil {
		return fn(id)
	}
	return &client.ConversationResponse{
		Envelope:     client.Envelope{Success: true},
		Conversation: &types.Conversation{ID: id},
	}, nil
}

func (f *fakeAPI) CreateConversation(_ context.Context, req client.CreateConversationRequest) (*client.CreateConversationResponse, error) {
	f.mu.Lock()
	f.createCalls++
	fn := f.createFn
	f.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	return &client.CreateConversationResponse{
		Envelope:       client.Envelope{Success: true},
		ConversationID: "new",
	}, nil
}

func (f *fakeAPI) UpdateConversation(_ context.Context, id string, req client.UpdateConversationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	return f.updateErr
}

func (f *fakeAPI) DeleteConversation(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeAPI) DeleteConversations(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkDeleteCalls++
	return f.deleteErr
}

func (f *fakeAPI) SendMessage(_ context.Context, req client.SendMessageRequest) (*client.SendMessageResponse, error) {
	f.mu.Lock()
	f.sendCalls++
	f.lastSend = req
	fn := f.sendFn
	f.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	return &client.SendMessageResponse{
		Envelope:       client.Envelope{Success: true},
		ConversationID: req.ConversationID,
	}, nil
}

func (f *fakeAPI) EditMessage(_ context.Context, messageID string, req client.EditMessageRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editCalls++
	f.lastEdit = req
	return f.editErr
}

func (f *fakeAPI) SwitchMessageVersion(_ context.Context, messageID string, version int, req client.SwitchVersionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.switchCalls++
	f.lastSwitched = version
	return f.switchErr
}

func (f *fakeAPI) RegenerateResponse(_ context.Context, messageID string, req client.RegenerateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regenCalls++
	return f.regenErr
}

func (f *fakeAPI) DeleteMessageAndFollowing(_ context.Context, messageID string, req client.DeleteMessageRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteMsgCalls++
	return f.deleteMsgErr
}

func (f *fakeAPI) counts() (list, get, send int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.getCalls, f.sendCalls
}

// promptAge is a scripted AgePrompter.
type promptAge struct {
	age    int
	ok     bool
	called int
}

func (p *promptAge) PromptAge(context.Context) (int, bool, error) {
	p.called++
	return p.age, p.ok, nil
}

// memoryPrefs records SetAge calls.
type memoryPrefs struct {
	age   int
	calls int
}

func (p *memoryPrefs) SetAge(_ context.Context, age int) error {
	p.age = age
	p.calls++
	return nil
}
