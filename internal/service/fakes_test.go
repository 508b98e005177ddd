package service

import (
	"context"
	"fmt"
	"sync"

	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/repository/specification"
	"tsai-chat-be/internal/repository/unitofwork"
	"tsai-chat-be/pkg/embedding"

	"github.com/google/uuid"
)

// In-memory doubles for the persistence and provider boundaries. The session
// fakes interpret the same specifications the gorm implementations do, so
// services run unchanged against them.

type fakeUow struct {
	sessions  *fakeSessionRepo
	messages  *fakeMessageRepo
	knowledge *fakeKnowledgeRepo
	files     *fakeUploadFileRepo
	users     *fakeUserRepo
	invites   *fakeInviteRepo
}

func newFakeUow() *fakeUow {
	sessions := &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{}}
	return &fakeUow{
		sessions:  sessions,
		messages:  &fakeMessageRepo{},
		knowledge: &fakeKnowledgeRepo{sessions: sessions},
		files:     &fakeUploadFileRepo{},
		users:     &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		invites:   &fakeInviteRepo{invites: map[uuid.UUID]*entity.InviteCode{}},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository             { return u.users }
func (u *fakeUow) InviteCodeRepository() contract.InviteCodeRepository { return u.invites }
func (u *fakeUow) SessionRepository() contract.SessionRepository       { return u.sessions }
func (u *fakeUow) MessageRepository() contract.MessageRepository       { return u.messages }
func (u *fakeUow) KnowledgeRepository() contract.KnowledgeRepository   { return u.knowledge }
func (u *fakeUow) UploadFileRepository() contract.UploadFileRepository { return u.files }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- sessions ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Id] = session
	return nil
}

func matchSession(s *entity.Session, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != v.UserID {
				return false
			}
		case specification.VisibleOnly:
			if !s.IsVisible() {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if matchSession(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Session
	for _, s := range r.sessions {
		if matchSession(s, specs) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return ok && s.IsVisible(), nil
}

func (r *fakeSessionRepo) UpdateName(ctx context.Context, id uuid.UUID, userId uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok && s.UserId == userId {
		s.Name = &name
	}
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// --- messages ---

type fakeMessageRepo struct {
	mu     sync.Mutex
	nextId int64
	msgs   []*entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	message.Id = r.nextId
	clone := *message
	r.msgs = append(r.msgs, &clone)
	return nil
}

func (r *fakeMessageRepo) FindRecentBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for i := len(r.msgs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.msgs[i].SessionId == sessionId {
			out = append(out, r.msgs[i])
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.Message
	for _, m := range r.msgs {
		if m.SessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.msgs = kept
	return nil
}

// --- knowledge ---

type fakeKnowledgeRepo struct {
	mu        sync.Mutex
	sessions  *fakeSessionRepo
	nextId    int64
	passages  []*entity.KnowledgePassage
	createErr error
}

func (r *fakeKnowledgeRepo) Create(ctx context.Context, passage *entity.KnowledgePassage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.sessions.mu.Lock()
	_, ok := r.sessions.sessions[passage.SessionId]
	r.sessions.mu.Unlock()
	if !ok {
		return contract.ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	passage.Id = r.nextId
	clone := *passage
	r.passages = append(r.passages, &clone)
	return nil
}

func (r *fakeKnowledgeRepo) SearchSimilar(ctx context.Context, sessionId uuid.UUID, emb []float32, limit int) ([]*entity.KnowledgePassage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.KnowledgePassage
	for _, p := range r.passages {
		if p.SessionId == sessionId && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeKnowledgeRepo) CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.passages {
		if p.SessionId == sessionId {
			n++
		}
	}
	return n, nil
}

func (r *fakeKnowledgeRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.KnowledgePassage
	for _, p := range r.passages {
		if p.SessionId != sessionId {
			kept = append(kept, p)
		}
	}
	r.passages = kept
	return nil
}

// --- upload files ---

type fakeUploadFileRepo struct {
	mu     sync.Mutex
	nextId int64
	files  []*entity.UploadFile
}

func (r *fakeUploadFileRepo) Create(ctx context.Context, file *entity.UploadFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	file.Id = r.nextId
	clone := *file
	r.files = append(r.files, &clone)
	return nil
}

func (r *fakeUploadFileRepo) ExistsByFilename(ctx context.Context, sessionId uuid.UUID, filename string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.SessionId == sessionId && f.Filename == filename {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUploadFileRepo) FindAllBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.UploadFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UploadFile
	for i := len(r.files) - 1; i >= 0 && len(out) < limit; i-- {
		if r.files[i].SessionId == sessionId {
			out = append(out, r.files[i])
		}
	}
	return out, nil
}

func (r *fakeUploadFileRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.UploadFile
	for _, f := range r.files {
		if f.SessionId != sessionId {
			kept = append(kept, f)
		}
	}
	r.files = kept
	return nil
}

// --- users & invites ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

type fakeInviteRepo struct {
	mu      sync.Mutex
	invites map[uuid.UUID]*entity.InviteCode
}

func (r *fakeInviteRepo) Create(ctx context.Context, code *entity.InviteCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invites[code.Code] = code
	return nil
}

func (r *fakeInviteRepo) FindUnused(ctx context.Context, code uuid.UUID) (*entity.InviteCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invite, ok := r.invites[code]
	if !ok || invite.UsedBy != nil {
		return nil, nil
	}
	return invite, nil
}

func (r *fakeInviteRepo) MarkUsed(ctx context.Context, code uuid.UUID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if invite, ok := r.invites[code]; ok {
		invite.UsedBy = &username
	}
	return nil
}

// --- providers ---

type fakeEmbedder struct {
	mu         sync.Mutex
	calls      int
	failOnCall int // 1-based call index to fail on, 0 = never
	failAll    bool
	tasks      []string
}

func (e *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.tasks = append(e.tasks, taskType)
	if e.failAll || (e.failOnCall > 0 && e.calls == e.failOnCall) {
		return nil, fmt.Errorf("embedding backend unavailable")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: []float32{0.1, 0.2, 0.3},
		},
	}, nil
}

type fakeSearch struct {
	digest string
	err    error
}

func (s *fakeSearch) Search(ctx context.Context, query string) (string, error) {
	return s.digest, s.err
}

type fakeChat struct {
	answer    string
	err       error
	gotPrompt string
}

func (c *fakeChat) Generate(ctx context.Context, prompt string) (string, error) {
	c.gotPrompt = prompt
	if c.err != nil {
		return "", c.err
	}
	return c.answer, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}
