package application

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
	"github.com/rishusinha26/portfolio-backend/pkg/mailer"
)

func quietLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

// memMessages is an in-memory MessageRepository with optional failure hooks.
type memMessages struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]entity.Message
	events []string

	createErr       error
	updateStatusErr error
	statusCtxErr    error
}

func newMemMessages() *memMessages { return &memMessages{byID: map[string]entity.Message{}} }

func (r *memMessages) record(ev string) {
	r.events = append(r.events, ev)
}

func (r *memMessages) Create(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("create")
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	m.ID = "m" + strconv.Itoa(r.seq)
	r.byID[m.ID] = *m
	return nil
}

func (r *memMessages) List(context.Context) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Message, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memMessages) UpdateStatus(ctx context.Context, id string, status entity.MessageStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("status:" + string(status))
	r.statusCtxErr = ctx.Err()
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	m, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.Status = status
	r.byID[id] = m
	return nil
}

func (r *memMessages) MarkRead(_ context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.Read = true
	r.byID[id] = m
	return &m, nil
}

func (r *memMessages) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memMessages) get(id string) entity.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

func (r *memMessages) log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// fakeNotifier delegates to func fields and records call order into repo events.
type fakeNotifier struct {
	repo         *memMessages
	operatorFn   func(ctx context.Context, m entity.Message) error
	confirmFn    func(ctx context.Context, m entity.Message) error
	operatorMeta RequestMeta
}

func (n *fakeNotifier) NotifyOperator(ctx context.Context, m entity.Message, meta RequestMeta) error {
	n.repo.mu.Lock()
	n.repo.record("notify:operator")
	n.operatorMeta = meta
	n.repo.mu.Unlock()
	if n.operatorFn != nil {
		return n.operatorFn(ctx, m)
	}
	return nil
}

func (n *fakeNotifier) ConfirmSubmitter(ctx context.Context, m entity.Message) error {
	n.repo.mu.Lock()
	n.repo.record("notify:confirmation")
	n.repo.mu.Unlock()
	if n.confirmFn != nil {
		return n.confirmFn(ctx, m)
	}
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, body)
	return p.err
}

// fakeSender captures outgoing emails.
type fakeSender struct {
	mu     sync.Mutex
	emails []mailer.Email
	err    error
}

func (s *fakeSender) Send(_ context.Context, e mailer.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, e)
	return s.err
}

func (s *fakeSender) Provider() string { return "fake" }

// memUsers is an in-memory UserRepository.
type memUsers struct {
	byID      map[string]*entity.User
	seq       int
	getErr    error
	createErr error
	touched   []time.Time
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	u.ID = "u" + strconv.Itoa(r.seq)
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUsers) GetBySubject(_ context.Context, subject string) (*entity.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.byID {
		if u.SubjectID == subject {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsers) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLogin = at
	r.touched = append(r.touched, at)
	return nil
}

func (r *memUsers) UpdateRole(_ context.Context, id string, role entity.Role) error {
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

// memProjects is an in-memory ProjectRepository.
type memProjects struct {
	byID map[string]entity.Project
	seq  int
	err  error
}

func newMemProjects() *memProjects { return &memProjects{byID: map[string]entity.Project{}} }

func (r *memProjects) List(context.Context) ([]entity.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]entity.Project, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *memProjects) Get(_ context.Context, id string) (*entity.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *memProjects) Create(_ context.Context, p *entity.Project) error {
	if r.err != nil {
		return r.err
	}
	r.seq++
	p.ID = "p" + strconv.Itoa(r.seq)
	r.byID[p.ID] = *p
	return nil
}

func (r *memProjects) Update(_ context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&p)
	r.byID[id] = p
	return &p, nil
}

func (r *memProjects) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memProjects) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.byID))
	r.byID = map[string]entity.Project{}
	return n, nil
}

// memExperiences is an in-memory ExperienceRepository.
type memExperiences struct {
	byID map[string]entity.Experience
	seq  int
}

func newMemExperiences() *memExperiences {
	return &memExperiences{byID: map[string]entity.Experience{}}
}

func (r *memExperiences) List(_ context.Context, f entity.ExperienceFilter) ([]entity.Experience, error) {
	out := []entity.Experience{}
	for _, e := range r.byID {
		if f.Type == "" || e.Type == f.Type {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *memExperiences) Get(_ context.Context, id string) (*entity.Experience, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *memExperiences) Create(_ context.Context, e *entity.Experience) error {
	r.seq++
	e.ID = "e" + strconv.Itoa(r.seq)
	r.byID[e.ID] = *e
	return nil
}

func (r *memExperiences) Update(_ context.Context, id string, patch entity.ExperiencePatch) (*entity.Experience, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&e)
	r.byID[id] = e
	return &e, nil
}

func (r *memExperiences) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memExperiences) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.byID))
	r.byID = map[string]entity.Experience{}
	return n, nil
}

// fakeIndex is a ProjectIndex with func fields.
type fakeIndex struct {
	putFn    func(p *entity.Project) error
	removeFn func(id string) error
	searchFn func(q string) ([]string, error)
	puts     []string
}

func (x *fakeIndex) Put(_ context.Context, p *entity.Project) error {
	x.puts = append(x.puts, p.ID)
	if x.putFn != nil {
		return x.putFn(p)
	}
	return nil
}

func (x *fakeIndex) Remove(_ context.Context, id string) error {
	if x.removeFn != nil {
		return x.removeFn(id)
	}
	return nil
}

func (x *fakeIndex) Search(_ context.Context, q string, _ int) ([]string, error) {
	if x.searchFn != nil {
		return x.searchFn(q)
	}
	return nil, nil
}

// fakeStore is an ObjectStore keeping object bodies in memory.
type fakeStore struct {
	objects map[string]string
	err     error
}

func (s *fakeStore) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, _ := io.ReadAll(r)
	if s.objects == nil {
		s.objects = map[string]string{}
	}
	s.objects[name] = string(b)
	return "https://storage.example/" + name, nil
}

func (s *fakeStore) Delete(_ context.Context, name string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.objects, name)
	return nil
}
