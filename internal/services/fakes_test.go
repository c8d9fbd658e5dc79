package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
)

// memDB backs the in-memory repository fakes; each fake is a view over the same data.
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	plans    map[int64]models.Plan
	phases   map[int64]models.Phase
	tasks    map[int64]models.Task
	logs     map[int64]models.TimeLog
	comments map[int64]models.Comment
	contacts map[int64]models.Contact
	settings map[string][]byte
	admins   map[int64]models.Admin
}

func newMemDB() *memDB {
	return &memDB{
		plans:    map[int64]models.Plan{},
		phases:   map[int64]models.Phase{},
		tasks:    map[int64]models.Task{},
		logs:     map[int64]models.TimeLog{},
		comments: map[int64]models.Comment{},
		contacts: map[int64]models.Contact{},
		settings: map[string][]byte{},
		admins:   map[int64]models.Admin{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakePlans struct{ db *memDB }

func (f fakePlans) Store(_ context.Context, p *models.Plan) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p.ID = f.db.id()
	f.db.plans[p.ID] = *p
	return nil
}

func (f fakePlans) FindByID(_ context.Context, id int64) (*models.Plan, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.plans[id]
	if !ok {
		return nil, apperr.NotFound("plan", id)
	}
	return &p, nil
}

func (f fakePlans) FindAll(_ context.Context, status *models.PlanStatus) ([]models.Plan, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Plan{}
	for _, id := range sortedIDs(f.db.plans) {
		p := f.db.plans[id]
		if status == nil || p.Status == *status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f fakePlans) Update(_ context.Context, p *models.Plan) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.plans[p.ID]; !ok {
		return apperr.NotFound("plan", p.ID)
	}
	f.db.plans[p.ID] = *p
	return nil
}

func (f fakePlans) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.plans[id]; !ok {
		return apperr.NotFound("plan", id)
	}
	delete(f.db.plans, id)
	return nil
}

type fakePhases struct {
	db        *memDB
	deleteErr error
}

func (f fakePhases) Store(_ context.Context, p *models.Phase) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p.ID = f.db.id()
	f.db.phases[p.ID] = *p
	return nil
}

func (f fakePhases) FindByID(_ context.Context, id int64) (*models.Phase, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.phases[id]
	if !ok {
		return nil, apperr.NotFound("phase", id)
	}
	return &p, nil
}

func (f fakePhases) ListByPlan(_ context.Context, planID int64) ([]models.Phase, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Phase{}
	for _, id := range sortedIDs(f.db.phases) {
		if p := f.db.phases[id]; p.PlanID == planID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f fakePhases) Update(_ context.Context, p *models.Phase) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.phases[p.ID]; !ok {
		return apperr.NotFound("phase", p.ID)
	}
	f.db.phases[p.ID] = *p
	return nil
}

func (f fakePhases) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.phases[id]; !ok {
		return apperr.NotFound("phase", id)
	}
	delete(f.db.phases, id)
	return nil
}

func (f fakePhases) DeleteByPlan(_ context.Context, planID int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for id, p := range f.db.phases {
		if p.PlanID == planID {
			delete(f.db.phases, id)
			n++
		}
	}
	return n, nil
}

type fakeTasks struct{ db *memDB }

func (f fakeTasks) Store(_ context.Context, t *models.Task) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t.ID = f.db.id()
	f.db.tasks[t.ID] = *t
	return nil
}

func (f fakeTasks) FindByID(_ context.Context, id int64) (*models.Task, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t, ok := f.db.tasks[id]
	if !ok {
		return nil, apperr.NotFound("task", id)
	}
	return &t, nil
}

func (f fakeTasks) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Task{}
	for _, id := range sortedIDs(f.db.tasks) {
		t := f.db.tasks[id]
		if filter.PlanID != nil && t.PlanID != *filter.PlanID {
			continue
		}
		if filter.PhaseID != nil && (t.PhaseID == nil || *t.PhaseID != *filter.PhaseID) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f fakeTasks) Update(_ context.Context, t *models.Task) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored, ok := f.db.tasks[t.ID]
	if !ok {
		return apperr.NotFound("task", t.ID)
	}
	updated := *t
	updated.TotalTimeSpent = stored.TotalTimeSpent
	f.db.tasks[t.ID] = updated
	return nil
}

func (f fakeTasks) SetTotalTimeSpent(_ context.Context, id, seconds int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t, ok := f.db.tasks[id]
	if !ok {
		return apperr.NotFound("task", id)
	}
	t.TotalTimeSpent = seconds
	f.db.tasks[id] = t
	return nil
}

func (f fakeTasks) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.tasks[id]; !ok {
		return apperr.NotFound("task", id)
	}
	delete(f.db.tasks, id)
	return nil
}

func (f fakeTasks) ListIDsByPlan(_ context.Context, planID int64) ([]int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	ids := []int64{}
	for _, id := range sortedIDs(f.db.tasks) {
		if f.db.tasks[id].PlanID == planID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f fakeTasks) DeleteByPlan(_ context.Context, planID int64) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for id, t := range f.db.tasks {
		if t.PlanID == planID {
			delete(f.db.tasks, id)
			n++
		}
	}
	return n, nil
}

func (f fakeTasks) ClearPhase(_ context.Context, phaseID int64) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for id, t := range f.db.tasks {
		if t.PhaseID != nil && *t.PhaseID == phaseID {
			t.PhaseID = nil
			f.db.tasks[id] = t
			n++
		}
	}
	return n, nil
}

type fakeTimeLogs struct{ db *memDB }

func (f fakeTimeLogs) StartActive(_ context.Context, taskID int64, start time.Time) (*models.TimeLog, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, l := range f.db.logs {
		if l.TaskID == taskID && l.IsActive {
			return nil, fmt.Errorf("%w: timer already running", apperr.ErrConflict)
		}
	}
	l := models.TimeLog{ID: f.db.id(), TaskID: taskID, StartTime: start, IsActive: true}
	f.db.logs[l.ID] = l
	return &l, nil
}

func (f fakeTimeLogs) FindActive(_ context.Context, taskID int64) (*models.TimeLog, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, l := range f.db.logs {
		if l.TaskID == taskID && l.IsActive {
			return &l, nil
		}
	}
	return nil, nil
}

func (f fakeTimeLogs) StopActive(_ context.Context, taskID int64, end time.Time) (*models.TimeLog, int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for id, l := range f.db.logs {
		if l.TaskID != taskID || !l.IsActive {
			continue
		}
		e := end
		l.EndTime = &e
		l.IsActive = false
		l.Duration = models.ElapsedSeconds(l.StartTime, end)
		f.db.logs[id] = l

		t := f.db.tasks[taskID]
		t.TotalTimeSpent += l.Duration
		f.db.tasks[taskID] = t
		return &l, t.TotalTimeSpent, nil
	}
	return nil, 0, fmt.Errorf("%w: no active timer for task %d", apperr.ErrNotFound, taskID)
}

func (f fakeTimeLogs) ListByTask(_ context.Context, taskID int64) ([]models.TimeLog, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.TimeLog{}
	ids := sortedIDs(f.db.logs)
	for i := len(ids) - 1; i >= 0; i-- {
		if l := f.db.logs[ids[i]]; l.TaskID == taskID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f fakeTimeLogs) ListByTasks(_ context.Context, taskIDs []int64) ([]models.TimeLog, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.TimeLog{}
	for _, id := range sortedIDs(f.db.logs) {
		if l := f.db.logs[id]; containsID(taskIDs, l.TaskID) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f fakeTimeLogs) DeleteByTasks(_ context.Context, taskIDs []int64) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for id, l := range f.db.logs {
		if containsID(taskIDs, l.TaskID) {
			delete(f.db.logs, id)
			n++
		}
	}
	return n, nil
}

type fakeComments struct{ db *memDB }

func (f fakeComments) Store(_ context.Context, c *models.Comment) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c.ID = f.db.id()
	f.db.comments[c.ID] = *c
	return nil
}

func (f fakeComments) FindByID(_ context.Context, id int64) (*models.Comment, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.comments[id]
	if !ok {
		return nil, apperr.NotFound("comment", id)
	}
	return &c, nil
}

func (f fakeComments) ListByTask(_ context.Context, taskID int64) ([]models.Comment, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Comment{}
	for _, id := range sortedIDs(f.db.comments) {
		if c := f.db.comments[id]; c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeComments) Update(_ context.Context, c *models.Comment) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.comments[c.ID]; !ok {
		return apperr.NotFound("comment", c.ID)
	}
	f.db.comments[c.ID] = *c
	return nil
}

func (f fakeComments) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.comments[id]; !ok {
		return apperr.NotFound("comment", id)
	}
	delete(f.db.comments, id)
	return nil
}

func (f fakeComments) DeleteByTasks(_ context.Context, taskIDs []int64) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for id, c := range f.db.comments {
		if containsID(taskIDs, c.TaskID) {
			delete(f.db.comments, id)
			n++
		}
	}
	return n, nil
}

type fakeContacts struct{ db *memDB }

func (f fakeContacts) Create(_ context.Context, c *models.Contact) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c.ID = f.db.id()
	f.db.contacts[c.ID] = *c
	return nil
}

func (f fakeContacts) GetByID(_ context.Context, id int64) (*models.Contact, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.contacts[id]
	if !ok {
		return nil, apperr.NotFound("contact", id)
	}
	return &c, nil
}

func (f fakeContacts) List(_ context.Context) ([]models.Contact, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Contact{}
	for _, id := range sortedIDs(f.db.contacts) {
		out = append(out, f.db.contacts[id])
	}
	return out, nil
}

func (f fakeContacts) SetReply(_ context.Context, id int64, reply string, at time.Time) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.contacts[id]
	if !ok {
		return apperr.NotFound("contact", id)
	}
	c.Status = models.ContactReplied
	c.Reply = &reply
	c.ReplyDate = &at
	f.db.contacts[id] = c
	return nil
}

func (f fakeContacts) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.contacts[id]; !ok {
		return apperr.NotFound("contact", id)
	}
	delete(f.db.contacts, id)
	return nil
}

type fakeSettings struct{ db *memDB }

func (f fakeSettings) Get(_ context.Context, key string, dst any) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	raw, ok := f.db.settings[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (f fakeSettings) Put(_ context.Context, key string, doc any, _ time.Time) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.settings[key] = raw
	return nil
}

type fakeAdmins struct{ db *memDB }

func (f fakeAdmins) Create(_ context.Context, a *models.Admin) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, existing := range f.db.admins {
		if existing.Username == a.Username {
			return fmt.Errorf("%w: admin %q already exists", apperr.ErrConflict, a.Username)
		}
	}
	a.ID = f.db.id()
	f.db.admins[a.ID] = *a
	return nil
}

func (f fakeAdmins) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, a := range f.db.admins {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("%w: admin", apperr.ErrNotFound)
}

func (f fakeAdmins) GetByID(_ context.Context, id int64) (*models.Admin, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	a, ok := f.db.admins[id]
	if !ok {
		return nil, fmt.Errorf("%w: admin", apperr.ErrNotFound)
	}
	return &a, nil
}

func (f fakeAdmins) Upsert(_ context.Context, username, hash string) (*models.Admin, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for id, a := range f.db.admins {
		if a.Username == username {
			a.PasswordHash = hash
			f.db.admins[id] = a
			return &a, nil
		}
	}
	a := models.Admin{ID: f.db.id(), Username: username, PasswordHash: hash}
	f.db.admins[a.ID] = a
	return &a, nil
}

// fixedClock returns a clock that can be moved forward by the test.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time {
	return c.t
}

func (c *fixedClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func ptr[T any](v T) *T { return &v }
