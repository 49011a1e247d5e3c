package volunteers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-backend/internal/platform/apierr"
)

type fakeTasks struct {
	tasks       map[string]Task
	toggleCalls int
	insertErr   error
}

func newFakeTasks(ts ...Task) *fakeTasks {
	f := &fakeTasks{tasks: map[string]Task{}}
	for _, t := range ts {
		f.tasks[t.ID] = t
	}
	return f
}

func (f *fakeTasks) List(context.Context) ([]Task, error) {
	out := make([]Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.DueDate.Valid != b.DueDate.Valid {
			return a.DueDate.Valid
		}
		if a.DueDate.String != b.DueDate.String {
			return a.DueDate.String < b.DueDate.String
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (f *fakeTasks) Insert(_ context.Context, t *Task) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.tasks[t.ID] = *t
	return nil
}

func (f *fakeTasks) Toggle(_ context.Context, id string, now time.Time) (bool, error) {
	f.toggleCalls++
	t, ok := f.tasks[id]
	if !ok {
		return false, sql.ErrNoRows
	}
	t.Completed = !t.Completed
	t.UpdatedAt = now
	f.tasks[id] = t
	return t.Completed, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type oneID struct{}

func (oneID) New() string { return "t-new" }

func due(d string) sql.NullString { return sql.NullString{String: d, Valid: true} }

func newSvc(st TaskStore) *Service {
	svc := NewServiceWithStore(st, nil)
	svc.clock = fixedClock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	svc.ids = oneID{}
	return svc
}

func TestList_Ordering(t *testing.T) {
	st := newFakeTasks(
		Task{ID: "done", TaskName: "Sort cans", Completed: true, DueDate: due("2026-01-01")},
		Task{ID: "nodue", TaskName: "Sweep"},
		Task{ID: "late", TaskName: "Stock", DueDate: due("2026-06-10")},
		Task{ID: "soon", TaskName: "Unload", DueDate: due("2026-05-02")},
	)
	res, err := newSvc(st).List(context.Background())
	require.NoError(t, err)

	ids := []string{}
	for _, t := range res.Tasks {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []string{"soon", "late", "nodue", "done"}, ids)
}

func TestToggle_TwiceRestoresState(t *testing.T) {
	st := newFakeTasks(Task{ID: "t1", TaskName: "Unload truck"})
	svc := newSvc(st)
	ctx := context.Background()

	res, err := svc.Toggle(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Task completed!", res.Message)
	require.NotNil(t, res.Task)
	assert.True(t, res.Task.Completed)

	res, err = svc.Toggle(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Task marked as incomplete", res.Message)
	assert.False(t, st.tasks["t1"].Completed)
	assert.Equal(t, 2, st.toggleCalls)
}

func TestToggle_Missing(t *testing.T) {
	_, err := newSvc(newFakeTasks()).Toggle(context.Background(), "nope")
	assert.Equal(t, http.StatusNotFound, apierr.Status(err))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	st := newFakeTasks()
	svc := newSvc(st)

	empty := ""
	d := "2026-05-20"
	res, err := svc.Create(ctx, CreateTaskRequest{TaskName: " Greet ", AssignedTo: &empty, DueDate: &d})
	require.NoError(t, err)
	assert.Equal(t, "Task added successfully!", res.Message)
	assert.Equal(t, "Greet", res.Task.TaskName)
	assert.Nil(t, res.Task.AssignedTo)
	assert.Equal(t, "2026-05-20", *res.Task.DueDate)
	assert.Len(t, res.Tasks, 1)

	bad := "next week"
	_, err = svc.Create(ctx, CreateTaskRequest{TaskName: "x", DueDate: &bad})
	assert.Equal(t, http.StatusBadRequest, apierr.Status(err))

	_, err = svc.Create(ctx, CreateTaskRequest{TaskName: "  "})
	assert.Equal(t, http.StatusBadRequest, apierr.Status(err))

	st.insertErr = errors.New("boom")
	_, err = svc.Create(ctx, CreateTaskRequest{TaskName: "x"})
	assert.Equal(t, "Failed to add task", apierr.Body(err).Error.Message)
}
