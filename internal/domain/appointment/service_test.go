package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Appointment
	order []uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.items[a.ID] = a
	m.order = append(m.order, a.ID)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.items[a.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.items[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	all, _ := m.All(nil)
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *mockRepo) All(_ context.Context) ([]*Appointment, error) {
	result := make([]*Appointment, 0, len(m.items))
	for _, id := range m.order {
		if a, ok := m.items[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockRepo) Stats(_ context.Context) (*Stats, error) {
	now := time.Now()
	s := &Stats{}
	for _, a := range m.items {
		s.Total++
		if !a.ScheduledAt.Before(now) {
			s.Upcoming++
		}
	}
	return s, nil
}

func (m *mockRepo) Replace(_ context.Context, items []*Appointment) error {
	m.items = make(map[uuid.UUID]*Appointment)
	m.order = nil
	for _, a := range items {
		a.ID = uuid.New()
		m.items[a.ID] = a
		m.order = append(m.order, a.ID)
	}
	return nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService()
	cases := []struct {
		name string
		a    *Appointment
	}{
		{"missing title", &Appointment{Doctor: "Dr. Lee", ScheduledAt: time.Now()}},
		{"missing doctor", &Appointment{Title: "Checkup", ScheduledAt: time.Now()}},
		{"missing scheduled_at", &Appointment{Title: "Checkup", Doctor: "Dr. Lee"}},
	}
	for _, tc := range cases {
		if err := svc.Create(context.Background(), tc.a); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestService_Create_OptionalFieldsNil(t *testing.T) {
	svc := newTestService()
	a := &Appointment{Title: "Checkup", Doctor: "Dr. Lee", ScheduledAt: time.Now().Add(24 * time.Hour)}
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Location != nil || a.Notes != nil {
		t.Error("expected optional fields to stay nil")
	}
}

func TestService_Stats(t *testing.T) {
	svc := newTestService()
	svc.Create(context.Background(), &Appointment{Title: "Past", Doctor: "Dr. Lee", ScheduledAt: time.Now().Add(-24 * time.Hour)})
	svc.Create(context.Background(), &Appointment{Title: "Future", Doctor: "Dr. Lee", ScheduledAt: time.Now().Add(24 * time.Hour)})

	s, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Total != 2 || s.Upcoming != 1 {
		t.Errorf("expected total=2 upcoming=1, got %+v", s)
	}
}

func TestService_Import_Replaces(t *testing.T) {
	svc := newTestService()
	svc.Create(context.Background(), &Appointment{Title: "Old", Doctor: "Dr. Lee", ScheduledAt: time.Now()})

	err := svc.Import(context.Background(), []*Appointment{
		{Title: "New", Doctor: "Dr. Chen", ScheduledAt: time.Now().Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, _ := svc.Export(context.Background())
	if len(all) != 1 || all[0].Title != "New" {
		t.Errorf("unexpected rows after import: %+v", all)
	}
}
