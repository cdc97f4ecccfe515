package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/entities"
	"rental-system/internal/repositories"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/types"
)

type fakeEventRepo struct {
	events   map[uint64]*entities.Event
	bookings []*entities.EventBooking
	upcoming []repositories.EventWithEquipment
	nextID   uint64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uint64]*entities.Event), nextID: 1}
}

func (r *fakeEventRepo) add(e entities.Event) *entities.Event {
	if e.ID == 0 {
		e.ID = r.nextID
	}
	if e.ID >= r.nextID {
		r.nextID = e.ID + 1
	}
	r.events[e.ID] = &e
	return r.events[e.ID]
}

func (r *fakeEventRepo) GetEvents(_ context.Context, _ types.Filter) ([]entities.Event, uint64, error) {
	list := make([]entities.Event, 0, len(r.events))
	for id := uint64(1); id < r.nextID; id++ {
		if e, ok := r.events[id]; ok {
			list = append(list, *e)
		}
	}
	return list, uint64(len(list)), nil
}

func (r *fakeEventRepo) FindEvent(_ context.Context, id uint64) (*entities.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEventRepo) CreateEvent(_ context.Context, event *entities.Event) (uint64, error) {
	created := r.add(*event)
	return created.ID, nil
}

func (r *fakeEventRepo) UpdateEvent(_ context.Context, event *entities.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) DeleteEvent(_ context.Context, id uint64) error {
	if _, ok := r.events[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) CreateBookingInTx(_ context.Context, _ pgx.Tx, booking *entities.EventBooking) error {
	r.bookings = append(r.bookings, booking)
	return nil
}

func (r *fakeEventRepo) GetUpcomingEvents(_ context.Context) ([]repositories.EventWithEquipment, error) {
	return r.upcoming, nil
}

type fakeClientRepo struct {
	clients map[uint64]*entities.Client
}

func (r *fakeClientRepo) GetClients(_ context.Context, _ types.Filter) ([]entities.Client, uint64, error) {
	return nil, 0, nil
}

func (r *fakeClientRepo) FindClient(_ context.Context, id uint64) (*entities.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientRepo) CreateClient(_ context.Context, _ *entities.Client) (uint64, error) {
	return 0, nil
}

func (r *fakeClientRepo) UpdateClient(_ context.Context, _ *entities.Client) error { return nil }
func (r *fakeClientRepo) DeleteClient(_ context.Context, _ uint64) error           { return nil }

func newEventServiceForTest(eventRepo *fakeEventRepo, eqRepo *fakeEquipmentRepo, histRepo *fakeHistoryRepo, clientRepo *fakeClientRepo) EventServiceInterface {
	if clientRepo == nil {
		clientRepo = &fakeClientRepo{clients: make(map[uint64]*entities.Client)}
	}
	return NewEventService(&fakeTxManager{}, eventRepo, eqRepo, histRepo, clientRepo, authz.NewGatekeeper(), zap.NewNop())
}

func eventPerms() map[string]bool {
	return map[string]bool{
		authz.EventsCreate: true,
		authz.EventsView:   true,
		authz.EventsUpdate: true,
		authz.EventsDelete: true,
	}
}

func TestAssignEquipmentWritesBookingAndEventUseEntry(t *testing.T) {
	eventRepo := newFakeEventRepo()
	date := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	eventRepo.add(entities.Event{Name: "Свадьба", Date: date, Location: null.StringFrom("Ресторан «Памир»")})

	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Колонка JBL"})

	histRepo := &fakeHistoryRepo{}
	svc := newEventServiceForTest(eventRepo, eqRepo, histRepo, nil)
	ctx := authCtx(4, eventPerms())

	err := svc.AssignEquipment(ctx, 1, dto.AssignEquipmentDTO{EquipmentID: 1})
	require.NoError(t, err)

	require.Len(t, eventRepo.bookings, 1)
	assert.Equal(t, uint64(1), eventRepo.bookings[0].EventID)
	assert.Equal(t, uint64(1), eventRepo.bookings[0].EquipmentID)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, entities.HistoryActionEventUse, entry.Action)
	assert.Equal(t, "Колонка JBL", entry.EquipmentName)
	require.NotNil(t, entry.EventID)
	assert.Equal(t, uint64(1), *entry.EventID)
	assert.Equal(t, "Свадьба", entry.EventName.String)
	require.NotNil(t, entry.EventDate)
	assert.True(t, entry.EventDate.Equal(date))
	assert.Equal(t, "Ресторан «Памир»", entry.EventLocation.String)
}

func TestAssignEquipmentUnknownEventIsNotFound(t *testing.T) {
	svc := newEventServiceForTest(newFakeEventRepo(), newFakeEquipmentRepo(), &fakeHistoryRepo{}, nil)
	ctx := authCtx(4, eventPerms())

	err := svc.AssignEquipment(ctx, 77, dto.AssignEquipmentDTO{EquipmentID: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAssignEquipmentUnknownEquipmentIsNotFound(t *testing.T) {
	eventRepo := newFakeEventRepo()
	eventRepo.add(entities.Event{Name: "Концерт", Date: time.Now()})
	svc := newEventServiceForTest(eventRepo, newFakeEquipmentRepo(), &fakeHistoryRepo{}, nil)
	ctx := authCtx(4, eventPerms())

	err := svc.AssignEquipment(ctx, 1, dto.AssignEquipmentDTO{EquipmentID: 9})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateEventUnknownClientIsNotFound(t *testing.T) {
	clientRepo := &fakeClientRepo{clients: make(map[uint64]*entities.Client)}
	svc := newEventServiceForTest(newFakeEventRepo(), newFakeEquipmentRepo(), &fakeHistoryRepo{}, clientRepo)
	ctx := authCtx(4, eventPerms())

	missing := uint64(5)
	_, err := svc.CreateEvent(ctx, dto.CreateEventDTO{Name: "Юбилей", Date: time.Now(), ClientID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateEventForbiddenWithoutPermission(t *testing.T) {
	svc := newEventServiceForTest(newFakeEventRepo(), newFakeEquipmentRepo(), &fakeHistoryRepo{}, nil)
	ctx := authCtx(4, map[string]bool{authz.EventsView: true})

	_, err := svc.CreateEvent(ctx, dto.CreateEventDTO{Name: "Юбилей", Date: time.Now()})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
