package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/internal/entities"
	"rental-system/internal/infrastructure/bd"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/types"
)

const eventTable = "events"
const eventFields = "id, name, date, location, client_id, created_at, updated_at"

var eventFilterColumns = map[string]string{
	"name":      "name",
	"date":      "date",
	"client_id": "client_id",
}

// EventWithEquipment — мероприятие вместе с именами забронированного
// оборудования, для календарной ленты.
type EventWithEquipment struct {
	entities.Event
	EquipmentNames []string
}

type EventRepositoryInterface interface {
	GetEvents(ctx context.Context, filter types.Filter) ([]entities.Event, uint64, error)
	FindEvent(ctx context.Context, id uint64) (*entities.Event, error)
	CreateEvent(ctx context.Context, event *entities.Event) (uint64, error)
	UpdateEvent(ctx context.Context, event *entities.Event) error
	DeleteEvent(ctx context.Context, id uint64) error
	CreateBookingInTx(ctx context.Context, tx pgx.Tx, booking *entities.EventBooking) error
	GetUpcomingEvents(ctx context.Context) ([]EventWithEquipment, error)
}

type EventRepository struct {
	storage *pgxpool.Pool
}

func NewEventRepository(storage *pgxpool.Pool) EventRepositoryInterface {
	return &EventRepository{storage: storage}
}

func (r *EventRepository) GetEvents(ctx context.Context, filter types.Filter) ([]entities.Event, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(eventFields).From(eventTable)
	builder = bd.ApplySearch(builder, filter.Search, []string{"name", "location"})
	builder = bd.ApplyListParams(builder, filter, eventFilterColumns)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("date ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Event
	for rows.Next() {
		var e entities.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.ClientID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", eventTable)
	if err := r.storage.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *EventRepository) FindEvent(ctx context.Context, id uint64) (*entities.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", eventFields, eventTable)

	var e entities.Event
	err := r.storage.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.ClientID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, event *entities.Event) (uint64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, date, location, client_id) VALUES ($1, $2, $3, $4) RETURNING id", eventTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, event.Name, event.Date, event.Location, event.ClientID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entities.Event) error {
	query := fmt.Sprintf("UPDATE %s SET name = $1, date = $2, location = $3, client_id = $4, updated_at = CURRENT_TIMESTAMP WHERE id = $5", eventTable)

	result, err := r.storage.Exec(ctx, query, event.Name, event.Date, event.Location, event.ClientID, event.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", eventTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EventRepository) CreateBookingInTx(ctx context.Context, tx pgx.Tx, booking *entities.EventBooking) error {
	query := `INSERT INTO event_bookings (event_id, equipment_id) VALUES ($1, $2)`
	_, err := tx.Exec(ctx, query, booking.EventID, booking.EquipmentID)
	return err
}

func (r *EventRepository) GetUpcomingEvents(ctx context.Context) ([]EventWithEquipment, error) {
	query := `
		SELECT e.id, e.name, e.date, e.location, e.client_id, e.created_at, e.updated_at,
		       COALESCE(array_agg(eq.name) FILTER (WHERE eq.id IS NOT NULL), '{}') AS equipment_names
		FROM events e
		LEFT JOIN event_bookings b ON b.event_id = e.id
		LEFT JOIN equipment eq ON eq.id = b.equipment_id
		WHERE e.date >= CURRENT_DATE
		GROUP BY e.id
		ORDER BY e.date ASC
	`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []EventWithEquipment
	for rows.Next() {
		var e EventWithEquipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.ClientID, &e.CreatedAt, &e.UpdatedAt, &e.EquipmentNames); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
