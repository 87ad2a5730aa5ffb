package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
)

// DateLayout is the stored form of reminder dates.
const DateLayout = "2006-01-02"

// ErrNotFound is returned when the reminder id does not exist.
var ErrNotFound = errors.New("reminder: not found")

// Querier is the subset of generated queries used for reminders.
type Querier interface {
	CreateReminder(ctx context.Context, arg dbgen.CreateReminderParams) (dbgen.Reminder, error)
	GetReminder(ctx context.Context, id int64) (dbgen.Reminder, error)
	ListReminders(ctx context.Context) ([]dbgen.Reminder, error)
	UpdateReminder(ctx context.Context, arg dbgen.UpdateReminderParams) (dbgen.Reminder, error)
	DeleteReminder(ctx context.Context, id int64) (int64, error)
}

// Reminder is a dated note, optionally tied to a customer.
type Reminder struct {
	ID         int64  `json:"id"`
	CustomerID *int64 `json:"customer_id"`
	Date       string `json:"reminder_date,omitempty"`
	Note       string `json:"note,omitempty"`
}

// Input carries the editable reminder fields. Date accepts any common layout.
type Input struct {
	CustomerID *int64 `json:"customer_id" validate:"omitempty,gt=0"`
	Date       string `json:"reminder_date" validate:"max=64"`
	Note       string `json:"note" validate:"max=2000"`
}

type Service struct {
	queries Querier
}

func NewService(q Querier) (*Service, error) {
	if q == nil {
		return nil, errors.New("reminder: queries provider is required")
	}
	return &Service{queries: q}, nil
}

func (s *Service) List(ctx context.Context) ([]Reminder, error) {
	rows, err := s.queries.ListReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	out := make([]Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, toReminder(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Reminder, error) {
	row, err := s.queries.GetReminder(ctx, id)
	if err != nil {
		return Reminder{}, mapError(err)
	}
	return toReminder(row), nil
}

func (s *Service) Create(ctx context.Context, in Input) (Reminder, error) {
	date, err := NormalizeDate(in.Date)
	if err != nil {
		return Reminder{}, err
	}
	row, err := s.queries.CreateReminder(ctx, dbgen.CreateReminderParams{
		CustomerID:   common.Int8(in.CustomerID),
		ReminderDate: common.Text(date),
		Note:         common.Text(in.Note),
	})
	if err != nil {
		return Reminder{}, fmt.Errorf("create reminder: %w", err)
	}
	return toReminder(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Reminder, error) {
	date, err := NormalizeDate(in.Date)
	if err != nil {
		return Reminder{}, err
	}
	row, err := s.queries.UpdateReminder(ctx, dbgen.UpdateReminderParams{
		ID:           id,
		CustomerID:   common.Int8(in.CustomerID),
		ReminderDate: common.Text(date),
		Note:         common.Text(in.Note),
	})
	if err != nil {
		return Reminder{}, mapError(err)
	}
	return toReminder(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteReminder(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if n == 0 {
		return common.NotFound("reminder not found", ErrNotFound)
	}
	return nil
}

// NormalizeDate parses raw in any layout dateparse understands and renders it
// as YYYY-MM-DD. Blank input stays blank.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		appErr := common.Validation("reminder_date", "reminder_date is not a recognised date")
		appErr.Err = err
		return "", appErr
	}
	return t.Format(DateLayout), nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NotFound("reminder not found", ErrNotFound)
	}
	return fmt.Errorf("reminder query: %w", err)
}

func toReminder(row dbgen.Reminder) Reminder {
	return Reminder{
		ID:         row.ID,
		CustomerID: common.Int8Value(row.CustomerID),
		Date:       common.TextValue(row.ReminderDate),
		Note:       common.TextValue(row.Note),
	}
}
