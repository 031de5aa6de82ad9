package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"talentflow/internal/infrastructure/directory"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

// The fixed daily slot grid: a morning block and an afternoon block of
// half-hour slots. Only weekdays are offerable.
var (
	MorningSlots   = []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	AfternoonSlots = []string{"14:00", "14:30", "15:00", "15:30", "16:00", "16:30"}
)

const SlotStatusScheduled = "scheduled"

type InterviewType string

const (
	InterviewTechnical  InterviewType = "technical"
	InterviewHR         InterviewType = "hr"
	InterviewBehavioral InterviewType = "behavioral"
	InterviewFinal      InterviewType = "final"
)

func ParseInterviewType(s string) (InterviewType, bool) {
	switch InterviewType(strings.ToLower(strings.TrimSpace(s))) {
	case InterviewTechnical:
		return InterviewTechnical, true
	case InterviewHR:
		return InterviewHR, true
	case InterviewBehavioral:
		return InterviewBehavioral, true
	case InterviewFinal:
		return InterviewFinal, true
	}
	return "", false
}

type ScheduleInput struct {
	ApplicationID  uuid.UUID
	Date           string // YYYY-MM-DD
	Time           string // one of the fixed slots
	InterviewerIDs []uuid.UUID
	Type           string
	Notes          string
}

type SlotItem struct {
	ID             uuid.UUID
	RequisitionID  uuid.UUID
	ApplicationID  uuid.UUID
	ScheduledDate  time.Time
	ScheduledTime  string
	InterviewType  InterviewType
	InterviewerIDs []uuid.UUID
	Notes          string
	Status         string
	CreatedAt      time.Time
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, in ScheduleInput) (SlotItem, error)
	ListSlots(ctx context.Context, requisitionID uuid.UUID) ([]SlotItem, error)
	// ListInterviewers asks the employee directory for panel-eligible
	// staff. A directory outage is a collaborator failure, not ours.
	ListInterviewers(ctx context.Context, department string) ([]directory.Interviewer, error)
	// AvailableSlots returns the open slots for one weekday; weekend dates
	// get an empty grid.
	AvailableSlots(ctx context.Context, requisitionID uuid.UUID, date string) (morning, afternoon []string, err error)
	// WeekDates lists the five weekdays of the week containing the given
	// date, for calendar navigation.
	WeekDates(date string) ([]time.Time, error)
}

type Interview struct {
	slots repository.InterviewRepository
	apps  repository.ApplicationRepository
	dir   directory.Client
	log   *log.Logger
}

func NewInterviewUsecase(slots repository.InterviewRepository, apps repository.ApplicationRepository, dir directory.Client, logger *log.Logger) *Interview {
	if logger == nil {
		logger = log.Default()
	}
	return &Interview{slots: slots, apps: apps, dir: dir, log: logger}
}

func (u *Interview) ListInterviewers(ctx context.Context, department string) ([]directory.Interviewer, error) {
	if u.dir == nil {
		return nil, fmt.Errorf("%w: no employee directory configured", ErrCollaboratorUnavailable)
	}
	entries, err := u.dir.ListInterviewers(ctx, department)
	if err != nil {
		if errors.Is(err, directory.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrCollaboratorUnavailable, err)
		}
		return nil, ErrInternal
	}
	return entries, nil
}

func (u *Interview) Schedule(ctx context.Context, in ScheduleInput) (SlotItem, error) {
	if in.ApplicationID == uuid.Nil {
		return SlotItem{}, fmt.Errorf("%w: missing application id", ErrValidation)
	}
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" {
		return SlotItem{}, fmt.Errorf("%w: missing interview date or time", ErrValidation)
	}
	if len(in.InterviewerIDs) == 0 {
		return SlotItem{}, fmt.Errorf("%w: interviewer set must not be empty", ErrValidation)
	}
	for _, id := range in.InterviewerIDs {
		if id == uuid.Nil {
			return SlotItem{}, fmt.Errorf("%w: interviewer set contains an empty id", ErrValidation)
		}
	}

	itype, ok := ParseInterviewType(in.Type)
	if !ok {
		return SlotItem{}, fmt.Errorf("%w: unknown interview type %q", ErrValidation, in.Type)
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date))
	if err != nil {
		return SlotItem{}, fmt.Errorf("%w: invalid date %q", ErrValidation, in.Date)
	}
	if isWeekend(date) {
		return SlotItem{}, fmt.Errorf("%w: %s is not a weekday", ErrValidation, in.Date)
	}
	if !validSlotTime(in.Time) {
		return SlotItem{}, fmt.Errorf("%w: %q is not an offerable time slot", ErrValidation, in.Time)
	}

	app, err := u.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return SlotItem{}, fmt.Errorf("%w: application %s", ErrNotFound, in.ApplicationID)
		}
		return SlotItem{}, ErrInternal
	}

	created, err := u.slots.CreateSlot(ctx, repository.InterviewSlot{
		ID:             uuid.New(),
		RequisitionID:  app.RequisitionID,
		ApplicationID:  app.ID,
		ScheduledDate:  date,
		ScheduledTime:  strings.TrimSpace(in.Time),
		InterviewType:  string(itype),
		InterviewerIDs: in.InterviewerIDs,
		Notes:          strings.TrimSpace(in.Notes),
		Status:         SlotStatusScheduled,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return SlotItem{}, ErrInternal
	}

	u.log.Printf("component=interview action=schedule slot=%s application=%s date=%s time=%s interviewers=%d",
		created.ID, app.ID, in.Date, created.ScheduledTime, len(created.InterviewerIDs))
	return toSlotItem(created), nil
}

func (u *Interview) ListSlots(ctx context.Context, requisitionID uuid.UUID) ([]SlotItem, error) {
	slots, err := u.slots.FindSlotsByRequisition(ctx, requisitionID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]SlotItem, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotItem(s))
	}
	return out, nil
}

func (u *Interview) AvailableSlots(ctx context.Context, requisitionID uuid.UUID, dateStr string) ([]string, []string, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid date %q", ErrValidation, dateStr)
	}
	if isWeekend(date) {
		return []string{}, []string{}, nil
	}

	taken := make(map[string]bool)
	if requisitionID != uuid.Nil {
		booked, err := u.slots.FindSlotsByDate(ctx, requisitionID, date)
		if err != nil {
			return nil, nil, ErrInternal
		}
		for _, s := range booked {
			taken[s.ScheduledTime] = true
		}
	}

	morning := openSlots(MorningSlots, taken)
	afternoon := openSlots(AfternoonSlots, taken)
	return morning, afternoon, nil
}

func (u *Interview) WeekDates(dateStr string) ([]time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, dateStr)
	}

	// Walk back to Monday, then emit the five weekdays.
	offset := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -offset)
	out := make([]time.Time, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, monday.AddDate(0, 0, i))
	}
	return out, nil
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func validSlotTime(t string) bool {
	t = strings.TrimSpace(t)
	for _, s := range MorningSlots {
		if s == t {
			return true
		}
	}
	for _, s := range AfternoonSlots {
		if s == t {
			return true
		}
	}
	return false
}

func openSlots(all []string, taken map[string]bool) []string {
	out := make([]string, 0, len(all))
	for _, s := range all {
		if !taken[s] {
			out = append(out, s)
		}
	}
	return out
}

func toSlotItem(s repository.InterviewSlot) SlotItem {
	return SlotItem{
		ID:             s.ID,
		RequisitionID:  s.RequisitionID,
		ApplicationID:  s.ApplicationID,
		ScheduledDate:  s.ScheduledDate,
		ScheduledTime:  s.ScheduledTime,
		InterviewType:  InterviewType(s.InterviewType),
		InterviewerIDs: s.InterviewerIDs,
		Notes:          s.Notes,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
	}
}
