package workflownotify

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"hr-workflow-backend/models"
	dbmodels "hr-workflow-backend/models/db"
)

type fakeEmailProvider struct {
	sentTo  []string
	sendErr error
}

func (f *fakeEmailProvider) SendEMail(from, to, message, subject string) error {
	f.sentTo = append(f.sentTo, to)
	return f.sendErr
}

func notifyInstance(assigneeID string) (dbmodels.WorkflowInstance, dbmodels.WorkflowStep) {
	step := dbmodels.WorkflowStep{
		WorkflowStepSpec: dbmodels.WorkflowStepSpec{
			StepID:     "step1",
			Name:       "Руководитель",
			AssigneeID: assigneeID,
		},
		Status: models.WStepStatusInProgress,
	}
	rec := dbmodels.WorkflowInstance{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: "rec1"},
			SpaceID:   "space1",
		},
		Name:          "Согласование отпуска",
		InitiatorName: "Иванов Иван",
		Steps:         dbmodels.WorkflowSteps{step},
		Status:        models.WorkflowStatusActive,
	}
	return rec, step
}

func TestStepActivated(t *testing.T) {
	t.Run(`уведомление исполнителю этапа`, func(t *testing.T) {
		email := &fakeEmailProvider{}
		handler := NewHandler(email, func(spaceID, assigneeID string) string {
			return "user@example.com"
		})
		rec, step := notifyInstance("user1")
		handler.StepActivated(rec, step)
		require.Equal(t, []string{"user@example.com"}, email.sentTo)
	})
	t.Run(`этап без исполнителя - без уведомления`, func(t *testing.T) {
		email := &fakeEmailProvider{}
		handler := NewHandler(email, func(spaceID, assigneeID string) string {
			return "user@example.com"
		})
		rec, step := notifyInstance("")
		handler.StepActivated(rec, step)
		require.Empty(t, email.sentTo)
	})
	t.Run(`почта не определена - без уведомления`, func(t *testing.T) {
		email := &fakeEmailProvider{}
		handler := NewHandler(email, func(spaceID, assigneeID string) string {
			return ""
		})
		rec, step := notifyInstance("user1")
		handler.StepActivated(rec, step)
		require.Empty(t, email.sentTo)
	})
	t.Run(`ошибка отправки не паникует`, func(t *testing.T) {
		email := &fakeEmailProvider{sendErr: errors.New("smtp недоступен")}
		handler := NewHandler(email, func(spaceID, assigneeID string) string {
			return "user@example.com"
		})
		rec, step := notifyInstance("user1")
		require.NotPanics(t, func() {
			handler.StepActivated(rec, step)
		})
	})
}
