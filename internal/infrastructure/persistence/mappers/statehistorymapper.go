package mappers

import (
	"apmdigest/internal/domain/activity"
	"apmdigest/internal/infrastructure/persistence/models"
)

type StateHistoryMapper interface {
	ToRecord(model *models.StateHistoryModel) activity.ChangeRecord
	ToRecords(models []*models.StateHistoryModel) []activity.ChangeRecord
}

type StateHistoryMapperImpl struct{}

func NewStateHistoryMapper() StateHistoryMapper {
	return &StateHistoryMapperImpl{}
}

func (m *StateHistoryMapperImpl) ToRecord(model *models.StateHistoryModel) activity.ChangeRecord {
	return activity.ChangeRecord{
		ProjectID:      model.ProjectID,
		Project:        model.Project,
		OrganizationID: model.OrganizationID,
		Organization:   model.Organization,
		PlanID:         model.PlanID,
		Plan:           model.Plan,
		PlanType:       model.PlanType,
		Transcriber:    deref(model.Transcriber),
		Reviewer:       deref(model.Reviewer),
		Passage:        model.Passage,
		State:          model.State,
		ModifiedBy:     model.ModifiedBy,
		Updated:        activity.Timestamp{Time: model.Updated.UTC()},
		Email:          model.Email,
		Timezone:       deref(model.Timezone),
		LocaleTag:      deref(model.Locale),
		Comments:       deref(model.Comments),
	}
}

func (m *StateHistoryMapperImpl) ToRecords(models []*models.StateHistoryModel) []activity.ChangeRecord {
	records := make([]activity.ChangeRecord, 0, len(models))
	for _, model := range models {
		if model == nil {
			continue
		}
		records = append(records, m.ToRecord(model))
	}
	return records
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
