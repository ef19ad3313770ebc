package usecase

import (
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain/assessment"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

func toUserSummary(u *entity.User) dto.UserSummary {
	if u == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{ID: u.ID, Email: u.Email, Name: u.Name, Profession: u.Profession}
}

// ToProjectResponse convierte la entidad a DTO; role puede ir vacío.
func ToProjectResponse(p *entity.Project, role string) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Logo:        p.Logo,
		Location:    p.Location,
		OwnerID:     p.OwnerID,
		Role:        role,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCollaboratorResponse(c *entity.Collaborator) dto.CollaboratorResponse {
	return dto.CollaboratorResponse{
		UserID:     c.UserID,
		Email:      c.Email,
		Name:       c.Name,
		Profession: c.Profession,
		Role:       c.Role,
		JoinedAt:   c.CreatedAt,
	}
}

// ToTaskResponse convierte la entidad a DTO.
func ToTaskResponse(t *entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		AssigneeID:  t.AssigneeID,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}
}

// ToAITaskResponse convierte la entidad a DTO.
func ToAITaskResponse(t *entity.AITask) dto.AITaskResponse {
	return dto.AITaskResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		AssigneeID:     t.AssigneeID,
		DayNumber:      t.DayNumber,
		SkillLevel:     t.SkillLevel,
		EstimatedHours: t.EstimatedHours,
		CreatedAt:      t.CreatedAt,
		CompletedAt:    t.CompletedAt,
	}
}

func toAITaskResponses(list []*entity.AITask) []dto.AITaskResponse {
	out := make([]dto.AITaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToAITaskResponse(t))
	}
	return out
}

func toEvaluationResponse(e *entity.UserEvaluation) dto.EvaluationResponse {
	return dto.EvaluationResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		ProjectID:     e.ProjectID,
		Technology:    e.Technology,
		Profession:    e.Profession,
		Level:         e.Level,
		Score:         e.Score,
		ResultLevel:   assessment.LevelFor(e.Score),
		QuestionsData: e.QuestionsData,
		CreatedAt:     e.CreatedAt,
	}
}

func toAssessmentResponse(a *entity.SkillAssessment, questions []assessment.Question) dto.SkillAssessmentResponse {
	out := dto.SkillAssessmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		ProjectID:   a.ProjectID,
		Status:      a.Status,
		Score:       a.Score,
		SkillLevel:  a.SkillLevel,
		TimedOut:    a.TimedOut,
		StartedAt:   a.StartedAt,
		ExpiresAt:   a.ExpiresAt,
		CompletedAt: a.CompletedAt,
	}
	for _, q := range questions {
		out.Questions = append(out.Questions, dto.AssessmentQuestion{
			ID: q.ID, Topic: q.Topic, Prompt: q.Prompt, Options: q.Options,
		})
	}
	return out
}

func toEventResponse(e *entity.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		AllDay:      e.AllDay,
		CreatedBy:   e.CreatedBy,
	}
}

func toNoteResponse(n *entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		Title:     n.Title,
		Content:   n.Content,
		Pinned:    n.Pinned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toMessageItem(m *entity.Message) dto.MessageItem {
	return dto.MessageItem{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
		ReadAt:         m.ReadAt,
	}
}

func toSettingsDTO(s *entity.ProjectSettings) dto.ProjectSettingsDTO {
	return dto.ProjectSettingsDTO{
		WorkingDays:        s.WorkingDays,
		HoursPerDay:        s.HoursPerDay,
		Timezone:           s.Timezone,
		AutoAssignDaily:    s.AutoAssignDaily,
		NotifyOnAssignment: s.NotifyOnAssignment,
		Theme:              s.Theme,
		UpdatedAt:          s.UpdatedAt,
	}
}
