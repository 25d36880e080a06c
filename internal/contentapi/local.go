package contentapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumahealth/authoring/internal/model"
	"github.com/lumahealth/authoring/internal/repository"
)

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// localClient serves the content-API contract from this service's own
// database. Sessions behave identically against it and the remote client;
// duplicate collisions surface as BackendRejection just like the remote
// backend encodes them.
type localClient struct {
	assessments   repository.AssessmentRepository
	sections      repository.SectionRepository
	questions     repository.QuestionRepository
	answers       repository.AnswerRepository
	relationships repository.RelationshipRepository
	library       repository.LibraryRepository
	scoring       repository.ScoringRepository
}

func NewLocalClient(
	assessments repository.AssessmentRepository,
	sections repository.SectionRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	relationships repository.RelationshipRepository,
	library repository.LibraryRepository,
	scoring repository.ScoringRepository,
) Client {
	return &localClient{
		assessments:   assessments,
		sections:      sections,
		questions:     questions,
		answers:       answers,
		relationships: relationships,
		library:       library,
		scoring:       scoring,
	}
}

func (c *localClient) GetAssessment(_ context.Context, id uint) (*AssessmentTree, error) {
	assessment, err := c.assessments.FindByIDWithTree(id)
	if err != nil {
		return nil, fmt.Errorf("loading assessment %d: %w", id, err)
	}

	tree := &AssessmentTree{
		ID:     assessment.ID,
		Title:  assessment.Title,
		Status: string(assessment.Status),
	}
	for _, parent := range assessment.Sections {
		tree.Sections = append(tree.Sections, treeSectionFromModel(parent))
	}
	return tree, nil
}

func treeSectionFromModel(section model.Section) TreeSection {
	out := TreeSection{
		ID:        section.ID,
		Label:     section.Label,
		SortOrder: section.SortOrder,
		LibraryID: section.LibraryID,
	}
	for _, sub := range section.Subsections {
		out.Subsections = append(out.Subsections, treeSectionFromModel(sub))
	}
	for _, q := range section.Questions {
		question := TreeQuestion{
			ID:        q.ID,
			Label:     q.Label,
			Type:      string(q.Type),
			Required:  q.Required,
			Tooltip:   q.Tooltip,
			Voice:     q.Voice,
			SortOrder: q.SortOrder,
			LibraryID: q.LibraryID,
		}
		for _, a := range q.Answers {
			answer := TreeAnswer{
				ID:                a.ID,
				Label:             a.Label,
				SortOrder:         a.SortOrder,
				MutuallyExclusive: a.MutuallyExclusive,
				Tooltip:           a.Tooltip,
				LibraryID:         a.LibraryID,
			}
			if a.SecondaryInputType != nil {
				answer.SecondaryInputType = *a.SecondaryInputType
			}
			question.Answers = append(question.Answers, answer)
		}
		out.Questions = append(out.Questions, question)
	}
	return out
}

func (c *localClient) CreateSection(_ context.Context, req SectionCreate) (uint, error) {
	var parentID *uint
	if req.ParentID != 0 {
		parent := req.ParentID
		parentID = &parent
	}

	label := req.Label
	var libraryID *uint
	if req.LibraryID != 0 {
		item, err := c.library.FindByID(req.LibraryID)
		if err != nil {
			return 0, fmt.Errorf("resolving library section %d: %w", req.LibraryID, err)
		}
		label = item.Label
		lid := req.LibraryID
		libraryID = &lid
	}

	exists, err := c.sections.SiblingLabelExists(req.AssessmentID, parentID, label, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, &BackendRejection{Operation: "create section", Detail: "duplicate section label"}
	}

	section := model.Section{
		AssessmentID: req.AssessmentID,
		ParentID:     parentID,
		Label:        label,
		SortOrder:    req.SortOrder,
		LibraryID:    libraryID,
	}
	if err := c.sections.Create(&section); err != nil {
		return 0, err
	}
	return section.ID, nil
}

func (c *localClient) UpdateSection(_ context.Context, id uint, req SectionUpdate) error {
	section, err := c.sections.FindByID(id)
	if err != nil {
		return err
	}
	exists, err := c.sections.SiblingLabelExists(section.AssessmentID, section.ParentID, req.Label, id)
	if err != nil {
		return err
	}
	if exists {
		return &BackendRejection{Operation: "update section", Detail: "duplicate section label"}
	}
	section.Label = req.Label
	section.SortOrder = req.SortOrder
	return c.sections.Update(section)
}

func (c *localClient) DeleteSection(_ context.Context, id uint) error {
	return c.sections.Delete(id)
}

func (c *localClient) CreateQuestion(_ context.Context, req QuestionCreate) (uint, error) {
	label := req.Label
	questionType := req.Type
	var libraryID *uint
	if req.LibraryID != 0 {
		item, err := c.library.FindByID(req.LibraryID)
		if err != nil {
			return 0, fmt.Errorf("resolving library question %d: %w", req.LibraryID, err)
		}
		label = item.Label
		lid := req.LibraryID
		libraryID = &lid
	}

	exists, err := c.questions.SiblingLabelExists(req.SectionID, label, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, &BackendRejection{Operation: "create question", Detail: "duplicate question label"}
	}

	question := model.Question{
		SectionID: req.SectionID,
		Label:     label,
		Type:      model.QuestionType(questionType),
		Required:  req.Required,
		Tooltip:   req.Tooltip,
		Voice:     req.Voice,
		SortOrder: req.SortOrder,
		LibraryID: libraryID,
	}
	if err := c.questions.Create(&question); err != nil {
		return 0, err
	}
	return question.ID, nil
}

func (c *localClient) UpdateQuestion(_ context.Context, id uint, req QuestionUpdate) error {
	question, err := c.questions.FindByID(id)
	if err != nil {
		return err
	}
	exists, err := c.questions.SiblingLabelExists(question.SectionID, req.Label, id)
	if err != nil {
		return err
	}
	if exists {
		return &BackendRejection{Operation: "update question", Detail: "duplicate question label"}
	}
	question.Label = req.Label
	question.Required = req.Required
	question.Tooltip = req.Tooltip
	question.Voice = req.Voice
	question.SortOrder = req.SortOrder
	return c.questions.Update(question)
}

func (c *localClient) DeleteQuestion(_ context.Context, id uint) error {
	return c.questions.Delete(id)
}

func (c *localClient) AttachAnswers(_ context.Context, questionID uint, answers []AnswerCreate) (*AttachResult, error) {
	existing, err := c.answers.FindByQuestion(questionID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[normalizeLabel(a.Label)] = true
	}

	// One outcome per request item, in request order, so callers can bind
	// returned ids without guessing which answers were skipped.
	result := &AttachResult{Items: make([]AttachOutcome, len(answers))}
	var (
		toCreate []model.Answer
		slots    []int
	)
	for i, req := range answers {
		label := req.Label
		var libraryID *uint
		if req.LibraryID != 0 {
			item, err := c.library.FindByID(req.LibraryID)
			if err != nil {
				return nil, fmt.Errorf("resolving library answer %d: %w", req.LibraryID, err)
			}
			label = item.Label
			lid := req.LibraryID
			libraryID = &lid
		}
		result.Items[i].Label = label
		if seen[normalizeLabel(label)] {
			result.Items[i].Skipped = true
			result.Detail = fmt.Sprintf("answer %q already present, skipped", label)
			continue
		}
		seen[normalizeLabel(label)] = true

		answer := model.Answer{
			QuestionID:        questionID,
			Label:             label,
			SortOrder:         req.SortOrder,
			MutuallyExclusive: req.MutuallyExclusive,
			Tooltip:           req.Tooltip,
			LibraryID:         libraryID,
		}
		if req.SecondaryInputType != "" {
			sit := req.SecondaryInputType
			answer.SecondaryInputType = &sit
		}
		toCreate = append(toCreate, answer)
		slots = append(slots, i)
	}

	if len(toCreate) == 0 {
		return result, nil
	}
	created, err := c.answers.CreateBatch(toCreate)
	if err != nil {
		return nil, err
	}
	for j, a := range created {
		result.Items[slots[j]].ID = a.ID
	}
	return result, nil
}

func (c *localClient) UpdateAnswer(_ context.Context, id uint, req AnswerUpdate) error {
	answer, err := c.answers.FindByID(id)
	if err != nil {
		return err
	}
	answer.Label = req.Label
	answer.SortOrder = req.SortOrder
	answer.MutuallyExclusive = req.MutuallyExclusive
	answer.Tooltip = req.Tooltip
	if req.SecondaryInputType != "" {
		sit := req.SecondaryInputType
		answer.SecondaryInputType = &sit
	} else {
		answer.SecondaryInputType = nil
	}
	return c.answers.Update(answer)
}

func (c *localClient) DeleteAnswer(_ context.Context, id uint) error {
	return c.answers.Delete(id)
}

func (c *localClient) BatchSortOrder(_ context.Context, kind string, updates []SortUpdate) error {
	byID := make(map[uint]int, len(updates))
	for _, u := range updates {
		byID[u.ID] = u.SortOrder
	}
	switch kind {
	case "section":
		return c.sections.UpdateSortOrders(byID)
	case "question":
		return c.questions.UpdateSortOrders(byID)
	case "answer":
		return c.answers.UpdateSortOrders(byID)
	default:
		return fmt.Errorf("unknown sort-order kind %q", kind)
	}
}

func (c *localClient) PublishBundle(_ context.Context, req BundlePublish) error {
	master := model.LibraryItem{
		ContentType: model.LibraryQuestion,
		Label:       req.Label,
	}
	members := make([]model.LibraryItem, 0, len(req.Answers))
	for _, a := range req.Answers {
		members = append(members, model.LibraryItem{
			ContentType: model.LibraryAnswer,
			Label:       a.Label,
		})
	}
	return c.library.PublishBundle(&master, members)
}

func (c *localClient) Relationships(_ context.Context, answerID uint) (*RelationshipBundle, error) {
	links, err := c.relationships.LinksForAnswer(answerID)
	if err != nil {
		return nil, err
	}

	byType := make(map[model.RelationshipType][]uint)
	for _, link := range links {
		byType[link.Type] = append(byType[link.Type], link.TargetID)
	}

	bundle := &RelationshipBundle{}

	guidelines, err := c.relationships.GuidelinesByIDs(byType[model.RelGuideline])
	if err != nil {
		return nil, err
	}
	for _, g := range guidelines {
		bundle.Guidelines = append(bundle.Guidelines, GuidelineRecord{ID: g.ID, Label: g.Label, URL: g.URL})
	}

	questions, err := c.relationships.QuestionsByIDs(byType[model.RelTriggeredQuestion])
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		bundle.TriggeredQuestions = append(bundle.TriggeredQuestions, QuestionLink{ID: q.ID, Label: q.Label, SortOrder: q.SortOrder})
	}

	problems, err := c.relationships.ProblemsByIDs(byType[model.RelProblem])
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		bundle.Problems = append(bundle.Problems, ProblemRecord{
			ID:                 p.ID,
			Label:              p.Label,
			Tooltip:            p.Tooltip,
			AlternativeWording: p.AlternativeWording,
		})
	}

	barriers, err := c.relationships.BarriersByIDs(byType[model.RelBarrier])
	if err != nil {
		return nil, err
	}
	for _, b := range barriers {
		bundle.Barriers = append(bundle.Barriers, BarrierRecord{ID: b.ID, Label: b.Label})
	}

	return bundle, nil
}

func (c *localClient) AddRelationship(_ context.Context, req RelationshipChange) error {
	link := model.RelationshipLink{
		AnswerID: req.AnswerID,
		Type:     model.RelationshipType(req.Type),
		TargetID: req.TargetID,
	}
	if err := c.relationships.Add(&link); err != nil {
		if err == repository.ErrLinkExists {
			return &BackendRejection{Operation: "add relationship", Detail: "target already belongs to this answer"}
		}
		return err
	}
	return nil
}

func (c *localClient) RemoveRelationship(_ context.Context, req RelationshipChange) error {
	return c.relationships.Remove(req.AnswerID, model.RelationshipType(req.Type), req.TargetID)
}

func (c *localClient) Goals(_ context.Context, problemID uint) ([]GoalRecord, error) {
	goals, err := c.relationships.GoalsByProblem(problemID)
	if err != nil {
		return nil, err
	}
	out := make([]GoalRecord, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalRecord{
			ID:                 g.ID,
			ProblemID:          g.ProblemID,
			Label:              g.Label,
			Tooltip:            g.Tooltip,
			AlternativeWording: g.AlternativeWording,
		})
	}
	return out, nil
}

func (c *localClient) Interventions(_ context.Context, goalID uint) ([]InterventionRecord, error) {
	interventions, err := c.relationships.InterventionsByGoal(goalID)
	if err != nil {
		return nil, err
	}
	out := make([]InterventionRecord, 0, len(interventions))
	for _, iv := range interventions {
		out = append(out, InterventionRecord{
			ID:                 iv.ID,
			GoalID:             iv.GoalID,
			Label:              iv.Label,
			Tooltip:            iv.Tooltip,
			AlternativeWording: iv.AlternativeWording,
		})
	}
	return out, nil
}

func (c *localClient) CreateScoringModel(_ context.Context, req ScoringModelCreate) (uint, error) {
	scoringModel := model.ScoringModel{Label: req.Label, ScoringType: req.ScoringType}
	if err := c.scoring.CreateModel(&scoringModel); err != nil {
		return 0, err
	}
	return scoringModel.ID, nil
}

func (c *localClient) UpdateScoringModel(_ context.Context, id uint, req ScoringModelUpdate) error {
	scoringModel, err := c.scoring.FindModelByID(id)
	if err != nil {
		return err
	}
	scoringModel.Label = req.Label
	scoringModel.ScoringType = req.ScoringType
	return c.scoring.UpdateModel(scoringModel)
}

func (c *localClient) SetScore(_ context.Context, req ScoreSet) error {
	return c.scoring.UpsertScore(&model.AnswerScore{
		ModelID:  req.ModelID,
		AnswerID: req.AnswerID,
		Value:    req.Value,
	})
}
