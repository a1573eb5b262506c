package dto

import (
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

func copyInto(to, from interface{}) {
	if err := copier.Copy(to, from); err != nil {
		log.Error().Err(err).Msg("dto copy failed")
	}
}

func ToAnswerResponse(a *model.Answer) AnswerResponse {
	var resp AnswerResponse
	copyInto(&resp, a)
	if resp.Strengths == nil {
		resp.Strengths = []string{}
	}
	if resp.Improvements == nil {
		resp.Improvements = []string{}
	}
	return resp
}

func ToAnswerResponses(answers []model.Answer) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(answers))
	for i := range answers {
		out = append(out, ToAnswerResponse(&answers[i]))
	}
	return out
}

func ToProgressResponse(p *model.UserProgress) ProgressResponse {
	var resp ProgressResponse
	copyInto(&resp, p)
	if p.LastPracticeDate != nil {
		d := time.Time(*p.LastPracticeDate).Format(dateLayout)
		resp.LastPracticeDay = &d
	}
	if resp.Achievements == nil {
		resp.Achievements = []string{}
	}
	return resp
}

func ToInterviewSummary(iv *model.Interview) InterviewSummaryResponse {
	var resp InterviewSummaryResponse
	copyInto(&resp, iv)
	resp.QuestionCount = len(iv.Questions)
	return resp
}

func ToInterviewDetail(iv *model.Interview) InterviewDetailResponse {
	var resp InterviewDetailResponse
	copyInto(&resp, iv)
	resp.Answers = ToAnswerResponses(iv.Answers)
	if resp.Questions == nil {
		resp.Questions = []model.Question{}
	}
	return resp
}

func ToSavedQuestionSetResponse(s *model.SavedQuestionSet) SavedQuestionSetResponse {
	var resp SavedQuestionSetResponse
	copyInto(&resp, s)
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Questions == nil {
		resp.Questions = []model.Question{}
	}
	return resp
}
