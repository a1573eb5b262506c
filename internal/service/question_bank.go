package service

import "github.com/dhanyabad11/PrepForge-Backend/internal/model"

func q(text, qType, category string) model.Question {
	return model.Question{Question: text, Type: qType, Category: category}
}

// questionBank holds curated questions served when generation is unavailable.
var questionBank = map[string][]model.Question{
	model.DifficultyEasy: {
		q("Tell me about yourself and what drew you to this role.", model.QuestionTypeBehavioral, "Introduction"),
		q("Describe a time you worked well as part of a team.", model.QuestionTypeBehavioral, "Teamwork"),
		q("Tell me about a mistake you made and what you learned from it.", model.QuestionTypeBehavioral, "Growth"),
		q("Describe a goal you set for yourself and how you achieved it.", model.QuestionTypeBehavioral, "Motivation"),
		q("What is the difference between a process and a thread?", model.QuestionTypeTechnical, "Fundamentals"),
		q("Explain what an API is and give an example of one you have used.", model.QuestionTypeTechnical, "Fundamentals"),
		q("How would you find a duplicate value in an array?", model.QuestionTypeTechnical, "Problem Solving"),
		q("What does version control give a team, and how do you use it day to day?", model.QuestionTypeTechnical, "Tooling"),
		q("What would you do if you were given a task with unclear instructions?", model.QuestionTypeSituational, "Communication"),
		q("How would you handle two deadlines landing on the same day?", model.QuestionTypeSituational, "Prioritization"),
		q("A teammate asks for help while you are busy. What do you do?", model.QuestionTypeSituational, "Teamwork"),
		q("What would you do in your first week in this role?", model.QuestionTypeSituational, "Onboarding"),
	},
	model.DifficultyMedium: {
		q("Describe a time you disagreed with a colleague and how you resolved it.", model.QuestionTypeBehavioral, "Conflict"),
		q("Tell me about a project you are proud of and your specific contribution.", model.QuestionTypeBehavioral, "Impact"),
		q("Describe a situation where you had to learn something quickly.", model.QuestionTypeBehavioral, "Adaptability"),
		q("Tell me about a time you received critical feedback.", model.QuestionTypeBehavioral, "Growth"),
		q("How would you design a URL shortening service?", model.QuestionTypeTechnical, "System Design"),
		q("Explain how database indexes work and when they hurt performance.", model.QuestionTypeTechnical, "Databases"),
		q("How do you approach debugging an intermittent production issue?", model.QuestionTypeTechnical, "Debugging"),
		q("Compare REST and GraphQL and when you would choose each.", model.QuestionTypeTechnical, "APIs"),
		q("Your project is falling behind schedule. How do you respond?", model.QuestionTypeSituational, "Delivery"),
		q("A stakeholder changes requirements late in a sprint. What do you do?", model.QuestionTypeSituational, "Stakeholders"),
		q("You notice a teammate repeatedly missing code review comments. How do you address it?", model.QuestionTypeSituational, "Collaboration"),
		q("A customer reports a bug you cannot reproduce. What are your next steps?", model.QuestionTypeSituational, "Customer Focus"),
	},
	model.DifficultyHard: {
		q("Describe the most ambiguous problem you have owned end to end.", model.QuestionTypeBehavioral, "Ownership"),
		q("Tell me about a time you influenced a decision without formal authority.", model.QuestionTypeBehavioral, "Leadership"),
		q("Describe a failure that affected others and how you handled the aftermath.", model.QuestionTypeBehavioral, "Accountability"),
		q("Tell me about a time you had to make a decision with incomplete data.", model.QuestionTypeBehavioral, "Judgement"),
		q("Design a rate limiter for a distributed API gateway.", model.QuestionTypeTechnical, "System Design"),
		q("How would you migrate a large production database with zero downtime?", model.QuestionTypeTechnical, "Databases"),
		q("Explain how you would make a service resilient to a slow downstream dependency.", model.QuestionTypeTechnical, "Reliability"),
		q("Walk through how consensus works in a replicated log such as Raft.", model.QuestionTypeTechnical, "Distributed Systems"),
		q("A critical outage hits during a launch and leadership wants answers now. What do you do?", model.QuestionTypeSituational, "Incident Response"),
		q("Two senior engineers strongly disagree on an architecture. How do you move forward?", model.QuestionTypeSituational, "Leadership"),
		q("You inherit a system with no tests and frequent incidents. What is your plan?", model.QuestionTypeSituational, "Technical Debt"),
		q("Your team is asked to deliver twice the scope with the same headcount. How do you respond?", model.QuestionTypeSituational, "Prioritization"),
	},
}

// fallbackQuestions returns up to count bank questions for the difficulty,
// restricted to qType unless it is empty or "all".
func fallbackQuestions(difficulty, qType string, count int) []model.Question {
	difficulty = model.NormalizeDifficulty(difficulty)
	pool := questionBank[difficulty]

	out := make([]model.Question, 0, count)
	if qType == "" || qType == model.QuestionTypeAll {
		// interleave types so a short mixed request is not all behavioral
		byType := map[string][]model.Question{}
		order := []string{model.QuestionTypeBehavioral, model.QuestionTypeTechnical, model.QuestionTypeSituational}
		for _, item := range pool {
			byType[item.Type] = append(byType[item.Type], item)
		}
		for i := 0; len(out) < count; i++ {
			added := false
			for _, t := range order {
				if i < len(byType[t]) && len(out) < count {
					out = append(out, byType[t][i])
					added = true
				}
			}
			if !added {
				break
			}
		}
	} else {
		for _, item := range pool {
			if item.Type == qType && len(out) < count {
				out = append(out, item)
			}
		}
	}

	for i := range out {
		out[i].ID = i + 1
		out[i].Difficulty = difficulty
	}
	return out
}
