//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package generator

import (
	"fmt"
	"strings"
)

// quizPrompt builds the prompt for one quiz question batch.
func quizPrompt(topic Topic, count int) string {
	var objectives string
	if len(topic.LearningObjectives) > 0 {
		var b strings.Builder
		b.WriteString("\nLearning Objectives:\n")
		for _, obj := range topic.LearningObjectives {
			fmt.Fprintf(&b, "- %s\n", obj)
		}
		objectives = strings.TrimRight(b.String(), "\n")
	}

	return fmt.Sprintf(`You are an expert IGCSE %s educator creating quiz questions for Grade 9-10 students.

Topic: %s
Subject: %s
Difficulty Level: %d/5
Syllabus Code: %s
Description: %s%s

Create %d high-quality multiple choice questions that:
1. Test understanding of key concepts in %s
2. Are appropriate for IGCSE Grade 9-10 level
3. Have 4 clear, distinct options (A, B, C, D)
4. Include detailed explanations for the correct answer
5. Vary in difficulty within the specified level
6. Use proper academic language and terminology

Respond with valid JSON only:
{
    "questions": [
        {
            "question_text": "Clear, specific question text that tests understanding",
            "question_type": "multiple_choice",
            "options": {
                "A": "First option",
                "B": "Second option",
                "C": "Third option",
                "D": "Fourth option"
            },
            "correct_answer": "A",
            "explanation": "Detailed explanation of why this answer is correct and why others are wrong",
            "difficulty_level": %d,
            "points": 1,
            "tags": ["relevant", "topic", "tags"]
        }
    ]
}

Ensure all questions are factually accurate, educationally valuable, and aligned with IGCSE curriculum standards.`,
		topic.Subject, topic.Title, topic.Subject, topic.DifficultyLevel,
		topic.SyllabusCode, topic.Description, objectives,
		count, topic.Title, topic.DifficultyLevel)
}

// markSlot is one band of the requested mark distribution.
type markSlot struct {
	Marks int
	Count int
	Type  string
}

// markDistribution returns the question mix for a paper of the given size.
// Twenty-mark papers are short answer heavy; larger papers add extended
// response questions.
func markDistribution(totalMarks int) []markSlot {
	if totalMarks <= 20 {
		return []markSlot{
			{Marks: 2, Count: 5, Type: "short_answer"},
			{Marks: 5, Count: 2, Type: "structured"},
		}
	}
	return []markSlot{
		{Marks: 2, Count: 5, Type: "short_answer"},
		{Marks: 5, Count: 4, Type: "structured"},
		{Marks: 10, Count: 2, Type: "extended"},
	}
}

// examPrompt builds the prompt for one exam paper.
func examPrompt(topic Topic, totalMarks int) string {
	var dist strings.Builder
	for _, slot := range markDistribution(totalMarks) {
		fmt.Fprintf(&dist, "- %d questions worth %d marks each (%s)\n",
			slot.Count, slot.Marks, slot.Type)
	}

	duration := 90
	if totalMarks <= 20 {
		duration = 60
	}

	return fmt.Sprintf(`You are an expert IGCSE %s examiner creating a formal exam paper.

Topic: %s
Subject: %s
Total Marks: %d
Difficulty Level: %d/5
Syllabus Code: %s

Create exam questions with this distribution:
%s
Requirements:
1. Questions must be appropriate for IGCSE Grade 9-10 level
2. Include clear mark allocations and instructions
3. Provide detailed marking schemes/model answers
4. Cover different aspects of %s
5. Use proper exam paper formatting and language
6. Ensure questions test different cognitive levels (knowledge, understanding, application, analysis)

Respond with valid JSON only:
{
    "title": "IGCSE %s: %s",
    "instructions": "Answer ALL questions. Show all working clearly. Write your answers in the spaces provided.",
    "duration_minutes": %d,
    "total_marks": %d,
    "questions": [
        {
            "question_text": "Question text with clear instructions and any diagrams described",
            "marks": 5,
            "answer_text": "Detailed marking scheme with acceptable answers and mark allocation",
            "explanation": "Additional guidance for marking and common student errors to watch for",
            "question_order": 1,
            "question_type": "structured"
        }
    ]
}

Ensure all questions are academically rigorous and align with IGCSE assessment objectives.`,
		topic.Subject, topic.Title, topic.Subject, totalMarks,
		topic.DifficultyLevel, topic.SyllabusCode, dist.String(),
		topic.Title, topic.Subject, topic.Title, duration, totalMarks)
}
