package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/pkg/gemini"
)

var courseSchema = gemini.Schema{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"title":       map[string]interface{}{"type": "STRING", "description": "A concise and engaging title for the course."},
		"description": map[string]interface{}{"type": "STRING", "description": "A 1-2 paragraph summary of what the course is about."},
		"modules": map[string]interface{}{
			"type":        "ARRAY",
			"description": "A list of 3 to 5 learning modules.",
			"items": map[string]interface{}{
				"type": "OBJECT",
				"properties": map[string]interface{}{
					"title":       map[string]interface{}{"type": "STRING", "description": "Title of the module."},
					"description": map[string]interface{}{"type": "STRING", "description": "A brief description of the module's content."},
					"content":     map[string]interface{}{"type": "STRING", "description": "The main learning content for the module. This should be a few paragraphs of text explaining the module's topics in detail."},
					"assignments": map[string]interface{}{
						"type":        "ARRAY",
						"description": "A list containing exactly one assignment for this module.",
						"items": map[string]interface{}{
							"type": "OBJECT",
							"properties": map[string]interface{}{
								"title":  map[string]interface{}{"type": "STRING", "description": "Title of the assignment."},
								"prompt": map[string]interface{}{"type": "STRING", "description": "A detailed prompt for the assignment."},
							},
							"required": []string{"title", "prompt"},
						},
					},
				},
				"required": []string{"title", "description", "content", "assignments"},
			},
		},
	},
	"required": []string{"title", "description", "modules"},
}

var evaluationSchema = gemini.Schema{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"grade":    map[string]interface{}{"type": "INTEGER", "description": "A numerical grade from 0 to 100."},
		"feedback": map[string]interface{}{"type": "STRING", "description": "Constructive feedback for the student."},
	},
	"required": []string{"grade", "feedback"},
}

var performanceSchema = gemini.Schema{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"summary":     map[string]interface{}{"type": "STRING", "description": "A single sentence summary of the student's performance."},
		"performance": map[string]interface{}{"type": "STRING", "description": "A performance label, must be one of: 'Good', 'Average', 'Poor'."},
	},
	"required": []string{"summary", "performance"},
}

func courseGenerationPrompt(topic string) string {
	return fmt.Sprintf(`You are an expert curriculum designer for a modern Learning Management System. Create a complete, ready-to-use course structure about "%s". The course should be engaging and well-structured for online learning. For each module, provide a detailed 'content' section with a few paragraphs of educational material.`, topic)
}

func evaluationPrompt(assignment models.Assignment, submission models.Submission) string {
	return fmt.Sprintf(`You are a fair and helpful teaching assistant. Evaluate a student's submission for the following assignment.

Assignment Title: "%s"
Assignment Prompt: "%s"

Student Submission:
---
%s
---

Please provide a numerical grade out of 100 and 2-3 sentences of constructive feedback. Be encouraging but also provide specific areas for improvement if necessary.`,
		assignment.Title, assignment.Prompt, submission.Content)
}

func progressReportPrompt(studentName string, courses []models.Course, graded []models.Submission) string {
	lines := make([]string, 0, len(graded))
	for _, s := range graded {
		courseTitle, assignmentTitle := "N/A", "N/A"
		for _, c := range courses {
			if c.ID != s.CourseID {
				continue
			}
			courseTitle = c.Title
			if a, ok := c.FindAssignment(s.AssignmentID); ok {
				assignmentTitle = a.Title
			}
			break
		}
		lines = append(lines, fmt.Sprintf("- Course: %s, Assignment: %s, Grade: %d/100", courseTitle, assignmentTitle, *s.Grade))
	}

	return fmt.Sprintf(`You are an insightful and encouraging academic advisor. Generate a progress report for a student named %s.

Here is the data on their graded assignments:
%s

Based on this data, write a 2-paragraph summary. Start by highlighting areas of strength and strong performance. Then, gently point out any courses or topics where they might be struggling and suggest a positive next step or area of focus. Maintain a supportive and motivational tone.`,
		studentName, strings.Join(lines, "\n"))
}

func performanceSummaryPrompt(studentName string, enrolledCount, averageGrade int) string {
	return fmt.Sprintf(`You are an administrative academic advisor. Your task is to provide a very brief, one-sentence summary and a single performance label for a student based on their key statistics.

Student Name: %s
Number of Enrolled Courses: %d
Average Grade: %d%%

Your entire response MUST be a single JSON object. The JSON object must have two keys:
1. "summary": A concise single sentence that combines the enrollment and grade information.
2. "performance": A single word performance label. It must be one of these three strings: "Good", "Average", or "Poor".

Use the average grade to determine the performance label:
- A grade above 85%% is "Good".
- A grade between 60%% and 85%% (inclusive) is "Average".
- A grade below 60%% is "Poor".

Example for a good student:
{
  "summary": "This student is enrolled in 5 courses and has a strong average grade of 92%%.",
  "performance": "Good"
}`, studentName, enrolledCount, averageGrade)
}

func studyHelpPrompt(course models.Course, question string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Course Title: %s\nCourse Description: %s\n\nModules:\n", course.Title, course.Description)
	for _, m := range course.Modules {
		fmt.Fprintf(&sb, "---\nModule Title: %s\nModule Description: %s\nModule Content: %s\nAssignments:\n", m.Title, m.Description, m.Content)
		for _, a := range m.Assignments {
			fmt.Fprintf(&sb, "- Assignment: %s\n- Prompt: %s\n", a.Title, a.Prompt)
		}
		sb.WriteString("---\n")
	}

	return fmt.Sprintf(`You are a helpful and friendly AI study assistant. Your goal is to help a student understand their course material better. Based ONLY on the provided course context below, please answer the student's question. If the answer is not in the context, say that you cannot answer based on the provided material.

---COURSE CONTEXT---
%s
---END COURSE CONTEXT---

Student's Question: "%s"`, sb.String(), question)
}
