package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/estudiapro/demo-api/internal/models"
	"github.com/estudiapro/demo-api/internal/seed"
)

func findExam(id string) *models.Exam {
	for _, ex := range seed.Exams() {
		if ex.ID == id {
			ex := ex
			return &ex
		}
	}
	return nil
}

func (e *Engine) handleListExams(ctx context.Context, req *request) (any, error) {
	return seed.Exams(), nil
}

func (e *Engine) handleStartExam(ctx context.Context, req *request) (any, error) {
	exam := findExam(req.Data.String("exam_id"))
	if exam == nil {
		return nil, ErrExamNotFound
	}
	return exam, nil
}

// normalizeAnswer strips every whitespace character and lowercases, so
// "12x^3 - 10x" and "12X^3-10X" grade equal. Comparison is exact after that.
func normalizeAnswer(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// gradeExam is pure: same answers, same result.
func gradeExam(exam *models.Exam, answers map[string]any) models.ExamResult {
	correct := 0
	for _, q := range exam.Questions {
		given, _ := answers[q.ID].(string)
		if given == "" {
			if v, ok := answers[q.ID]; ok {
				given = fmt.Sprint(v)
			}
		}
		if normalizeAnswer(given) == normalizeAnswer(q.Answer) {
			correct++
		}
	}
	total := len(exam.Questions)
	result := models.ExamResult{Correctas: correct, Total: total}
	if total > 0 {
		result.Calificacion = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return result
}

func (e *Engine) handleSubmitExam(ctx context.Context, req *request) (any, error) {
	exam := findExam(req.Data.String("exam_id"))
	if exam == nil {
		return nil, ErrExamNotFound
	}
	return gradeExam(exam, req.Data.Map("respuestas")), nil
}
