package service

import "studyhub_backend/internal/model"

// ScoreAnswers 对一次作答计分。纯函数，相同输入恒得相同输出。
// 只有选中项等于正确项的题目得分；未作答或答错记 0 分；
// answers 中不属于任何题目的键被忽略。
func ScoreAnswers(questions []model.ModelTestQuestion, answers map[string]int) (score int, correct int) {
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if ok && selected == q.CorrectAnswerIndex {
			score += q.Points
			correct++
		}
	}
	return score, correct
}

// answersByQuestion 把答案行折叠成 questionID -> 选项下标 的映射
func answersByQuestion(rows []model.TestAttemptAnswer) map[string]int {
	m := make(map[string]int, len(rows))
	for _, row := range rows {
		m[row.QuestionID] = row.SelectedIndex
	}
	return m
}
