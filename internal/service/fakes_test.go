package service

import (
	"fmt"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"sync"
)

// fakeTestRepo 内存版试卷存取，供服务层测试使用
type fakeTestRepo struct {
	mu    sync.Mutex
	tests map[string]*model.ModelTest
}

func newFakeTestRepo() *fakeTestRepo {
	return &fakeTestRepo{tests: make(map[string]*model.ModelTest)}
}

func (r *fakeTestRepo) put(test *model.ModelTest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if test.ID == "" {
		test.ID = model.GenerateUUID()
	}
	r.tests[test.ID] = test
}

func (r *fakeTestRepo) Create(test *model.ModelTest) error {
	r.put(test)
	return nil
}

func (r *fakeTestRepo) Update(test *model.ModelTest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tests, id)
	return nil
}

func (r *fakeTestRepo) FindByID(id string) (*model.ModelTest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	test, ok := r.tests[id]
	if !ok {
		return nil, util.ErrTestNotFound
	}
	cp := *test
	return &cp, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(id string) (*model.ModelTest, error) {
	return r.FindByID(id)
}

func (r *fakeTestRepo) ListPublished(subject string, page, limit int) ([]model.ModelTest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ModelTest
	for _, t := range r.tests {
		if t.IsPublished && (subject == "" || t.Subject == subject) {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTestRepo) ListAll(page, limit int) ([]model.ModelTest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ModelTest
	for _, t := range r.tests {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTestRepo) CreateQuestion(q *model.ModelTestQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q.ID == "" {
		q.ID = model.GenerateUUID()
	}
	test, ok := r.tests[q.TestID]
	if !ok {
		return util.ErrTestNotFound
	}
	test.Questions = append(test.Questions, *q)
	return nil
}

func (r *fakeTestRepo) DeleteQuestions(testID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if test, ok := r.tests[testID]; ok {
		test.Questions = nil
	}
	return nil
}

// fakeAttemptRepo 内存版作答存取。CompleteIfInProgress 与 FindOrCreateInProgress
// 在锁内检查状态，语义与数据库的条件更新一致。
type fakeAttemptRepo struct {
	mu         sync.Mutex
	attempts   map[string]*model.TestAttempt
	answers    map[string]map[string]int // attemptID -> questionID -> selectedIndex
	timeLimits map[string]int            // testID -> limit，供 FindTimedInProgress 使用
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts:   make(map[string]*model.TestAttempt),
		answers:    make(map[string]map[string]int),
		timeLimits: make(map[string]int),
	}
}

func (r *fakeAttemptRepo) FindByID(id string) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttemptRepo) FindInProgress(userID uint, testID string) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.UserID == userID && a.TestID == testID && a.Status == model.AttemptInProgress {
			cp := *a
			return &cp, nil
		}
	}
	return nil, util.ErrAttemptNotFound
}

func (r *fakeAttemptRepo) FindOrCreateInProgress(attempt *model.TestAttempt) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.UserID == attempt.UserID && a.TestID == attempt.TestID && a.Status == model.AttemptInProgress {
			cp := *a
			return &cp, nil
		}
	}
	if attempt.ID == "" {
		attempt.ID = model.GenerateUUID()
	}
	cp := *attempt
	r.attempts[attempt.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeAttemptRepo) FindTimedInProgress() ([]repository.TimedAttemptRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []repository.TimedAttemptRow
	for _, a := range r.attempts {
		limit := r.timeLimits[a.TestID]
		if a.Status == model.AttemptInProgress && limit > 0 {
			rows = append(rows, repository.TimedAttemptRow{TestAttempt: *a, TimeLimitMinutes: limit})
		}
	}
	return rows, nil
}

func (r *fakeAttemptRepo) UpsertAnswer(answer *model.TestAttemptAnswer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.answers[answer.AttemptID]
	if !ok {
		m = make(map[string]int)
		r.answers[answer.AttemptID] = m
	}
	m[answer.QuestionID] = answer.SelectedIndex
	return nil
}

func (r *fakeAttemptRepo) ListAnswers(attemptID string) ([]model.TestAttemptAnswer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TestAttemptAnswer
	for qid, sel := range r.answers[attemptID] {
		out = append(out, model.TestAttemptAnswer{AttemptID: attemptID, QuestionID: qid, SelectedIndex: sel})
	}
	return out, nil
}

func (r *fakeAttemptRepo) CompleteIfInProgress(attemptID string, c repository.AttemptCompletion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[attemptID]
	if !ok || a.Status != model.AttemptInProgress {
		return util.ErrAttemptConflict
	}
	a.Status = model.AttemptCompleted
	end := c.EndTime
	a.EndTime = &end
	score, correct, spent := c.Score, c.CorrectAnswers, c.TimeSpentSeconds
	a.Score = &score
	a.CorrectAnswers = &correct
	a.TimeSpentSeconds = &spent
	a.AutoSubmitted = c.AutoSubmitted
	return nil
}

func (r *fakeAttemptRepo) ListByUser(userID uint, page, limit int) ([]model.TestAttempt, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttemptRepo) countInProgress(userID uint, testID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.attempts {
		if a.UserID == userID && a.TestID == testID && a.Status == model.AttemptInProgress {
			n++
		}
	}
	return n
}

var _ repository.ModelTestRepository = (*fakeTestRepo)(nil)
var _ repository.TestAttemptRepository = (*fakeAttemptRepo)(nil)

// newPublishedTest 两道单选题：第一题 10 分正确项 1，第二题 5 分正确项 0，及格线 10
func newPublishedTest(timeLimitMinutes int) *model.ModelTest {
	test := &model.ModelTest{
		Title:            "数据结构测验",
		Subject:          "cs",
		TimeLimitMinutes: timeLimitMinutes,
		TotalPoints:      15,
		PassingScore:     10,
		IsPublished:      true,
	}
	test.ID = model.GenerateUUID()
	test.Questions = []model.ModelTestQuestion{
		{
			UUIDBase:           model.UUIDBase{ID: fmt.Sprintf("%s-q1", test.ID)},
			TestID:             test.ID,
			Content:            "链表头插的时间复杂度",
			CorrectAnswerIndex: 1,
			Points:             10,
			Order:              1,
		},
		{
			UUIDBase:           model.UUIDBase{ID: fmt.Sprintf("%s-q2", test.ID)},
			TestID:             test.ID,
			Content:            "二分查找的前提条件",
			CorrectAnswerIndex: 0,
			Points:             5,
			Order:              2,
		},
	}
	return test
}
