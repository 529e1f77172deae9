package repository

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptCompletion 完成作答时一次性写入的字段集合
type AttemptCompletion struct {
	EndTime          time.Time
	Score            int
	CorrectAnswers   int
	TimeSpentSeconds int
	AutoSubmitted    bool
}

// TimedAttemptRow 清理任务扫描用：进行中的作答连同其试卷限时
type TimedAttemptRow struct {
	model.TestAttempt
	TimeLimitMinutes int
}

// TestAttemptRepository 作答记录存取。
// CompleteIfInProgress 以 status 条件更新实现乐观并发控制，
// FindOrCreateInProgress 在事务内加锁以保证同一 (user, test) 最多一条进行中记录。
type TestAttemptRepository interface {
	FindByID(id string) (*model.TestAttempt, error)
	FindInProgress(userID uint, testID string) (*model.TestAttempt, error)
	FindOrCreateInProgress(attempt *model.TestAttempt) (*model.TestAttempt, error)
	FindTimedInProgress() ([]TimedAttemptRow, error)
	UpsertAnswer(answer *model.TestAttemptAnswer) error
	ListAnswers(attemptID string) ([]model.TestAttemptAnswer, error)
	CompleteIfInProgress(attemptID string, c AttemptCompletion) error
	ListByUser(userID uint, page, limit int) ([]model.TestAttempt, int64, error)
}

type testAttemptRepository struct {
	DB *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{DB: db}
}

func (r *testAttemptRepository) FindByID(id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.First(&attempt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	return &attempt, err
}

func (r *testAttemptRepository) FindInProgress(userID uint, testID string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.
		Where("user_id = ? AND test_id = ? AND status = ?", userID, testID, model.AttemptInProgress).
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	return &attempt, err
}

// FindOrCreateInProgress 查找同一 (user, test) 的进行中作答，不存在才创建。
// SELECT ... FOR UPDATE 锁住索引区间，避免并发 StartTest 创建出两条进行中记录。
func (r *testAttemptRepository) FindOrCreateInProgress(attempt *model.TestAttempt) (*model.TestAttempt, error) {
	result := attempt
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.TestAttempt
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND test_id = ? AND status = ?", attempt.UserID, attempt.TestID, model.AttemptInProgress).
			First(&existing).Error
		if err == nil {
			result = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *testAttemptRepository) FindTimedInProgress() ([]TimedAttemptRow, error) {
	var rows []TimedAttemptRow
	err := r.DB.Table("test_attempts a").
		Select("a.*, t.time_limit_minutes").
		Joins("JOIN model_tests t ON t.id = a.test_id").
		Where("a.status = ? AND t.time_limit_minutes > 0 AND a.deleted_at IS NULL", model.AttemptInProgress).
		Scan(&rows).Error
	return rows, err
}

// UpsertAnswer 同一题的答案后写覆盖先写
func (r *testAttemptRepository) UpsertAnswer(answer *model.TestAttemptAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_index", "updated_at"}),
	}).Create(answer).Error
}

func (r *testAttemptRepository) ListAnswers(attemptID string) ([]model.TestAttemptAnswer, error) {
	var answers []model.TestAttemptAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

// CompleteIfInProgress 条件更新：仅当记录仍为 in_progress 时写入完成字段。
// 0 行受影响说明另一写入方已抢先完成，返回 ErrAttemptConflict 由调用方决定处置。
func (r *testAttemptRepository) CompleteIfInProgress(attemptID string, c AttemptCompletion) error {
	res := r.DB.Model(&model.TestAttempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":             model.AttemptCompleted,
			"end_time":           c.EndTime,
			"score":              c.Score,
			"correct_answers":    c.CorrectAnswers,
			"time_spent_seconds": c.TimeSpentSeconds,
			"auto_submitted":     c.AutoSubmitted,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAttemptConflict
	}
	return nil
}

func (r *testAttemptRepository) ListByUser(userID uint, page, limit int) ([]model.TestAttempt, int64, error) {
	query := r.DB.Model(&model.TestAttempt{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.TestAttempt
	offset := (page - 1) * limit
	err := query.Order("start_time DESC").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}
