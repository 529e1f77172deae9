package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 只覆盖交卷路径用到的方法，其余沿用嵌入接口
type missingTestRepo struct {
	repository.ModelTestRepository
}

func (missingTestRepo) FindByIDWithQuestions(id string) (*model.ModelTest, error) {
	return nil, util.ErrTestNotFound
}

type orphanAttemptRepo struct {
	repository.TestAttemptRepository
}

func (orphanAttemptRepo) FindByID(id string) (*model.TestAttempt, error) {
	return &model.TestAttempt{
		UUIDBase:  model.UUIDBase{ID: id},
		TestID:    "gone",
		UserID:    1,
		Status:    model.AttemptInProgress,
		StartTime: time.Now(),
	}, nil
}

// 进行中的作答所属试卷被删除后交卷应返回 404 而不是 500
func TestFinishTestMissingTestReturnsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := service.NewTestAttemptService(missingTestRepo{}, orphanAttemptRepo{}, nil)
	ctrl := NewTestAttemptController(svc)

	router := gin.New()
	router.POST("/api/attempts/:id/finish", func(ctx *gin.Context) {
		ctx.Set("user", &util.Claims{UserID: 1, Role: model.Student})
		ctrl.FinishTest(ctx)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/attempts/a1/finish", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
