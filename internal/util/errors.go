package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")

	ErrTestNotFound        = errors.New("test not found")
	ErrTestNotPublished    = errors.New("test not published or not accessible")
	ErrTestPublished       = errors.New("test already published, questions are immutable")
	ErrInvalidPassingScore = errors.New("passing score exceeds total points")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptNotActive    = errors.New("attempt is not in progress")
	ErrAttemptConflict     = errors.New("attempt was modified concurrently")

	ErrNoteNotFound         = errors.New("note not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrSessionNotFound      = errors.New("study session not found")
	ErrSessionAlreadyEnded  = errors.New("study session already ended")
	ErrContestNotFound      = errors.New("contest not found")
	ErrContestNotRunning    = errors.New("contest is not running")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidVoteValue     = errors.New("vote value must be +1 or -1")
	ErrInvalidSavedKind     = errors.New("unsupported saved item kind")
)
