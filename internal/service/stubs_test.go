package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/repository"
	"mindcheck_backend/internal/util"
	"path"
	"sort"
	"sync"
	"time"
)

type memQuizStore struct {
	mu      sync.Mutex
	quizzes map[string]model.Quiz
	order   []string
}

func newMemQuizStore(seed ...model.Quiz) *memQuizStore {
	s := &memQuizStore{quizzes: map[string]model.Quiz{}}
	for _, q := range seed {
		q := q
		s.Create(context.Background(), &q)
	}
	return s
}

func (s *memQuizStore) Create(_ context.Context, quiz *model.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quiz.ID == "" {
		quiz.ID = model.GenerateUUID()
	}
	s.quizzes[quiz.ID] = *quiz
	s.order = append(s.order, quiz.ID)
	return nil
}

func (s *memQuizStore) FindByID(_ context.Context, id string) (*model.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quizzes[id]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return &q, nil
}

func (s *memQuizStore) Update(_ context.Context, quiz *model.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quiz.ID]; !ok {
		return util.ErrQuizNotFound
	}
	s.quizzes[quiz.ID] = *quiz
	return nil
}

func (s *memQuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return util.ErrQuizNotFound
	}
	delete(s.quizzes, id)
	return nil
}

func (s *memQuizStore) List(_ context.Context, filter repository.QuizFilter, page, limit int) ([]model.Quiz, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Quiz
	for _, id := range s.order {
		q, ok := s.quizzes[id]
		if !ok {
			continue
		}
		if filter.PublishedOnly && !q.IsPublished {
			continue
		}
		if filter.Category != "" && q.Category != filter.Category {
			continue
		}
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

type memResultStore struct {
	mu      sync.Mutex
	results []model.QuizResult
	err     error
	// afterList 在 ListByUserAndQuiz 取得快照后调用一次
	afterList func()
}

func (s *memResultStore) Create(_ context.Context, r *model.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if r.ID == "" {
		r.ID = model.GenerateUUID()
	}
	s.results = append(s.results, *r)
	return nil
}

func (s *memResultStore) FindByID(_ context.Context, id string) (*model.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.results {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, util.ErrResultNotFound
}

func (s *memResultStore) filter(keep func(model.QuizResult) bool) []model.QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuizResult
	for _, r := range s.results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *memResultStore) ListByUserAndQuiz(_ context.Context, userID uint, quizID string) ([]model.QuizResult, error) {
	out := s.filter(func(r model.QuizResult) bool { return r.UserID == userID && r.QuizID == quizID })
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		hook()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

func (s *memResultStore) ListByUser(_ context.Context, userID uint, page, limit int) ([]model.QuizResult, int64, error) {
	out := s.filter(func(r model.QuizResult) bool { return r.UserID == userID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, int64(len(out)), nil
}

func (s *memResultStore) ListByQuiz(_ context.Context, quizID string) ([]model.QuizResult, error) {
	return s.filter(func(r model.QuizResult) bool { return r.QuizID == quizID }), nil
}

type memUserStore struct {
	mu     sync.Mutex
	users  []model.User
	nextID uint
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u.ID = s.nextID
	s.users = append(s.users, *u)
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

type memCache struct {
	mu                sync.Mutex
	stats             map[string]model.ProgressStats
	versions          map[string]int64
	quizzes           map[string]model.Quiz
	statInvalidations int
	quizInvalidations int
}

func newMemCache() *memCache {
	return &memCache{
		stats:    map[string]model.ProgressStats{},
		versions: map[string]int64{},
		quizzes:  map[string]model.Quiz{},
	}
}

func statsKey(userID uint, quizID string) string {
	return fmt.Sprintf("%d:%s", userID, quizID)
}

func versionedKey(userID uint, quizID string, version int64) string {
	return fmt.Sprintf("%s:v%d", statsKey(userID, quizID), version)
}

func (c *memCache) GetStats(_ context.Context, userID uint, quizID string) (*model.ProgressStats, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	version := c.versions[statsKey(userID, quizID)]
	s, ok := c.stats[versionedKey(userID, quizID, version)]
	if !ok {
		return nil, version, false
	}
	return &s, version, true
}

func (c *memCache) SetStats(_ context.Context, userID uint, quizID string, version int64, stats *model.ProgressStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats[versionedKey(userID, quizID, version)] = *stats
	return nil
}

func (c *memCache) InvalidateStats(_ context.Context, userID uint, quizID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statInvalidations++
	c.versions[statsKey(userID, quizID)]++
	return nil
}

func (c *memCache) GetQuiz(_ context.Context, quizID string) (*model.Quiz, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.quizzes[quizID]
	if !ok {
		return nil, false
	}
	return &q, true
}

func (c *memCache) SetQuiz(_ context.Context, quiz *model.Quiz) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quizzes[quiz.ID] = *quiz
	return nil
}

func (c *memCache) InvalidateQuiz(_ context.Context, quizID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quizInvalidations++
	delete(c.quizzes, quizID)
	return nil
}

type memExportStore struct {
	mu          sync.Mutex
	files       map[string][]byte
	last        string
	contentType string
	expiry      time.Duration
}

func newMemExportStore() *memExportStore {
	return &memExportStore{files: make(map[string][]byte)}
}

func (u *memExportStore) Upload(_ context.Context, filename string, r io.Reader, size int64, contentType string) error {
	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, r); err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.files[filename] = buf.Bytes()
	u.last, u.contentType = filename, contentType
	return nil
}

func (u *memExportStore) Open(_ context.Context, filename string) (io.ReadCloser, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	data, ok := u.files[filename]
	if !ok {
		return nil, util.ErrExportNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (u *memExportStore) SignedURL(_ context.Context, filename string, expiry time.Duration) (string, error) {
	u.mu.Lock()
	u.expiry = expiry
	u.mu.Unlock()
	return ExportDownloadPath + path.Base(filename), nil
}

// wellbeingQuiz is a published two-question quiz with three score ranges.
func wellbeingQuiz() model.Quiz {
	return model.Quiz{
		UUIDBase:         model.UUIDBase{ID: "quiz-1"},
		Title:            "Weekly check-in",
		ScoringDirection: model.HigherIsBetter,
		IsPublished:      true,
		Questions: []model.Question{
			{
				ID:           "1",
				Text:         "Did you sleep well?",
				Type:         model.QuestionMultipleChoice,
				Options:      []string{"Yes", "No"},
				ScoreMapping: map[string]float64{"Yes": 5, "No": 0},
				Category:     "sleep",
			},
			{ID: "2", Text: "Rate your energy", Type: model.QuestionScale, Min: 1, Max: 10, Category: "energy"},
		},
		ScoreRanges: []model.ScoreRange{
			{Min: 0, Max: 5, Status: "Low", Color: model.ColorRed},
			{Min: 6, Max: 10, Status: "Okay", Color: model.ColorYellow},
			{Min: 11, Max: 15, Status: "Great", Color: model.ColorGreen},
		},
	}
}
