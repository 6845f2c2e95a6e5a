package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"mindcheck_backend/internal/model"
	"mindcheck_backend/internal/util"
	"mindcheck_backend/pkg/logger"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// exportDir 导出文件在存储中的目录
const exportDir = "exports/"

type ExportService struct {
	Quizzes *QuizService
	Repo    ResultStore
	Storage ExportStorage
	URLTTL  time.Duration
	now     func() time.Time
}

func NewExportService(quizzes *QuizService, repo ResultStore, storage ExportStorage, urlTTL time.Duration) *ExportService {
	return &ExportService{Quizzes: quizzes, Repo: repo, Storage: storage, URLTTL: urlTTL, now: time.Now}
}

type ExportResponse struct {
	URL       string    `json:"url"`
	FileName  string    `json:"fileName"`
	ExpiresAt time.Time `json:"expiresAt"`
	Results   int       `json:"results"`
	Rows      int       `json:"rows"`
}

var resultCSVHeader = []string{"result_id", "user_id", "completed_at", "score", "question_id", "answer"}

// BuildResultsCSV 每个答案一行；没有答案的结果也保留一行，避免丢失分数
func BuildResultsCSV(results []model.QuizResult) ([]byte, int, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(resultCSVHeader); err != nil {
		return nil, 0, err
	}

	rows := 0
	for _, r := range results {
		base := []string{
			r.ID,
			strconv.FormatUint(uint64(r.UserID), 10),
			r.CompletedAt.UTC().Format(time.RFC3339),
			strconv.FormatFloat(r.Score, 'f', -1, 64),
		}
		if len(r.Answers) == 0 {
			if err := w.Write(append(base, "", "")); err != nil {
				return nil, 0, err
			}
			rows++
			continue
		}
		for _, a := range r.Answers {
			rec := append(append([]string(nil), base...), a.QuestionID, answerCell(a.Answer))
			if err := w.Write(rec); err != nil {
				return nil, 0, err
			}
			rows++
		}
	}
	w.Flush()
	return buf.Bytes(), rows, w.Error()
}

// answerCell 文本答案以公式字符开头时加 ' 前缀，表格软件打开时按文本显示
func answerCell(v model.AnswerValue) string {
	s := v.String()
	if v.Numeric || s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// ExportQuizResults 导出文件名带随机部分，返回的链接需要管理员令牌或带有时效签名
func (s *ExportService) ExportQuizResults(ctx context.Context, quizID string) (*ExportResponse, error) {
	quiz, err := s.Quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	results, err := s.Repo.ListByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	if len(results) == 0 {
		return nil, util.ErrNoResults
	}

	data, rows, err := BuildResultsCSV(results)
	if err != nil {
		return nil, fmt.Errorf("build csv: %w", err)
	}

	now := s.now().UTC()
	file := fmt.Sprintf("quiz_%s_%s_%s.csv", quiz.ID, now.Format("20060102150405"), uuid.NewString())
	if err := s.Storage.Upload(ctx, exportDir+file, bytes.NewReader(data), int64(len(data)), util.MimeCSV); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	url, err := s.Storage.SignedURL(ctx, exportDir+file, s.URLTTL)
	if err != nil {
		return nil, fmt.Errorf("sign export url: %w", err)
	}

	logger.Log.Info("quiz results exported",
		zap.String("quizId", quiz.ID),
		zap.Int("results", len(results)),
		zap.String("file", file),
	)
	return &ExportResponse{
		URL:       url,
		FileName:  file,
		ExpiresAt: now.Add(s.URLTTL),
		Results:   len(results),
		Rows:      rows,
	}, nil
}

// OpenExport 只接受 ExportQuizResults 生成的文件名，不允许带目录
func (s *ExportService) OpenExport(ctx context.Context, file string) (io.ReadCloser, error) {
	if !validExportName(file) {
		return nil, util.ErrExportNotFound
	}
	return s.Storage.Open(ctx, exportDir+file)
}

func validExportName(file string) bool {
	if file == "" || strings.ContainsAny(file, `/\`) || strings.Contains(file, "..") {
		return false
	}
	return path.Base(file) == file && strings.HasPrefix(file, "quiz_") && strings.HasSuffix(file, ".csv")
}
